// Package envtest provides a fake environment variable backend
// for testing purposes.
package envtest

// Env is a fake environment. The zero value is an empty environment.
type Env map[string]string

// Home builds an environment where HOME is set to dir.
func Home(dir string) Env {
	return Env{"HOME": dir}
}

// Getenv is an analog for the os.Getenv operation.
func (e Env) Getenv(k string) string {
	return e[k]
}
