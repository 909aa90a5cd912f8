// Package tmux provides APIs to interact with the tmux(1) terminal multiplexer.
//
// It provides a [Driver] interface and a [ShellDriver] implementation.
// These provide direct, low-level access to the tmux commands needed to
// list, save, and recreate sessions. [ListAllWindows] and [SessionNames]
// build on the Driver to return parsed results.
package tmux
