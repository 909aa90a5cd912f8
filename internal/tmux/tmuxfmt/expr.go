// Package tmuxfmt renders expressions in the tmux FORMATS language and
// captures the text tmux prints for them back into Go values.
package tmuxfmt

// Expr is the base interface for expressions accepted by the tmux message
// format.
type Expr interface{ expr() }

// String is a string literal in an expression.
//
//	value
type String string // must not contain tabs

func (String) expr() {}

// Var is a reference to a variable.
//
//	#{name}
type Var string

func (Var) expr() {}

// Ternary is a conditional operator that evaluates the first expression and
// returns either the second or the third expression based on whether it's
// true. An empty or "0" result is false.
//
//	#{?cond,then,else}
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (Ternary) expr() {}

// Coalesce returns an expression that evaluates to the first variable if it
// is non-empty, and the fallback otherwise.
//
//	#{?primary,#{primary},fallback}
func Coalesce(primary Var, fallback Expr) Ternary {
	return Ternary{Cond: primary, Then: primary, Else: fallback}
}
