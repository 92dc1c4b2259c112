package fuzz

import "fmt"

// Expr is an antecedent expression tree over (variable, term) references.
// Trees are immutable once built; combination follows standard Mamdani
// semantics (and=min, or=max, not=1-x).
type Expr interface {
	// String renders the expression in rule-DSL syntax.
	String() string
}

// IsExpr is the leaf: membership of one variable in one term.
type IsExpr struct {
	Variable string
	Term     string
}

// AndExpr combines two expressions with the min t-norm.
type AndExpr struct {
	Left, Right Expr
}

// OrExpr combines two expressions with the max s-norm.
type OrExpr struct {
	Left, Right Expr
}

// NotExpr is the fuzzy complement.
type NotExpr struct {
	Inner Expr
}

// Is builds a (variable, term) leaf.
func Is(variable, term string) Expr { return IsExpr{Variable: variable, Term: term} }

// And combines expressions left-to-right with the min t-norm.
func And(l, r Expr, rest ...Expr) Expr {
	e := Expr(AndExpr{Left: l, Right: r})
	for _, x := range rest {
		e = AndExpr{Left: e, Right: x}
	}
	return e
}

// Or combines expressions left-to-right with the max s-norm.
func Or(l, r Expr, rest ...Expr) Expr {
	e := Expr(OrExpr{Left: l, Right: r})
	for _, x := range rest {
		e = OrExpr{Left: e, Right: x}
	}
	return e
}

// Not negates an expression.
func Not(e Expr) Expr { return NotExpr{Inner: e} }

func (e IsExpr) String() string { return fmt.Sprintf("%s is %s", e.Variable, e.Term) }

func (e AndExpr) String() string {
	return fmt.Sprintf("%s and %s", parenthesize(e.Left, false), parenthesize(e.Right, false))
}

func (e OrExpr) String() string {
	return fmt.Sprintf("%s or %s", e.Left.String(), e.Right.String())
}

func (e NotExpr) String() string {
	return "not " + parenthesize(e.Inner, true)
}

// parenthesize wraps sub-expressions whose operator binds looser than the
// surrounding one, so String output round-trips through ParseExpr.
func parenthesize(e Expr, unary bool) string {
	switch e.(type) {
	case OrExpr:
		return "(" + e.String() + ")"
	case AndExpr:
		if unary {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

// evalNode is the compiled form of an Expr: leaf lookups are resolved to
// slot indices at build time, so evaluation does no string lookups and can
// never fail.
type evalNode interface {
	eval(degrees []float64) float64
}

type leafNode struct{ slot int }

func (n leafNode) eval(d []float64) float64 { return d[n.slot] }

type andNode struct{ left, right evalNode }

func (n andNode) eval(d []float64) float64 {
	l, r := n.left.eval(d), n.right.eval(d)
	if l < r {
		return l
	}
	return r
}

type orNode struct{ left, right evalNode }

func (n orNode) eval(d []float64) float64 {
	l, r := n.left.eval(d), n.right.eval(d)
	if l > r {
		return l
	}
	return r
}

type notNode struct{ inner evalNode }

func (n notNode) eval(d []float64) float64 { return 1 - n.inner.eval(d) }
