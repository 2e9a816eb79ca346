// Package canon implements the normalizer: surface tree (ql.Node) in,
// canonical tree (canon.Node) out. The canonical tree is the minimal,
// equivalence-closed representation consumed by the evaluator and by
// external translators.
package canon

import "github.com/kolsrud/filterql/ql"

// Kind tags the variant of a canonical tree Node.
type Kind int

const (
	KAnd Kind = iota
	KOr
	KNot
	KComparison
	KText
	KQuantified
)

func (k Kind) String() string {
	switch k {
	case KAnd:
		return "And"
	case KOr:
		return "Or"
	case KNot:
		return "Not"
	case KComparison:
		return "Comparison"
	case KText:
		return "Text"
	case KQuantified:
		return "Quantified"
	}
	return "?"
}

// CompOp is a canonical comparison operator.
type CompOp int

const (
	OpEq CompOp = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
)

func (op CompOp) String() string {
	switch op {
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpGt:
		return "gt"
	case OpGte:
		return "gte"
	case OpLt:
		return "lt"
	case OpLte:
		return "lte"
	}
	return "?"
}

// TextOp is a canonical text-matching operator.
type TextOp int

const (
	TContains TextOp = iota
	TStartsWith
	TEndsWith
)

func (op TextOp) String() string {
	switch op {
	case TContains:
		return "contains"
	case TStartsWith:
		return "startsWith"
	case TEndsWith:
		return "endsWith"
	}
	return "?"
}

// Quantifier is one of any/all/none.
type Quantifier int

const (
	QAny Quantifier = iota
	QAll
	QNone
)

func (q Quantifier) String() string {
	switch q {
	case QAny:
		return "any"
	case QAll:
		return "all"
	case QNone:
		return "none"
	}
	return "?"
}

// Node is a canonical tree node. Like ql.Node it is a closed tagged union;
// only the fields documented for Kind are meaningful:
//
//	KAnd/KOr    -> Children (len >= 2)
//	KNot        -> Arg (never KNot, KAnd, KOr or KComparison)
//	KComparison -> Path (len 1), CompOp, Lit
//	KText       -> Path (len 1), TextOp, Needle
//	KQuantified -> Quant, Path, Pred
type Node struct {
	Kind Kind

	Children []*Node // And/Or
	Arg      *Node   // Not

	Path   []string
	CompOp CompOp
	Lit    ql.Literal

	TextOp TextOp
	Needle string

	Quant Quantifier
	Pred  *Node
}

// buildAnd assembles an And node, flattening nested Ands (R-E) and
// collapsing a single child to itself.
func buildAnd(children ...*Node) *Node {
	return buildAssoc(KAnd, children)
}

// buildOr assembles an Or node, flattening nested Ors (R-E) and collapsing
// a single child to itself.
func buildOr(children ...*Node) *Node {
	return buildAssoc(KOr, children)
}

func buildAssoc(kind Kind, children []*Node) *Node {
	var flat []*Node
	for _, c := range children {
		if c.Kind == kind {
			flat = append(flat, c.Children...)
		} else {
			flat = append(flat, c)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Node{Kind: kind, Children: flat}
}
