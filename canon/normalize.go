package canon

import "github.com/kolsrud/filterql/ql"

// Options configures the normalizer. TextSearchTargets supplies the paths
// that a single-argument contains/startsWith/endsWith call expands over
// (spec.md §4.2, "full-text search targets").
type Options struct {
	TextSearchTargets []ql.Path
}

// Normalize rewrites a surface tree into its canonical form. It is a pure
// function: the input surface tree is never mutated, and equivalent
// surface trees always normalize to structurally equal canonical trees.
func Normalize(root *ql.Node, opts Options) (*Node, error) {
	return normalizeBool(root, opts)
}

var nullLit = ql.Null()

// normalizeBool normalizes a surface node that appears in boolean
// position: the recursion's entry point for And/Or/Not children, Group
// contents, and the top-level expression.
func normalizeBool(n *ql.Node, opts Options) (*Node, error) {
	switch n.Kind {
	case ql.NGroup:
		return normalizeBool(n.Arg, opts)

	case ql.NLogical:
		left, err := normalizeBool(n.Left, opts)
		if err != nil {
			return nil, err
		}
		right, err := normalizeBool(n.Right, opts)
		if err != nil {
			return nil, err
		}
		if n.LogicalOp == ql.OpAnd {
			return buildAnd(left, right), nil
		}
		return buildOr(left, right), nil

	case ql.NNot:
		arg, err := normalizeBool(n.Arg, opts)
		if err != nil {
			return nil, err
		}
		return negate(arg), nil

	case ql.NPath:
		// R-F: bare path truthiness.
		return liftComparison(n.Path, OpNeq, nullLit), nil

	case ql.NLiteral:
		// R-F: bare literal truthiness is intentionally undefined.
		return nil, errGeneric("Literal truthiness not defined")

	case ql.NComparison:
		return liftComparison(n.Path, mapCompOp(n.CompOp), n.Lit), nil

	case ql.NShorthand:
		return normalizeShorthand(n, opts)

	case ql.NCall:
		return normalizeCall(n, opts)

	default:
		panic("canon.normalizeBool: unexpected surface node kind: " + n.Kind.String())
	}
}

// liftComparison is the "common exit" for Comparison leaves: R-C fires
// here, lifting any path of length > 1 into nested Quantified(any, ...)
// wrappers around a single-segment Comparison.
func liftComparison(path ql.Path, op CompOp, lit ql.Literal) *Node {
	return liftLeaf(path, func(tail ql.Path) *Node {
		return &Node{Kind: KComparison, Path: []string(tail), CompOp: op, Lit: lit}
	})
}

// liftText is the "common exit" for Text leaves; see liftComparison.
func liftText(path ql.Path, op TextOp, needle string) *Node {
	return liftLeaf(path, func(tail ql.Path) *Node {
		return &Node{Kind: KText, Path: []string(tail), TextOp: op, Needle: needle}
	})
}

func liftLeaf(path ql.Path, build func(tail ql.Path) *Node) *Node {
	if len(path) <= 1 {
		return build(path)
	}
	head := path[0]
	tail := path[1:]
	return &Node{Kind: KQuantified, Quant: QAny, Path: []string{head}, Pred: liftLeaf(tail, build)}
}

func mapCompOp(op ql.CompOp) CompOp {
	switch op {
	case ql.OpEq:
		return OpEq
	case ql.OpNeq:
		return OpNeq
	case ql.OpGt:
		return OpGt
	case ql.OpGte:
		return OpGte
	case ql.OpLt:
		return OpLt
	case ql.OpLte:
		return OpLte
	}
	panic("canon.mapCompOp: unknown surface comparison operator")
}

func invert(op CompOp) CompOp {
	switch op {
	case OpEq:
		return OpNeq
	case OpNeq:
		return OpEq
	case OpGt:
		return OpLte
	case OpLte:
		return OpGt
	case OpGte:
		return OpLt
	case OpLt:
		return OpGte
	}
	panic("canon.invert: unknown comparison operator")
}

func mapQuantifier(name string) Quantifier {
	switch name {
	case "any":
		return QAny
	case "all":
		return QAll
	case "none":
		return QNone
	}
	panic("canon.mapQuantifier: unknown quantifier call name: " + name)
}

func mapTextOp(name string) TextOp {
	switch name {
	case "contains":
		return TContains
	case "startsWith":
		return TStartsWith
	case "endsWith":
		return TEndsWith
	}
	panic("canon.mapTextOp: unknown text function name: " + name)
}

// negate implements rule R-D, pushing a Not down to its leaves. It assumes
// its argument is already fully normalized (including any R-C lifting),
// which guarantees the ordering requirement that comparison inversion and
// array-lifting both happen before De Morgan expansion reaches them.
func negate(n *Node) *Node {
	switch n.Kind {
	case KNot:
		// Not(Not(x)) -> x
		return n.Arg

	case KAnd:
		negated := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			negated[i] = negate(c)
		}
		return buildOr(negated...)

	case KOr:
		negated := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			negated[i] = negate(c)
		}
		return buildAnd(negated...)

	case KComparison:
		return &Node{Kind: KComparison, Path: n.Path, CompOp: invert(n.CompOp), Lit: n.Lit}

	case KQuantified:
		switch n.Quant {
		case QAny:
			return &Node{Kind: KQuantified, Quant: QNone, Path: n.Path, Pred: n.Pred}
		case QNone:
			return &Node{Kind: KQuantified, Quant: QAny, Path: n.Path, Pred: n.Pred}
		case QAll:
			return &Node{Kind: KQuantified, Quant: QAny, Path: n.Path, Pred: negate(n.Pred)}
		}
		panic("canon.negate: unknown quantifier")

	case KText:
		// No negated text operator exists; preserve as Not(Text).
		return &Node{Kind: KNot, Arg: n}

	default:
		// Conservative fallback for any structure the normalizer could not
		// simplify further.
		return &Node{Kind: KNot, Arg: n}
	}
}

func normalizeShorthand(n *ql.Node, opts Options) (*Node, error) {
	switch n.RHSKind {
	case ql.RHSLiteral:
		switch n.Lit.Kind {
		case ql.LitStr:
			return liftText(n.Path, TContains, n.Lit.Str), nil
		case ql.LitNum:
			return liftComparison(n.Path, OpEq, n.Lit), nil
		default:
			return nil, errUnsupported("Shorthand right-hand side of type bool or null is not supported", "Shorthand")
		}

	case ql.RHSCompShorthand:
		return liftComparison(n.Path, mapCompOp(n.CompOp), n.Lit), nil

	case ql.RHSValueList:
		return normalizeValueList(n.Path, n.Items, n.ListOp)

	default:
		panic("canon.normalizeShorthand: unknown shorthand RHS kind")
	}
}

// normalizeValueList implements R-B.
func normalizeValueList(path ql.Path, items []*ql.Node, listOp *ql.LogicalOp) (*Node, error) {
	if len(items) == 0 {
		return nil, errGeneric("Value list must not be empty")
	}

	hasLiteral, hasCompShorthand := false, false
	for _, it := range items {
		switch it.Kind {
		case ql.NLiteral:
			hasLiteral = true
		case ql.NCompShorthand:
			hasCompShorthand = true
		default:
			panic("canon.normalizeValueList: unexpected value-list item kind")
		}
	}
	if hasLiteral && hasCompShorthand {
		return nil, errUnsupported("Value list mixes literal values and comparison shorthands (mixed types)", "ValueList")
	}

	if hasCompShorthand {
		children := make([]*Node, len(items))
		for i, it := range items {
			children[i] = liftComparison(path, mapCompOp(it.CompOp), it.Lit)
		}
		useAnd := true
		if listOp != nil && *listOp == ql.OpOr {
			useAnd = false
		}
		return combine(useAnd, children), nil
	}

	children := make([]*Node, len(items))
	for i, it := range items {
		switch it.Lit.Kind {
		case ql.LitStr:
			children[i] = liftText(path, TContains, it.Lit.Str)
		case ql.LitNum:
			children[i] = liftComparison(path, OpEq, it.Lit)
		default:
			return nil, errUnsupported("Value-list literals of type bool or null are not supported", "ValueList")
		}
	}
	useAnd := false
	if listOp != nil && *listOp == ql.OpAnd {
		useAnd = true
	}
	return combine(useAnd, children), nil
}

func combine(useAnd bool, children []*Node) *Node {
	if useAnd {
		return buildAnd(children...)
	}
	return buildOr(children...)
}

func normalizeCall(n *ql.Node, opts Options) (*Node, error) {
	switch n.Name {
	case "contains", "startsWith", "endsWith":
		return normalizeTextCall(n, opts)
	case "any", "all", "none":
		return normalizeQuantifierCall(n, opts)
	default:
		panic("canon.normalizeCall: unknown call name: " + n.Name)
	}
}

func normalizeTextCall(n *ql.Node, opts Options) (*Node, error) {
	textOp := mapTextOp(n.Name)

	if len(n.Args) == 2 {
		pathArg, valueArg := n.Args[0], n.Args[1]
		if valueArg.Kind != ql.NLiteral || valueArg.Lit.Kind != ql.LitStr {
			return nil, errGeneric("Text functions require a string literal as the second argument")
		}
		if pathArg.Kind != ql.NPath {
			return nil, errUnsupported("Text functions require a path as the first argument when called with two arguments", pathArg.Kind.String())
		}
		return liftText(pathArg.Path, textOp, valueArg.Lit.Str), nil
	}

	valueArg := n.Args[0]
	if valueArg.Kind != ql.NLiteral || valueArg.Lit.Kind != ql.LitStr {
		return nil, errGeneric("Text functions require a string literal as the argument")
	}
	if len(opts.TextSearchTargets) == 0 {
		return nil, errGeneric("Full-text search targets not configured")
	}
	leaves := make([]*Node, len(opts.TextSearchTargets))
	for i, target := range opts.TextSearchTargets {
		leaves[i] = liftText(target, textOp, valueArg.Lit.Str)
	}
	return buildOr(leaves...), nil
}

func normalizeQuantifierCall(n *ql.Node, opts Options) (*Node, error) {
	quant := mapQuantifier(n.Name)

	pathArg := n.Args[0]
	if pathArg.Kind != ql.NPath {
		return nil, errUnsupported("First argument to a quantifier must normalize to a path", pathArg.Kind.String())
	}

	pred, err := normalizeBool(n.Args[1], opts)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KQuantified, Quant: quant, Path: pathArg.Path, Pred: pred}, nil
}
