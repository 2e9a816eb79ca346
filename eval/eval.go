// Package eval builds and runs predicates over records from a
// canonical tree (canon.Node). It is the third and final pipeline
// stage: surface syntax -> canonical tree -> predicate.
package eval

import (
	"fmt"
	"strings"

	"github.com/kolsrud/filterql/canon"
	"github.com/kolsrud/filterql/ql"
	"github.com/kolsrud/filterql/record"
)

// Predicate is a compiled filter, ready to be applied to any number of
// records. It captures only its canonical tree and Options; it holds
// no record-specific state and may be shared across goroutines.
type Predicate func(r record.Value) (bool, error)

// BuildPredicate compiles a canonical tree into a reusable Predicate.
// Construction itself cannot fail: every malformed input is rejected
// earlier, during normalization.
func BuildPredicate(tree *canon.Node, opts Options) Predicate {
	return func(r record.Value) (bool, error) {
		return evalNode(tree, r, opts)
	}
}

// Evaluate is sugar over BuildPredicate for one-shot callers.
func Evaluate(tree *canon.Node, r record.Value, opts Options) (bool, error) {
	return BuildPredicate(tree, opts)(r)
}

// evalNode recursively evaluates n against root, the current path
// resolution context (the top-level record, or — inside a quantifier's
// predicate — the current sequence element).
func evalNode(n *canon.Node, root record.Value, opts Options) (bool, error) {
	switch n.Kind {
	case canon.KAnd:
		for _, c := range n.Children {
			ok, err := evalNode(c, root, opts)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case canon.KOr:
		for _, c := range n.Children {
			ok, err := evalNode(c, root, opts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case canon.KNot:
		ok, err := evalNode(n.Arg, root, opts)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case canon.KComparison:
		return evalComparison(n, root)

	case canon.KText:
		return evalText(n, root, opts), nil

	case canon.KQuantified:
		return evalQuantified(n, root, opts)

	default:
		panic("eval.evalNode: unexpected canonical node kind")
	}
}

// resolvePath resolves path against root, honoring the reserved first
// segment "value", which denotes root itself rather than a lookup.
func resolvePath(root record.Value, path []string) record.Value {
	if len(path) == 0 {
		return root
	}
	cur := root
	rest := path
	if path[0] == "value" {
		rest = path[1:]
	} else {
		cur = cur.Lookup(path[0])
		rest = path[1:]
	}
	for _, seg := range rest {
		cur = cur.Lookup(seg)
	}
	return cur
}

func litToValue(lit ql.Literal) record.Value {
	switch lit.Kind {
	case ql.LitStr:
		return record.Of(lit.Str)
	case ql.LitNum:
		return record.Of(lit.Num)
	case ql.LitBool:
		return record.Of(lit.Bool)
	default:
		return record.Null()
	}
}

func evalComparison(n *canon.Node, root record.Value) (bool, error) {
	left := resolvePath(root, n.Path)
	right := litToValue(n.Lit)

	switch n.CompOp {
	case canon.OpEq:
		return valuesEqual(left, right), nil
	case canon.OpNeq:
		return !valuesEqual(left, right), nil
	default:
		return compareOrder(n.CompOp, left, right)
	}
}

func valuesEqual(a, b record.Value) bool {
	if a.IsNull() && b.IsNull() {
		return true
	}
	if a.IsNull() != b.IsNull() {
		return false
	}
	switch {
	case a.IsString() && b.IsString():
		return a.StringValue() == b.StringValue()
	case a.IsNumber() && b.IsNumber():
		return a.NumberValue() == b.NumberValue()
	case a.IsBool() && b.IsBool():
		return a.BoolValue() == b.BoolValue()
	default:
		return false
	}
}

func compareOrder(op canon.CompOp, left, right record.Value) (bool, error) {
	switch {
	case left.IsNumber() && right.IsNumber():
		l, r := left.NumberValue(), right.NumberValue()
		return applyOrder(op, l < r, l == r, l > r), nil
	case left.IsString() && right.IsString():
		cmp := strings.Compare(left.StringValue(), right.StringValue())
		return applyOrder(op, cmp < 0, cmp == 0, cmp > 0), nil
	default:
		return false, errTypeMismatch(op.String(),
			fmt.Sprintf("Type mismatch for '%s': expected number|string, got %s/%s.", op.String(), typeName(left), typeName(right)))
	}
}

// typeName names a Value's runtime type the way error messages report it
// (spec §7's "got <leftType>/<rightType>" shape).
func typeName(v record.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.IsString():
		return "string"
	case v.IsNumber():
		return "number"
	case v.IsBool():
		return "bool"
	case v.IsSequence():
		return "sequence"
	default:
		return "object"
	}
}

func applyOrder(op canon.CompOp, lt, eq, gt bool) bool {
	switch op {
	case canon.OpGt:
		return gt
	case canon.OpGte:
		return gt || eq
	case canon.OpLt:
		return lt
	case canon.OpLte:
		return lt || eq
	}
	panic("eval.applyOrder: not an ordering operator")
}

func evalText(n *canon.Node, root record.Value, opts Options) bool {
	left := resolvePath(root, n.Path)
	if !left.IsString() {
		// Absent field (or a non-string value) under Text is false,
		// never an error (spec §8 boundary behaviors).
		return false
	}
	haystack := foldText(left.StringValue(), opts)
	needle := foldText(n.Needle, opts)

	switch n.TextOp {
	case canon.TContains:
		return strings.Contains(haystack, needle)
	case canon.TStartsWith:
		return strings.HasPrefix(haystack, needle)
	case canon.TEndsWith:
		return strings.HasSuffix(haystack, needle)
	}
	panic("eval.evalText: unknown text operator")
}

func evalQuantified(n *canon.Node, root record.Value, opts Options) (bool, error) {
	seq := resolvePath(root, n.Path)
	switch {
	case seq.IsNull():
		// An absent/null sequence is treated as empty, so the fixed
		// empty-sequence rule below applies uniformly.
		seq = emptySequence{}
	case !seq.IsSequence():
		// Spec §4.3 step 1: a single value (scalar or mapping) is
		// treated as a one-element sequence, not an error.
		seq = singletonSequence{v: seq}
	}

	length := seq.Len()

	switch n.Quant {
	case canon.QAny:
		for i := 0; i < length; i++ {
			ok, err := evalNode(n.Pred, seq.At(i), opts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case canon.QNone:
		for i := 0; i < length; i++ {
			ok, err := evalNode(n.Pred, seq.At(i), opts)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return true, nil

	case canon.QAll:
		if length == 0 {
			// Fixed rule: all() over an empty sequence is false, not
			// vacuously true (spec §8 boundary behaviors).
			return false, nil
		}
		for i := 0; i < length; i++ {
			ok, err := evalNode(n.Pred, seq.At(i), opts)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	panic("eval.evalQuantified: unknown quantifier")
}

// emptySequence stands in for an absent/null path so that Quantified
// evaluation can treat "no field" and "empty array" identically.
type emptySequence struct{}

func (emptySequence) IsSequence() bool           { return true }
func (emptySequence) Len() int                   { return 0 }
func (emptySequence) At(int) record.Value        { return record.Null() }
func (emptySequence) IsString() bool             { return false }
func (emptySequence) IsNumber() bool             { return false }
func (emptySequence) IsBool() bool               { return false }
func (emptySequence) IsNull() bool               { return true }
func (emptySequence) StringValue() string        { return "" }
func (emptySequence) NumberValue() float64       { return 0 }
func (emptySequence) BoolValue() bool            { return false }
func (emptySequence) Lookup(string) record.Value { return record.Null() }

// singletonSequence wraps a scalar or mapping Value so a quantifier can
// iterate it as a one-element sequence (spec §4.3 step 1: "if V is a
// single value, treat as a one-element sequence").
type singletonSequence struct {
	v record.Value
}

func (s singletonSequence) IsSequence() bool         { return true }
func (s singletonSequence) Len() int                 { return 1 }
func (s singletonSequence) At(i int) record.Value    { return s.v }
func (singletonSequence) IsString() bool             { return false }
func (singletonSequence) IsNumber() bool             { return false }
func (singletonSequence) IsBool() bool               { return false }
func (singletonSequence) IsNull() bool               { return false }
func (singletonSequence) StringValue() string        { return "" }
func (singletonSequence) NumberValue() float64       { return 0 }
func (singletonSequence) BoolValue() bool            { return false }
func (singletonSequence) Lookup(string) record.Value { return record.Null() }
