// Package record defines the abstraction the evaluator consumes: path
// lookup and sequence iteration over an opaque tree of mappings,
// sequences and scalars (spec §6.3). The engine does not mandate an
// in-memory encoding; this package supplies both the interface and a
// reference implementation built on native Go maps/slices.
package record

// Value is anything a lookup can resolve to: a nested Value (map or
// sequence), or a scalar (string, float64, bool, nil for null/absent).
// A reference implementation may use any concrete type it likes as
// long as it implements Value.
type Value interface {
	// IsSequence reports whether this value should be iterated by a
	// quantifier rather than inspected as a scalar.
	IsSequence() bool

	// Len and At are only meaningful when IsSequence is true.
	Len() int
	At(i int) Value

	// IsString, IsNumber, IsBool and IsNull classify a scalar value.
	// Exactly one is true for any scalar Value; a value representing
	// "absent" (a missing map key) reports IsNull() == true, and a
	// mapping reports false for all four.
	IsString() bool
	IsNumber() bool
	IsBool() bool
	IsNull() bool

	// StringValue, NumberValue and BoolValue extract the scalar
	// payload; callers must check the corresponding Is* predicate
	// first.
	StringValue() string
	NumberValue() float64
	BoolValue() bool

	// Lookup resolves a single path segment against this value,
	// returning Null() if the segment does not exist (e.g. the key is
	// absent from a mapping). Lookup on a non-mapping Value also
	// returns Null().
	Lookup(segment string) Value
}

// Lookup resolves a dotted path against root segment by segment. An
// absent intermediate segment or a path that terminates inside an
// array (outside of a quantifier's rewritten single-segment leaves)
// still resolves through Lookup at each hop. The eval package does not
// call this helper: eval.resolvePath walks the segments itself so that
// it can honor the reserved "value" segment.
func Lookup(v Value, path []string) Value {
	cur := v
	for _, seg := range path {
		cur = cur.Lookup(seg)
	}
	return cur
}
