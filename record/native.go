package record

// Native wraps a plain Go value — built from map[string]any, []any,
// string, float64, bool and nil — as a Value. It is the reference
// implementation used by the CLI and by the eval and filterql tests; it
// is not required by the evaluator, which only depends on the Value
// interface in record.go.
type Native struct {
	v any
}

// Of wraps a native Go value as a Value.
func Of(v any) Native {
	return Native{v: v}
}

// Null returns the Value representing null/absent.
func Null() Native {
	return Native{v: nil}
}

func (n Native) IsSequence() bool {
	_, ok := n.v.([]any)
	return ok
}

func (n Native) Len() int {
	seq, ok := n.v.([]any)
	if !ok {
		return 0
	}
	return len(seq)
}

func (n Native) At(i int) Value {
	seq, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(seq) {
		return Null()
	}
	return Of(seq[i])
}

func (n Native) IsString() bool {
	_, ok := n.v.(string)
	return ok
}

func (n Native) IsNumber() bool {
	switch n.v.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}

func (n Native) IsBool() bool {
	_, ok := n.v.(bool)
	return ok
}

func (n Native) IsNull() bool {
	return n.v == nil
}

func (n Native) StringValue() string {
	s, _ := n.v.(string)
	return s
}

func (n Native) NumberValue() float64 {
	switch x := n.v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	}
	return 0
}

func (n Native) BoolValue() bool {
	b, _ := n.v.(bool)
	return b
}

func (n Native) Lookup(segment string) Value {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Null()
	}
	val, ok := m[segment]
	if !ok {
		return Null()
	}
	return Of(val)
}
