package builder

// segment is one pending segment instance: the segment ID plus raw values
// keyed by 1-based element position. Values are raw extraction output; type
// coercion happens in the assembler against the resolved definitions.
type segment struct {
	id   string
	vals map[int]any
}

func newSegment(id string) segment {
	return segment{id: id, vals: make(map[int]any)}
}

// set records a value for a position. Nil values and empty strings mean
// "absent" and are dropped so the assembler sees a clean presence map; a
// zero number is a real value (a cancelled line carries quantity 0) and is
// kept.
func (s segment) set(pos int, v any) segment {
	switch t := v.(type) {
	case nil:
		return s
	case string:
		if t == "" {
			return s
		}
	}
	s.vals[pos] = v
	return s
}

func (s segment) value(pos int) (any, bool) {
	v, ok := s.vals[pos]
	return v, ok
}
