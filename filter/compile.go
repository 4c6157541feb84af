package filter

// Pair is a single criteria entry: an attribute name and its candidate
// values. Criteria are expressed as ordered Pair slices rather than maps so
// that the rendered filter text is deterministic.
type Pair struct {
	Attr   string
	Values []string
}

// Default returns the default filter, a presence check on objectClass:
// (objectClass=*). This matches every entry.
func Default() *Filter {
	return NewPresentFilter("objectClass")
}

// FromPairs compiles ordered attribute/value criteria into a filter. A
// single pair compiles per the value-set rule (one value yields equality,
// several yield an OR); multiple pairs compile to an AND of per-pair
// filters in pair order.
func FromPairs(pairs ...Pair) *Filter {
	if len(pairs) == 0 {
		return Default()
	}

	compiled := make([]*Filter, len(pairs))
	for i, p := range pairs {
		compiled[i] = NewValueSetFilter(p.Attr, p.Values...)
	}
	if len(compiled) == 1 {
		return compiled[0]
	}
	return NewAndFilter(compiled...)
}

// Compile conjoins the given filters. No filters yields the default
// presence filter, one is returned as-is, several are wrapped in an AND
// preserving argument order.
func Compile(filters ...*Filter) *Filter {
	switch len(filters) {
	case 0:
		return Default()
	case 1:
		return filters[0]
	default:
		return NewAndFilter(filters...)
	}
}

// Conjoin refines an existing filter with additional criteria, always
// producing AND(prev, extra...). Refinement is conjunctive, never
// replacement.
func Conjoin(prev *Filter, extra ...*Filter) *Filter {
	if prev == nil {
		return Compile(extra...)
	}
	if len(extra) == 0 {
		return prev
	}
	children := make([]*Filter, 0, len(extra)+1)
	children = append(children, prev)
	children = append(children, extra...)
	return NewAndFilter(children...)
}
