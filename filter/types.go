package filter

import "strings"

// FilterType represents the type of LDAP filter operation.
type FilterType int

const (
	// FilterAnd represents an AND filter (&).
	FilterAnd FilterType = iota
	// FilterOr represents an OR filter (|).
	FilterOr
	// FilterNot represents a NOT filter (!).
	FilterNot
	// FilterEquality represents an equality filter (attr=value).
	FilterEquality
	// FilterSubstring represents a substring filter (attr=*value*).
	FilterSubstring
	// FilterGreaterOrEqual represents a greater-or-equal filter (attr>=value).
	FilterGreaterOrEqual
	// FilterLessOrEqual represents a less-or-equal filter (attr<=value).
	FilterLessOrEqual
	// FilterPresent represents a presence filter (attr=*).
	FilterPresent
	// FilterApproxMatch represents an approximate match filter (attr~=value).
	FilterApproxMatch
	// FilterRaw represents pre-formed filter text carried verbatim.
	FilterRaw
)

// String returns the string representation of the FilterType.
func (ft FilterType) String() string {
	switch ft {
	case FilterAnd:
		return "AND"
	case FilterOr:
		return "OR"
	case FilterNot:
		return "NOT"
	case FilterEquality:
		return "EQUALITY"
	case FilterSubstring:
		return "SUBSTRING"
	case FilterGreaterOrEqual:
		return "GREATER_OR_EQUAL"
	case FilterLessOrEqual:
		return "LESS_OR_EQUAL"
	case FilterPresent:
		return "PRESENT"
	case FilterApproxMatch:
		return "APPROX_MATCH"
	case FilterRaw:
		return "RAW"
	default:
		return "UNKNOWN"
	}
}

// Filter represents an LDAP search filter tree.
type Filter struct {
	Type      FilterType
	Attribute string
	Value     string
	Children  []*Filter        // For AND/OR filters
	Child     *Filter          // For NOT filter
	Substring *SubstringFilter // For substring filters
	Raw       string           // For raw filters
}

// SubstringFilter represents the components of a substring filter.
type SubstringFilter struct {
	Attribute string
	Initial   string   // Initial substring (before first *)
	Any       []string // Middle substrings (between *s)
	Final     string   // Final substring (after last *)
}

// NewAndFilter creates a new AND filter with the given children.
func NewAndFilter(children ...*Filter) *Filter {
	return &Filter{
		Type:     FilterAnd,
		Children: children,
	}
}

// NewOrFilter creates a new OR filter with the given children.
func NewOrFilter(children ...*Filter) *Filter {
	return &Filter{
		Type:     FilterOr,
		Children: children,
	}
}

// NewNotFilter creates a new NOT filter with the given child.
func NewNotFilter(child *Filter) *Filter {
	return &Filter{
		Type:  FilterNot,
		Child: child,
	}
}

// NewEqualityFilter creates a new equality filter.
func NewEqualityFilter(attribute, value string) *Filter {
	return &Filter{
		Type:      FilterEquality,
		Attribute: attribute,
		Value:     value,
	}
}

// NewSubstringFilter creates a new substring filter.
func NewSubstringFilter(sf *SubstringFilter) *Filter {
	return &Filter{
		Type:      FilterSubstring,
		Attribute: sf.Attribute,
		Substring: sf,
	}
}

// NewPresentFilter creates a new presence filter.
func NewPresentFilter(attribute string) *Filter {
	return &Filter{
		Type:      FilterPresent,
		Attribute: attribute,
	}
}

// NewGreaterOrEqualFilter creates a new greater-or-equal filter.
func NewGreaterOrEqualFilter(attribute, value string) *Filter {
	return &Filter{
		Type:      FilterGreaterOrEqual,
		Attribute: attribute,
		Value:     value,
	}
}

// NewLessOrEqualFilter creates a new less-or-equal filter.
func NewLessOrEqualFilter(attribute, value string) *Filter {
	return &Filter{
		Type:      FilterLessOrEqual,
		Attribute: attribute,
		Value:     value,
	}
}

// NewApproxMatchFilter creates a new approximate match filter.
func NewApproxMatchFilter(attribute, value string) *Filter {
	return &Filter{
		Type:      FilterApproxMatch,
		Attribute: attribute,
		Value:     value,
	}
}

// NewRawFilter creates a filter from pre-formed filter text. The text is
// trusted verbatim and rendered as-is.
func NewRawFilter(text string) *Filter {
	return &Filter{
		Type: FilterRaw,
		Raw:  text,
	}
}

// NewValueSetFilter compiles an attribute with its candidate values. A
// single value yields an equality filter; multiple values yield an OR of
// equality filters in value order. No values at all degrade to a presence
// check on the attribute, never an empty OR.
func NewValueSetFilter(attribute string, values ...string) *Filter {
	if len(values) == 0 {
		return NewPresentFilter(attribute)
	}
	if len(values) == 1 {
		return NewEqualityFilter(attribute, values[0])
	}
	children := make([]*Filter, len(values))
	for i, v := range values {
		children[i] = NewEqualityFilter(attribute, v)
	}
	return NewOrFilter(children...)
}

// String renders the filter to its canonical RFC 4515 text form. Every node
// is fully parenthesized and children appear in input order, so the output
// is deterministic.
func (f *Filter) String() string {
	var sb strings.Builder
	f.render(&sb)
	return sb.String()
}

func (f *Filter) render(sb *strings.Builder) {
	switch f.Type {
	case FilterAnd:
		sb.WriteString("(&")
		for _, child := range f.Children {
			child.render(sb)
		}
		sb.WriteString(")")
	case FilterOr:
		sb.WriteString("(|")
		for _, child := range f.Children {
			child.render(sb)
		}
		sb.WriteString(")")
	case FilterNot:
		sb.WriteString("(!")
		f.Child.render(sb)
		sb.WriteString(")")
	case FilterEquality:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString("=")
		sb.WriteString(f.Value)
		sb.WriteString(")")
	case FilterPresent:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString("=*)")
	case FilterGreaterOrEqual:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString(">=")
		sb.WriteString(f.Value)
		sb.WriteString(")")
	case FilterLessOrEqual:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString("<=")
		sb.WriteString(f.Value)
		sb.WriteString(")")
	case FilterApproxMatch:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString("~=")
		sb.WriteString(f.Value)
		sb.WriteString(")")
	case FilterSubstring:
		sb.WriteString("(")
		sb.WriteString(f.Attribute)
		sb.WriteString("=")
		sb.WriteString(f.Substring.Initial)
		sb.WriteString("*")
		for _, any := range f.Substring.Any {
			sb.WriteString(any)
			sb.WriteString("*")
		}
		sb.WriteString(f.Substring.Final)
		sb.WriteString(")")
	case FilterRaw:
		sb.WriteString(f.Raw)
	}
}
