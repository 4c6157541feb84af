package dn

import (
	"errors"
	"strings"
)

// DN parsing errors.
var (
	ErrEmptyDN           = errors.New("DN cannot be empty")
	ErrInvalidDN         = errors.New("invalid DN format")
	ErrInvalidRDN        = errors.New("invalid RDN format")
	ErrEmptyRDNComponent = errors.New("empty RDN component")
)

// Split parses a DN string into its RDN components, ordered most-specific
// first (leaf first, matching the textual order).
//
// Example:
//
//	"uid=alice,ou=users,dc=example,dc=com" -> ["uid=alice", "ou=users", "dc=example", "dc=com"]
func Split(dn string) ([]string, error) {
	return SplitLimit(dn, 0)
}

// SplitLimit parses a DN into at most limit components. When limit > 0 the
// remainder of the DN is left unsplit in the final element. A limit of 0
// means no limit.
//
// Example:
//
//	SplitLimit("uid=alice,ou=users,dc=example,dc=com", 2) -> ["uid=alice", "ou=users,dc=example,dc=com"]
func SplitLimit(dn string, limit int) ([]string, error) {
	dn = strings.TrimSpace(dn)
	if dn == "" {
		return nil, ErrEmptyDN
	}

	components := splitComponents(dn, limit)
	if len(components) == 0 {
		return nil, ErrInvalidDN
	}

	result := make([]string, len(components))
	for i, comp := range components {
		// The unsplit remainder is not a single RDN; keep it verbatim.
		if limit > 0 && i == len(components)-1 && strings.ContainsRune(comp, ',') {
			result[i] = strings.TrimSpace(comp)
			continue
		}
		normalized, err := normalizeRDN(comp)
		if err != nil {
			return nil, err
		}
		result[i] = normalized
	}

	return result, nil
}

// splitComponents splits a DN string by unescaped commas. When limit > 0 at
// most limit components are produced, the last holding the remainder.
func splitComponents(dn string, limit int) []string {
	var components []string
	var current strings.Builder
	escaped := false

	for i := 0; i < len(dn); i++ {
		c := dn[i]

		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' {
			current.WriteByte(c)
			escaped = true
			continue
		}

		if c == ',' && (limit <= 0 || len(components) < limit-1) {
			comp := strings.TrimSpace(current.String())
			if comp != "" {
				components = append(components, comp)
			}
			current.Reset()
			continue
		}

		current.WriteByte(c)
	}

	comp := strings.TrimSpace(current.String())
	if comp != "" {
		components = append(components, comp)
	}

	return components
}

// SplitRDN splits a (possibly multi-valued) RDN component into its
// attribute=value pairs.
//
// Example:
//
//	"cn=alice+uid=alice" -> ["cn=alice", "uid=alice"]
func SplitRDN(rdn string) ([]string, error) {
	rdn = strings.TrimSpace(rdn)
	if rdn == "" {
		return nil, ErrEmptyRDNComponent
	}

	var pairs []string
	var current strings.Builder
	escaped := false

	for i := 0; i < len(rdn); i++ {
		c := rdn[i]

		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' {
			current.WriteByte(c)
			escaped = true
			continue
		}

		if c == '+' {
			pair := strings.TrimSpace(current.String())
			if pair == "" {
				return nil, ErrInvalidRDN
			}
			pairs = append(pairs, pair)
			current.Reset()
			continue
		}

		current.WriteByte(c)
	}

	pair := strings.TrimSpace(current.String())
	if pair == "" {
		return nil, ErrInvalidRDN
	}
	return append(pairs, pair), nil
}

// PairAttribute returns the attribute type of a single attribute=value pair.
func PairAttribute(pair string) (string, error) {
	eqIdx := strings.Index(pair, "=")
	if eqIdx == -1 {
		return "", ErrInvalidRDN
	}
	attr := strings.TrimSpace(pair[:eqIdx])
	if attr == "" {
		return "", ErrInvalidRDN
	}
	return attr, nil
}

// normalizeRDN validates an RDN component and lowercases its attribute
// types. Multi-valued RDNs are normalized pair by pair.
func normalizeRDN(rdn string) (string, error) {
	pairs, err := SplitRDN(rdn)
	if err != nil {
		return "", err
	}

	normalized := make([]string, len(pairs))
	for i, pair := range pairs {
		eqIdx := strings.Index(pair, "=")
		if eqIdx == -1 {
			return "", ErrInvalidRDN
		}

		attrType := strings.TrimSpace(pair[:eqIdx])
		attrValue := strings.TrimSpace(pair[eqIdx+1:])
		if attrType == "" {
			return "", ErrInvalidRDN
		}

		normalized[i] = strings.ToLower(attrType) + "=" + attrValue
	}

	return strings.Join(normalized, "+"), nil
}

// Join joins RDN components into a DN string. Components should be in
// forward order (most-specific first).
func Join(components []string) string {
	return strings.Join(components, ",")
}

// RDN returns the most-specific component of the given DN.
//
// Example:
//
//	"uid=alice,ou=users,dc=example,dc=com" -> "uid=alice"
func RDN(dn string) (string, error) {
	components, err := Split(dn)
	if err != nil {
		return "", err
	}
	return components[0], nil
}

// Parent returns the parent DN of the given DN, or the empty string if the
// DN has a single component (a root entry).
//
// Example:
//
//	"uid=alice,ou=users,dc=example,dc=com" -> "ou=users,dc=example,dc=com"
func Parent(dn string) (string, error) {
	components, err := Split(dn)
	if err != nil {
		return "", err
	}
	if len(components) <= 1 {
		return "", nil
	}
	return Join(components[1:]), nil
}

// Normalize validates a DN and returns it in canonical form: attribute
// types lowercased, whitespace around separators removed.
func Normalize(dn string) (string, error) {
	components, err := Split(dn)
	if err != nil {
		return "", err
	}
	return Join(components), nil
}

// Valid reports whether the given string satisfies the DN grammar.
func Valid(dn string) bool {
	_, err := Split(dn)
	return err == nil
}

// Equal compares two DNs for equality, case-insensitively.
func Equal(dn1, dn2 string) (bool, error) {
	norm1, err := Normalize(dn1)
	if err != nil {
		return false, err
	}
	norm2, err := Normalize(dn2)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(norm1, norm2), nil
}

// IsDescendantOrSelf reports whether dn sits at or below ancestor in the
// directory tree. Comparison of components is case-insensitive.
//
// Example:
//
//	IsDescendantOrSelf("uid=alice,ou=users,dc=example,dc=com", "dc=example,dc=com") -> true
func IsDescendantOrSelf(dn, ancestor string) (bool, error) {
	dnComps, err := Split(dn)
	if err != nil {
		return false, err
	}
	ancComps, err := Split(ancestor)
	if err != nil {
		return false, err
	}

	if len(ancComps) > len(dnComps) {
		return false, nil
	}

	offset := len(dnComps) - len(ancComps)
	for i, comp := range ancComps {
		if !strings.EqualFold(dnComps[offset+i], comp) {
			return false, nil
		}
	}
	return true, nil
}

// Compare orders two DNs by tree position. The component lists are zipped
// from the least-significant (rightmost) end outward and the first nonzero
// component comparison is returned; when one DN is a prefix-by-suffix of
// the other, the shorter (the ancestor) sorts first.
func Compare(dn1, dn2 string) (int, error) {
	comps1, err := Split(dn1)
	if err != nil {
		return 0, err
	}
	comps2, err := Split(dn2)
	if err != nil {
		return 0, err
	}

	i, j := len(comps1)-1, len(comps2)-1
	for i >= 0 && j >= 0 {
		c1 := strings.ToLower(comps1[i])
		c2 := strings.ToLower(comps2[j])
		if c1 != c2 {
			if c1 < c2 {
				return -1, nil
			}
			return 1, nil
		}
		i--
		j--
	}

	switch {
	case i < 0 && j < 0:
		return 0, nil
	case i < 0:
		return -1, nil
	default:
		return 1, nil
	}
}

// Depth returns the number of components in a DN.
func Depth(dn string) (int, error) {
	components, err := Split(dn)
	if err != nil {
		return 0, err
	}
	return len(components), nil
}
