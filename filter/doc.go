// Package filter provides LDAP search filter construction and canonical
// text rendering for the kervan query layer.
//
// # Overview
//
// Filters are built programmatically as trees and rendered to the RFC 4515
// text form consumed by a directory server. All standard filter types are
// supported:
//
//   - AND (&): Logical conjunction of filters
//   - OR (|): Logical disjunction of filters
//   - NOT (!): Logical negation of a filter
//   - Equality (=): Exact attribute value match
//   - Substring (*): Pattern matching with wildcards
//   - Greater-or-Equal (>=): Comparison filter
//   - Less-or-Equal (<=): Comparison filter
//   - Present (=*): Attribute existence check
//   - Approximate (~=): Fuzzy matching
//   - Raw: pre-formed filter text carried verbatim
//
// # Filter Construction
//
//	// Simple equality filter: (uid=alice)
//	f := filter.NewEqualityFilter("uid", "alice")
//
//	// AND filter: (&(objectClass=person)(uid=alice))
//	f := filter.NewAndFilter(
//	    filter.NewEqualityFilter("objectClass", "person"),
//	    filter.NewEqualityFilter("uid", "alice"),
//	)
//
//	// Multi-value criteria compile to OR: (|(uid=a)(uid=b)(uid=c))
//	f := filter.NewValueSetFilter("uid", "a", "b", "c")
//
// # Criteria Compilation
//
// Ordered attribute/value criteria are expressed as Pair slices; Go map
// iteration order is not deterministic, and rendered filter text must be.
//
//	// (&(givenName=Michael)(sn=Granger))
//	f := filter.FromPairs(
//	    filter.Pair{Attr: "givenName", Values: []string{"Michael"}},
//	    filter.Pair{Attr: "sn", Values: []string{"Granger"}},
//	)
//
// Rendering with String produces fully parenthesized text with children in
// input order; no reordering or de-duplication is performed, so output is
// deterministic given deterministic input.
package filter
