// Package dn provides parsing and string algebra for LDAP Distinguished
// Names as used throughout the kervan library.
//
// # Grammar
//
// A DN is a sequence of RDN (Relative Distinguished Name) components joined
// by commas, ordered from most-specific to least-specific:
//
//	uid=alice,ou=users,dc=example,dc=com
//
// An RDN component is one or more attribute=value pairs. Multi-valued RDNs
// join their pairs with '+':
//
//	cn=alice+uid=alice,ou=users,dc=example,dc=com
//
// Escaped commas (\,) inside attribute values are honored when splitting.
//
// # Ordering
//
// Compare orders DNs by tree position rather than lexicographically: the
// component lists are zipped from the least-significant (rightmost) end
// outward and the first nonzero component comparison wins. An ancestor
// therefore always sorts before any of its descendants:
//
//	dn.Compare("ou=users,dc=example,dc=com", "uid=alice,ou=users,dc=example,dc=com") // -1
package dn
