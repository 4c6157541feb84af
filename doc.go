// Package kervan builds LDAP searches and models directory entries on top
// of any directory connection.
//
// # Overview
//
// The package separates describing a search from running it. A Query is a
// lazy, immutable descriptor of base, scope, filter, projection, and
// limits; every refinement returns a modified copy, and nothing touches the
// directory until an enumeration method (All, Each, First, Empty, Map)
// runs — each enumeration is exactly one external search. Entry models one
// entry by DN with the same laziness: attributes are fetched on first
// access, decoded per the directory schema, and cached until a successful
// write invalidates them.
//
// The directory itself is a collaborator behind the Conn interface; this
// package never opens sockets or encodes protocol messages beyond the
// request control payloads in controls.go. A Directory wraps a Conn with
// the one-time schema parse and the control registrations every search
// carries.
//
// # Capability dispatch
//
// Model and Registry map declarative criteria (objectClass sets, subtree
// bases) to named capabilities. An entry's capabilities are resolved
// statically from its object classes and DN, and a capability's member
// entries are found by building the matching Query (or QueryUnion when the
// capability spans several bases).
//
// Supporting packages: filter builds and serializes search filters, schema
// parses subschema definitions and resolves inheritance, dn implements the
// distinguished name grammar.
package kervan
