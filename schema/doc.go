// Package schema models LDAP subschema definitions: object classes,
// attribute types, syntaxes, and matching rules.
//
// # Overview
//
// A Schema is built from the definition strings a directory publishes in
// its subschema subentry:
//
//	dump, err := conn.SchemaDump()
//	s, err := schema.Parse(dump)
//
// Descriptors are looked up by numeric OID or by any declared name,
// case-insensitively:
//
//	oc := s.ObjectClass("inetorgperson")
//	at := s.AttributeType("2.5.4.3") // cn
//
// # Inheritance
//
// Object class SUP chains are resolved at parse time. EffectiveMust and
// EffectiveMay expose the union of a class's own declared attributes and
// those of all its ancestors:
//
//	s.ObjectClass("organizationalPerson").EffectiveMust // [sn cn objectClass]
//
// A cycle in SUP references is a fatal parse error; no partial schema is
// ever returned.
//
// # Value decoding
//
// DecodeValue converts raw attribute text according to the attribute's
// syntax: Boolean syntax yields bool, INTEGER yields int64, Generalized
// Time yields time.Time, everything else stays a string. Attributes the
// schema does not describe yield ErrUnknownAttribute; callers decide
// whether that is fatal.
package schema
