package schema

import "strings"

// Schema holds the parsed subschema of a directory: object classes,
// attribute types, syntaxes, and matching rules. Descriptors are indexed
// by numeric OID and by every declared name, case-insensitively.
type Schema struct {
	objectClasses  map[string]*ObjectClass
	attributeTypes map[string]*AttributeType
	syntaxes       map[string]*Syntax
	matchingRules  map[string]*MatchingRule
}

// New creates a new empty Schema with initialized indices.
func New() *Schema {
	return &Schema{
		objectClasses:  make(map[string]*ObjectClass),
		attributeTypes: make(map[string]*AttributeType),
		syntaxes:       make(map[string]*Syntax),
		matchingRules:  make(map[string]*MatchingRule),
	}
}

// MatchingRule defines how attribute values are compared for equality,
// ordering, and substring matching operations.
type MatchingRule struct {
	OID         string
	Names       []string
	Description string
	Syntax      string // Syntax OID this rule applies to
	Obsolete    bool
}

// Name returns the primary (first declared) name of the matching rule, or
// its OID if it declares none.
func (mr *MatchingRule) Name() string {
	if len(mr.Names) > 0 {
		return mr.Names[0]
	}
	return mr.OID
}

// ObjectClass retrieves an object class by name or OID, case-insensitively.
// Returns nil if not found.
func (s *Schema) ObjectClass(nameOrOID string) *ObjectClass {
	return s.objectClasses[strings.ToLower(nameOrOID)]
}

// AttributeType retrieves an attribute type by name or OID,
// case-insensitively. Returns nil if not found.
func (s *Schema) AttributeType(nameOrOID string) *AttributeType {
	return s.attributeTypes[strings.ToLower(nameOrOID)]
}

// Syntax retrieves a syntax by OID. Returns nil if not found.
func (s *Schema) Syntax(oid string) *Syntax {
	return s.syntaxes[strings.ToLower(oid)]
}

// MatchingRule retrieves a matching rule by name or OID,
// case-insensitively. Returns nil if not found.
func (s *Schema) MatchingRule(nameOrOID string) *MatchingRule {
	return s.matchingRules[strings.ToLower(nameOrOID)]
}

// KnownAttribute reports whether the schema describes an attribute type
// with the given name or OID.
func (s *Schema) KnownAttribute(nameOrOID string) bool {
	return s.AttributeType(nameOrOID) != nil
}

// ObjectClassCount returns the number of distinct object classes.
func (s *Schema) ObjectClassCount() int {
	seen := make(map[*ObjectClass]bool)
	for _, oc := range s.objectClasses {
		seen[oc] = true
	}
	return len(seen)
}

// AddObjectClass indexes an object class under its OID and every declared
// name.
func (s *Schema) AddObjectClass(oc *ObjectClass) {
	if oc.OID != "" {
		s.objectClasses[strings.ToLower(oc.OID)] = oc
	}
	for _, name := range oc.Names {
		s.objectClasses[strings.ToLower(name)] = oc
	}
}

// AddAttributeType indexes an attribute type under its OID and every
// declared name.
func (s *Schema) AddAttributeType(at *AttributeType) {
	if at.OID != "" {
		s.attributeTypes[strings.ToLower(at.OID)] = at
	}
	for _, name := range at.Names {
		s.attributeTypes[strings.ToLower(name)] = at
	}
}

// AddSyntax indexes a syntax by its OID.
func (s *Schema) AddSyntax(syn *Syntax) {
	if syn.OID != "" {
		s.syntaxes[strings.ToLower(syn.OID)] = syn
	}
}

// AddMatchingRule indexes a matching rule under its OID and every declared
// name.
func (s *Schema) AddMatchingRule(mr *MatchingRule) {
	if mr.OID != "" {
		s.matchingRules[strings.ToLower(mr.OID)] = mr
	}
	for _, name := range mr.Names {
		s.matchingRules[strings.ToLower(name)] = mr
	}
}

// ModificationType represents the kind of change in a modify operation.
type ModificationType int

const (
	// ModAdd adds values to an attribute.
	ModAdd ModificationType = iota
	// ModDelete removes values from an attribute, or the whole attribute
	// when no values are given.
	ModDelete
	// ModReplace replaces all values of an attribute.
	ModReplace
)

// String returns the string representation of the ModificationType.
func (mt ModificationType) String() string {
	switch mt {
	case ModAdd:
		return "add"
	case ModDelete:
		return "delete"
	case ModReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Modification describes a single attribute change within a modify
// operation.
type Modification struct {
	Type      ModificationType
	Attribute string
	Values    []string
}

// NewModification creates a modification for the given attribute and values.
func NewModification(modType ModificationType, attr string, values ...string) Modification {
	return Modification{
		Type:      modType,
		Attribute: attr,
		Values:    values,
	}
}
