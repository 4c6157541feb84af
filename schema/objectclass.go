package schema

// ObjectClassKind represents the kind of an LDAP object class.
type ObjectClassKind int

const (
	// ObjectClassAbstract represents an abstract object class. Abstract
	// classes cannot be instantiated directly and serve as templates for
	// other object classes.
	ObjectClassAbstract ObjectClassKind = iota

	// ObjectClassStructural represents a structural object class. Every
	// entry has exactly one structural object class.
	ObjectClassStructural

	// ObjectClassAuxiliary represents an auxiliary object class,
	// contributing additional attributes alongside a structural class.
	ObjectClassAuxiliary
)

// String returns the string representation of the ObjectClassKind.
func (k ObjectClassKind) String() string {
	switch k {
	case ObjectClassAbstract:
		return "ABSTRACT"
	case ObjectClassStructural:
		return "STRUCTURAL"
	case ObjectClassAuxiliary:
		return "AUXILIARY"
	default:
		return "UNKNOWN"
	}
}

// ObjectClass represents an LDAP object class definition. Must and May hold
// the class's own declared attributes; EffectiveMust and EffectiveMay hold
// the inheritance-resolved sets, populated when the schema is parsed.
type ObjectClass struct {
	OID      string
	Names    []string
	Desc     string
	Obsolete bool
	Superior string // Parent object class name or OID
	Kind     ObjectClassKind
	Must     []string // Declared required attributes
	May      []string // Declared optional attributes

	// EffectiveMust and EffectiveMay are the union of the declared sets
	// and those of all ancestors via the SUP chain, deduplicated, own
	// attributes first.
	EffectiveMust []string
	EffectiveMay  []string
}

// Name returns the primary (first declared) name of the object class, or
// its OID if it declares none.
func (oc *ObjectClass) Name() string {
	if len(oc.Names) > 0 {
		return oc.Names[0]
	}
	return oc.OID
}

// IsAbstract returns true if this is an abstract object class.
func (oc *ObjectClass) IsAbstract() bool {
	return oc.Kind == ObjectClassAbstract
}

// IsStructural returns true if this is a structural object class.
func (oc *ObjectClass) IsStructural() bool {
	return oc.Kind == ObjectClassStructural
}

// IsAuxiliary returns true if this is an auxiliary object class.
func (oc *ObjectClass) IsAuxiliary() bool {
	return oc.Kind == ObjectClassAuxiliary
}

// Allows reports whether the attribute is permitted on entries of this
// class, counting inherited MUST and MAY attributes.
func (oc *ObjectClass) Allows(attr string) bool {
	return containsFold(oc.EffectiveMust, attr) || containsFold(oc.EffectiveMay, attr)
}

// Requires reports whether the attribute is required by this class,
// counting inherited MUST attributes.
func (oc *ObjectClass) Requires(attr string) bool {
	return containsFold(oc.EffectiveMust, attr)
}
