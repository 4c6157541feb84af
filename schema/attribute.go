package schema

// AttributeUsage defines how an attribute is used in the directory.
type AttributeUsage int

const (
	// UserApplications indicates a user attribute that applications can
	// read and write. This is the default usage.
	UserApplications AttributeUsage = iota

	// DirectoryOperation indicates an operational attribute used by the
	// directory for its own purposes.
	DirectoryOperation

	// DistributedOperation indicates an operational attribute shared
	// across directory servers.
	DistributedOperation

	// DSAOperation indicates an operational attribute local to a single
	// server.
	DSAOperation
)

// String returns the string representation of the AttributeUsage.
func (u AttributeUsage) String() string {
	switch u {
	case UserApplications:
		return "userApplications"
	case DirectoryOperation:
		return "directoryOperation"
	case DistributedOperation:
		return "distributedOperation"
	case DSAOperation:
		return "dSAOperation"
	default:
		return "unknown"
	}
}

// IsOperational returns true if this usage indicates an operational
// attribute.
func (u AttributeUsage) IsOperational() bool {
	return u != UserApplications
}

// AttributeType represents an LDAP attribute type definition.
type AttributeType struct {
	OID         string
	Names       []string
	Desc        string
	Obsolete    bool
	Superior    string // Parent attribute type name or OID
	Equality    string // Matching rule for equality matching
	Ordering    string // Matching rule for ordering matching
	Substring   string // Matching rule for substring matching
	Syntax      string // Syntax OID, possibly inherited via Superior
	SingleValue bool
	NoUserMod   bool
	Usage       AttributeUsage
}

// Name returns the primary (first declared) name of the attribute type, or
// its OID if it declares none.
func (at *AttributeType) Name() string {
	if len(at.Names) > 0 {
		return at.Names[0]
	}
	return at.OID
}

// IsSingleValued returns true if this attribute can hold only one value.
func (at *AttributeType) IsSingleValued() bool {
	return at.SingleValue
}

// IsOperational returns true if this is an operational attribute.
func (at *AttributeType) IsOperational() bool {
	return at.Usage.IsOperational()
}

// IsUserModifiable returns true if users may modify this attribute.
func (at *AttributeType) IsUserModifiable() bool {
	return at.Usage == UserApplications && !at.NoUserMod
}
