package schema

// Syntax represents an LDAP syntax definition. Syntaxes define the format
// of attribute values and drive value decoding.
type Syntax struct {
	OID         string
	Description string
}

// Common LDAP syntax OIDs.
const (
	// SyntaxDirectoryString is the OID for Directory String syntax (UTF-8 string).
	SyntaxDirectoryString = "1.3.6.1.4.1.1466.115.121.1.15"

	// SyntaxDN is the OID for Distinguished Name syntax.
	SyntaxDN = "1.3.6.1.4.1.1466.115.121.1.12"

	// SyntaxInteger is the OID for INTEGER syntax.
	SyntaxInteger = "1.3.6.1.4.1.1466.115.121.1.27"

	// SyntaxBoolean is the OID for Boolean syntax.
	SyntaxBoolean = "1.3.6.1.4.1.1466.115.121.1.7"

	// SyntaxOctetString is the OID for Octet String syntax.
	SyntaxOctetString = "1.3.6.1.4.1.1466.115.121.1.40"

	// SyntaxGeneralizedTime is the OID for Generalized Time syntax.
	SyntaxGeneralizedTime = "1.3.6.1.4.1.1466.115.121.1.24"

	// SyntaxOID is the OID for OID syntax.
	SyntaxOID = "1.3.6.1.4.1.1466.115.121.1.38"

	// SyntaxIA5String is the OID for IA5 String syntax.
	SyntaxIA5String = "1.3.6.1.4.1.1466.115.121.1.26"

	// SyntaxNumericString is the OID for Numeric String syntax.
	SyntaxNumericString = "1.3.6.1.4.1.1466.115.121.1.36"

	// SyntaxTelephoneNumber is the OID for Telephone Number syntax.
	SyntaxTelephoneNumber = "1.3.6.1.4.1.1466.115.121.1.50"
)
