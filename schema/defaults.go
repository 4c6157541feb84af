package schema

// defaultAttributeTypes contains standard attribute type definitions
// (RFC 4519, RFC 2798, RFC 2307) used when no directory schema is loaded.
var defaultAttributeTypes = []string{
	`( 2.5.4.0 NAME 'objectClass' DESC 'Object class membership' EQUALITY objectIdentifierMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.38 )`,
	`( 2.5.4.41 NAME 'name' DESC 'Name' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.4.3 NAME ( 'cn' 'commonName' ) DESC 'Common name' SUP name )`,
	`( 2.5.4.4 NAME ( 'sn' 'surname' ) DESC 'Surname' SUP name )`,
	`( 2.5.4.5 NAME 'serialNumber' DESC 'Serial number' EQUALITY caseIgnoreMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.44 )`,
	`( 2.5.4.7 NAME ( 'l' 'localityName' ) DESC 'Locality name' SUP name )`,
	`( 2.5.4.10 NAME ( 'o' 'organizationName' ) DESC 'Organization name' SUP name )`,
	`( 2.5.4.11 NAME ( 'ou' 'organizationalUnitName' ) DESC 'Organizational unit name' SUP name )`,
	`( 2.5.4.12 NAME 'title' DESC 'Title' SUP name )`,
	`( 2.5.4.13 NAME 'description' DESC 'Description' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.4.20 NAME 'telephoneNumber' DESC 'Telephone number' EQUALITY telephoneNumberMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.50 )`,
	`( 2.5.4.34 NAME 'seeAlso' DESC 'See also' SUP distinguishedName )`,
	`( 2.5.4.35 NAME 'userPassword' DESC 'User password' EQUALITY octetStringMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.40 )`,
	`( 2.5.4.31 NAME 'member' DESC 'Member' SUP distinguishedName )`,
	`( 2.5.4.42 NAME ( 'givenName' 'gn' ) DESC 'Given name' SUP name )`,
	`( 2.5.4.49 NAME 'distinguishedName' DESC 'Distinguished name' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 )`,
	`( 0.9.2342.19200300.100.1.1 NAME ( 'uid' 'userid' ) DESC 'User ID' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 0.9.2342.19200300.100.1.3 NAME ( 'mail' 'rfc822Mailbox' ) DESC 'Email address' EQUALITY caseIgnoreIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 0.9.2342.19200300.100.1.10 NAME 'manager' DESC 'Manager' SUP distinguishedName )`,
	`( 0.9.2342.19200300.100.1.25 NAME ( 'dc' 'domainComponent' ) DESC 'Domain component' EQUALITY caseIgnoreIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 SINGLE-VALUE )`,
	`( 2.16.840.1.113730.3.1.241 NAME 'displayName' DESC 'Preferred display name' SUP name SINGLE-VALUE )`,
	`( 1.3.6.1.1.1.1.0 NAME 'uidNumber' DESC 'User ID number' EQUALITY integerMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 SINGLE-VALUE )`,
	`( 1.3.6.1.1.1.1.1 NAME 'gidNumber' DESC 'Group ID number' EQUALITY integerMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 SINGLE-VALUE )`,
	`( 1.3.6.1.1.1.1.3 NAME 'homeDirectory' DESC 'Home directory' EQUALITY caseExactIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 SINGLE-VALUE )`,
	`( 1.3.6.1.1.1.1.4 NAME 'loginShell' DESC 'Login shell' EQUALITY caseExactIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 SINGLE-VALUE )`,
	`( 1.3.6.1.1.1.1.12 NAME 'memberUid' DESC 'POSIX group member' EQUALITY caseExactIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 1.3.6.1.1.1.1.19 NAME 'ipHostNumber' DESC 'IP address' EQUALITY caseIgnoreIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 2.5.18.1 NAME 'createTimestamp' DESC 'Creation timestamp' EQUALITY generalizedTimeMatch ORDERING generalizedTimeOrderingMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.18.2 NAME 'modifyTimestamp' DESC 'Modification timestamp' EQUALITY generalizedTimeMatch ORDERING generalizedTimeOrderingMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.21.8 NAME 'hasSubordinates' DESC 'Has subordinates' EQUALITY booleanMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.7 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
}

// defaultObjectClasses contains standard object class definitions.
var defaultObjectClasses = []string{
	`( 2.5.6.0 NAME 'top' DESC 'Top of the object class hierarchy' ABSTRACT MUST objectClass )`,
	`( 2.5.6.4 NAME 'organization' DESC 'Organization' SUP top STRUCTURAL MUST o MAY ( telephoneNumber $ seeAlso $ l $ description ) )`,
	`( 2.5.6.5 NAME 'organizationalUnit' DESC 'Organizational unit' SUP top STRUCTURAL MUST ou MAY ( telephoneNumber $ seeAlso $ l $ description ) )`,
	`( 2.5.6.6 NAME 'person' DESC 'Person' SUP top STRUCTURAL MUST ( sn $ cn ) MAY ( userPassword $ telephoneNumber $ seeAlso $ description ) )`,
	`( 2.5.6.7 NAME 'organizationalPerson' DESC 'Organizational person' SUP person STRUCTURAL MAY ( title $ telephoneNumber $ ou $ l ) )`,
	`( 2.5.6.9 NAME 'groupOfNames' DESC 'Group of names' SUP top STRUCTURAL MUST ( member $ cn ) MAY ( seeAlso $ ou $ o $ description ) )`,
	`( 2.5.6.14 NAME 'device' DESC 'Device' SUP top STRUCTURAL MUST cn MAY ( serialNumber $ seeAlso $ ou $ o $ l $ description ) )`,
	`( 2.16.840.1.113730.3.2.2 NAME 'inetOrgPerson' DESC 'Internet organizational person' SUP organizationalPerson STRUCTURAL MAY ( displayName $ givenName $ mail $ manager $ o $ uid ) )`,
	`( 0.9.2342.19200300.100.4.13 NAME 'domain' DESC 'Domain' SUP top STRUCTURAL MUST dc MAY ( o $ l $ description ) )`,
	`( 1.3.6.1.4.1.1466.344 NAME 'dcObject' DESC 'Domain component object' SUP top AUXILIARY MUST dc )`,
	`( 1.3.6.1.1.1.2.0 NAME 'posixAccount' DESC 'POSIX account' SUP top AUXILIARY MUST ( cn $ uid $ uidNumber $ gidNumber $ homeDirectory ) MAY ( userPassword $ loginShell $ description ) )`,
	`( 1.3.6.1.1.1.2.2 NAME 'posixGroup' DESC 'POSIX group' SUP top STRUCTURAL MUST ( cn $ gidNumber ) MAY ( userPassword $ memberUid $ description ) )`,
	`( 1.3.6.1.1.1.2.6 NAME 'ipHost' DESC 'IP host' SUP top AUXILIARY MUST ( cn $ ipHostNumber ) MAY ( l $ description $ manager ) )`,
}

// defaultMatchingRules contains standard matching rule definitions.
var defaultMatchingRules = []string{
	`( 2.5.13.0 NAME 'objectIdentifierMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.38 )`,
	`( 2.5.13.1 NAME 'distinguishedNameMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 )`,
	`( 2.5.13.2 NAME 'caseIgnoreMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.13.4 NAME 'caseIgnoreSubstringsMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.58 )`,
	`( 2.5.13.13 NAME 'booleanMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.7 )`,
	`( 2.5.13.14 NAME 'integerMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 )`,
	`( 2.5.13.17 NAME 'octetStringMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.40 )`,
	`( 2.5.13.20 NAME 'telephoneNumberMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.50 )`,
	`( 2.5.13.27 NAME 'generalizedTimeMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 )`,
	`( 2.5.13.28 NAME 'generalizedTimeOrderingMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 )`,
	`( 1.3.6.1.4.1.1466.109.114.1 NAME 'caseExactIA5Match' SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 1.3.6.1.4.1.1466.109.114.2 NAME 'caseIgnoreIA5Match' SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
}

// defaultSyntaxes contains standard syntax definitions.
var defaultSyntaxes = []string{
	`( 1.3.6.1.4.1.1466.115.121.1.7 DESC 'Boolean' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.12 DESC 'DN' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.15 DESC 'Directory String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.24 DESC 'Generalized Time' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.26 DESC 'IA5 String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.27 DESC 'INTEGER' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.38 DESC 'OID' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.40 DESC 'Octet String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.44 DESC 'Printable String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.50 DESC 'Telephone Number' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.58 DESC 'Substring Assertion' )`,
}

// DefaultDump returns the built-in subschema dump with standard LDAP
// definitions. Useful for tests and for directories that do not publish a
// subschema subentry.
func DefaultDump() Dump {
	return Dump{
		ObjectClasses:  defaultObjectClasses,
		AttributeTypes: defaultAttributeTypes,
		LDAPSyntaxes:   defaultSyntaxes,
		MatchingRules:  defaultMatchingRules,
	}
}

// Default returns the parsed built-in schema. The built-in definitions are
// constants, so a parse failure is a programming error and panics.
func Default() *Schema {
	s, err := Parse(DefaultDump())
	if err != nil {
		panic(err)
	}
	return s
}
