package schema

import (
	"errors"
	"testing"
)

func TestParseObjectClassDefinition(t *testing.T) {
	oc, err := parseObjectClass(`( 2.5.6.6 NAME 'person' DESC 'Person' SUP top STRUCTURAL MUST ( sn $ cn ) MAY ( userPassword $ telephoneNumber ) )`)
	if err != nil {
		t.Fatalf("parseObjectClass returned error: %v", err)
	}

	if oc.OID != "2.5.6.6" {
		t.Errorf("expected OID '2.5.6.6', got %q", oc.OID)
	}
	if oc.Name() != "person" {
		t.Errorf("expected name 'person', got %q", oc.Name())
	}
	if oc.Desc != "Person" {
		t.Errorf("expected desc 'Person', got %q", oc.Desc)
	}
	if oc.Superior != "top" {
		t.Errorf("expected superior 'top', got %q", oc.Superior)
	}
	if !oc.IsStructural() {
		t.Error("expected structural kind")
	}
	if len(oc.Must) != 2 || oc.Must[0] != "sn" || oc.Must[1] != "cn" {
		t.Errorf("Must = %v, want [sn cn]", oc.Must)
	}
	if len(oc.May) != 2 || oc.May[0] != "userPassword" || oc.May[1] != "telephoneNumber" {
		t.Errorf("May = %v, want [userPassword telephoneNumber]", oc.May)
	}
}

func TestParseObjectClassKinds(t *testing.T) {
	tests := []struct {
		def      string
		expected ObjectClassKind
	}{
		{`( 1.1 NAME 'a' ABSTRACT )`, ObjectClassAbstract},
		{`( 1.2 NAME 'b' STRUCTURAL )`, ObjectClassStructural},
		{`( 1.3 NAME 'c' AUXILIARY )`, ObjectClassAuxiliary},
		{`( 1.4 NAME 'd' )`, ObjectClassStructural}, // default
	}

	for _, tt := range tests {
		oc, err := parseObjectClass(tt.def)
		if err != nil {
			t.Errorf("parseObjectClass(%q) returned error: %v", tt.def, err)
			continue
		}
		if oc.Kind != tt.expected {
			t.Errorf("parseObjectClass(%q).Kind = %s, want %s", tt.def, oc.Kind, tt.expected)
		}
	}
}

func TestParseObjectClassMultipleNames(t *testing.T) {
	oc, err := parseObjectClass(`( 2.5.6.2 NAME ( 'country' 'countryObject' ) SUP top STRUCTURAL MUST c )`)
	if err != nil {
		t.Fatalf("parseObjectClass returned error: %v", err)
	}
	if len(oc.Names) != 2 || oc.Names[0] != "country" || oc.Names[1] != "countryObject" {
		t.Errorf("Names = %v, want [country countryObject]", oc.Names)
	}
	if len(oc.Must) != 1 || oc.Must[0] != "c" {
		t.Errorf("Must = %v, want [c]", oc.Must)
	}
}

func TestParseAttributeTypeDefinition(t *testing.T) {
	at, err := parseAttributeType(`( 0.9.2342.19200300.100.1.25 NAME ( 'dc' 'domainComponent' ) DESC 'Domain component' EQUALITY caseIgnoreIA5Match SYNTAX 1.3.6.1.4.1.1466.115.121.1.26{256} SINGLE-VALUE )`)
	if err != nil {
		t.Fatalf("parseAttributeType returned error: %v", err)
	}

	if at.OID != "0.9.2342.19200300.100.1.25" {
		t.Errorf("unexpected OID %q", at.OID)
	}
	if at.Name() != "dc" {
		t.Errorf("expected primary name 'dc', got %q", at.Name())
	}
	if len(at.Names) != 2 || at.Names[1] != "domainComponent" {
		t.Errorf("Names = %v", at.Names)
	}
	if at.Equality != "caseIgnoreIA5Match" {
		t.Errorf("Equality = %q", at.Equality)
	}
	// Length constraint is dropped from the syntax reference.
	if at.Syntax != SyntaxIA5String {
		t.Errorf("Syntax = %q, want %q", at.Syntax, SyntaxIA5String)
	}
	if !at.SingleValue {
		t.Error("expected SINGLE-VALUE")
	}
}

func TestParseAttributeTypeOperational(t *testing.T) {
	at, err := parseAttributeType(`( 2.5.18.1 NAME 'createTimestamp' SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`)
	if err != nil {
		t.Fatalf("parseAttributeType returned error: %v", err)
	}
	if at.Usage != DirectoryOperation {
		t.Errorf("Usage = %s, want directoryOperation", at.Usage)
	}
	if !at.IsOperational() {
		t.Error("expected operational attribute")
	}
	if at.IsUserModifiable() {
		t.Error("NO-USER-MODIFICATION attribute should not be user-modifiable")
	}
}

func TestParseInvalidDefinitions(t *testing.T) {
	tests := []struct {
		def string
		err error
	}{
		{``, ErrInvalidDefinition},
		{`no parens`, ErrInvalidDefinition},
		{`( )`, ErrMissingOID},
		{`( 1.1 NAME 'unterminated )`, ErrUnterminatedString},
		{`( 1.1 NAME )`, ErrInvalidDefinition},
	}

	for _, tt := range tests {
		if _, err := parseObjectClass(tt.def); !errors.Is(err, tt.err) {
			t.Errorf("parseObjectClass(%q) error = %v, want %v", tt.def, err, tt.err)
		}
	}
}

func TestParseMatchingRuleDefinition(t *testing.T) {
	mr, err := parseMatchingRule(`( 2.5.13.2 NAME 'caseIgnoreMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`)
	if err != nil {
		t.Fatalf("parseMatchingRule returned error: %v", err)
	}
	if mr.Name() != "caseIgnoreMatch" {
		t.Errorf("Name = %q", mr.Name())
	}
	if mr.Syntax != SyntaxDirectoryString {
		t.Errorf("Syntax = %q", mr.Syntax)
	}
}

func TestParseSyntaxDefinition(t *testing.T) {
	syn, err := parseSyntaxDef(`( 1.3.6.1.4.1.1466.115.121.1.7 DESC 'Boolean' )`)
	if err != nil {
		t.Fatalf("parseSyntaxDef returned error: %v", err)
	}
	if syn.OID != SyntaxBoolean {
		t.Errorf("OID = %q", syn.OID)
	}
	if syn.Description != "Boolean" {
		t.Errorf("Description = %q", syn.Description)
	}
}
