package dn

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		dn       string
		expected []string
	}{
		{"uid=alice,ou=users,dc=example,dc=com", []string{"uid=alice", "ou=users", "dc=example", "dc=com"}},
		{"dc=com", []string{"dc=com"}},
		{"uid=alice, ou=users , dc=example,dc=com", []string{"uid=alice", "ou=users", "dc=example", "dc=com"}},
		{"cn=alice+uid=alice,ou=users,dc=example,dc=com", []string{"cn=alice+uid=alice", "ou=users", "dc=example", "dc=com"}},
	}

	for _, tt := range tests {
		result, err := Split(tt.dn)
		if err != nil {
			t.Errorf("Split(%q) returned error: %v", tt.dn, err)
			continue
		}
		if strings.Join(result, "|") != strings.Join(tt.expected, "|") {
			t.Errorf("Split(%q) = %v, want %v", tt.dn, result, tt.expected)
		}
	}
}

func TestSplitEscapedComma(t *testing.T) {
	result, err := Split(`cn=Smith\, John,ou=users,dc=example,dc=com`)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("expected 4 components, got %d: %v", len(result), result)
	}
	if result[0] != `cn=Smith\, John` {
		t.Errorf("expected escaped comma preserved, got %q", result[0])
	}
}

func TestSplitLimit(t *testing.T) {
	tests := []struct {
		dn       string
		limit    int
		expected []string
	}{
		{"uid=alice,ou=users,dc=example,dc=com", 2, []string{"uid=alice", "ou=users,dc=example,dc=com"}},
		{"uid=alice,ou=users,dc=example,dc=com", 1, []string{"uid=alice,ou=users,dc=example,dc=com"}},
		{"uid=alice,ou=users,dc=example,dc=com", 0, []string{"uid=alice", "ou=users", "dc=example", "dc=com"}},
		{"uid=alice,ou=users,dc=example,dc=com", 10, []string{"uid=alice", "ou=users", "dc=example", "dc=com"}},
	}

	for _, tt := range tests {
		result, err := SplitLimit(tt.dn, tt.limit)
		if err != nil {
			t.Errorf("SplitLimit(%q, %d) returned error: %v", tt.dn, tt.limit, err)
			continue
		}
		if strings.Join(result, "|") != strings.Join(tt.expected, "|") {
			t.Errorf("SplitLimit(%q, %d) = %v, want %v", tt.dn, tt.limit, result, tt.expected)
		}
	}
}

func TestSplitInvalid(t *testing.T) {
	tests := []struct {
		dn  string
		err error
	}{
		{"", ErrEmptyDN},
		{"   ", ErrEmptyDN},
		{"no-equals-sign", ErrInvalidRDN},
		{"=value", ErrInvalidRDN},
		{"cn=alice+,dc=com", ErrInvalidRDN},
	}

	for _, tt := range tests {
		_, err := Split(tt.dn)
		if !errors.Is(err, tt.err) {
			t.Errorf("Split(%q) error = %v, want %v", tt.dn, err, tt.err)
		}
	}
}

func TestSplitRDN(t *testing.T) {
	pairs, err := SplitRDN("cn=alice+uid=alice")
	if err != nil {
		t.Fatalf("SplitRDN returned error: %v", err)
	}
	if len(pairs) != 2 || pairs[0] != "cn=alice" || pairs[1] != "uid=alice" {
		t.Errorf("SplitRDN = %v, want [cn=alice uid=alice]", pairs)
	}
}

func TestSplitRDNEscapedPlus(t *testing.T) {
	pairs, err := SplitRDN(`cn=a\+b+uid=x`)
	if err != nil {
		t.Fatalf("SplitRDN returned error: %v", err)
	}
	if len(pairs) != 2 || pairs[0] != `cn=a\+b` || pairs[1] != "uid=x" {
		t.Errorf("SplitRDN = %v, escaped plus should stay in the value", pairs)
	}
}

func TestRDNAndParent(t *testing.T) {
	rdn, err := RDN("uid=alice,ou=users,dc=example,dc=com")
	if err != nil {
		t.Fatalf("RDN returned error: %v", err)
	}
	if rdn != "uid=alice" {
		t.Errorf("RDN = %q, want uid=alice", rdn)
	}

	parent, err := Parent("uid=alice,ou=users,dc=example,dc=com")
	if err != nil {
		t.Fatalf("Parent returned error: %v", err)
	}
	if parent != "ou=users,dc=example,dc=com" {
		t.Errorf("Parent = %q, want ou=users,dc=example,dc=com", parent)
	}

	root, err := Parent("dc=com")
	if err != nil {
		t.Fatalf("Parent of root returned error: %v", err)
	}
	if root != "" {
		t.Errorf("Parent of single-component DN = %q, want empty", root)
	}
}

func TestNormalize(t *testing.T) {
	result, err := Normalize("UID=alice, OU=Users,DC=example,DC=com")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if result != "uid=alice,ou=Users,dc=example,dc=com" {
		t.Errorf("Normalize = %q", result)
	}
}

func TestEqual(t *testing.T) {
	equal, err := Equal("uid=Alice,dc=Example,dc=COM", "UID=alice,DC=example,dc=com")
	if err != nil {
		t.Fatalf("Equal returned error: %v", err)
	}
	if !equal {
		t.Error("expected case-insensitive DNs to be equal")
	}
}

func TestIsDescendantOrSelf(t *testing.T) {
	tests := []struct {
		dn       string
		ancestor string
		expected bool
	}{
		{"uid=alice,ou=users,dc=example,dc=com", "dc=example,dc=com", true},
		{"uid=alice,ou=users,dc=example,dc=com", "ou=users,dc=example,dc=com", true},
		{"ou=users,dc=example,dc=com", "ou=users,dc=example,dc=com", true},
		{"uid=alice,ou=users,dc=example,dc=com", "ou=rooms,dc=example,dc=com", false},
		{"dc=example,dc=com", "uid=alice,ou=users,dc=example,dc=com", false},
	}

	for _, tt := range tests {
		result, err := IsDescendantOrSelf(tt.dn, tt.ancestor)
		if err != nil {
			t.Errorf("IsDescendantOrSelf(%q, %q) returned error: %v", tt.dn, tt.ancestor, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("IsDescendantOrSelf(%q, %q) = %v, want %v", tt.dn, tt.ancestor, result, tt.expected)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		dn1      string
		dn2      string
		expected int
	}{
		// An ancestor sorts before any of its descendants.
		{"dc=example,dc=com", "ou=users,dc=example,dc=com", -1},
		{"ou=users,dc=example,dc=com", "uid=alice,ou=users,dc=example,dc=com", -1},
		{"uid=alice,ou=users,dc=example,dc=com", "ou=users,dc=example,dc=com", 1},
		{"uid=alice,dc=example,dc=com", "uid=alice,dc=example,dc=com", 0},
		// Siblings order by their differing component.
		{"ou=rooms,dc=example,dc=com", "ou=users,dc=example,dc=com", -1},
		// Rightmost components dominate regardless of leaf order.
		{"uid=zzz,dc=aaa", "uid=aaa,dc=zzz", -1},
	}

	for _, tt := range tests {
		result, err := Compare(tt.dn1, tt.dn2)
		if err != nil {
			t.Errorf("Compare(%q, %q) returned error: %v", tt.dn1, tt.dn2, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.dn1, tt.dn2, result, tt.expected)
		}
	}
}

func TestDepth(t *testing.T) {
	depth, err := Depth("uid=alice,ou=users,dc=example,dc=com")
	if err != nil {
		t.Fatalf("Depth returned error: %v", err)
	}
	if depth != 4 {
		t.Errorf("Depth = %d, want 4", depth)
	}
}

func TestPairAttribute(t *testing.T) {
	attr, err := PairAttribute("uid=alice")
	if err != nil {
		t.Fatalf("PairAttribute returned error: %v", err)
	}
	if attr != "uid" {
		t.Errorf("PairAttribute = %q, want uid", attr)
	}

	if _, err := PairAttribute("nonsense"); !errors.Is(err, ErrInvalidRDN) {
		t.Errorf("PairAttribute on pair without '=' should fail with ErrInvalidRDN, got %v", err)
	}
}
