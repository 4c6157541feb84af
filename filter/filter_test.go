package filter

import "testing"

func TestFilterTypeString(t *testing.T) {
	tests := []struct {
		ft       FilterType
		expected string
	}{
		{FilterAnd, "AND"},
		{FilterOr, "OR"},
		{FilterNot, "NOT"},
		{FilterEquality, "EQUALITY"},
		{FilterPresent, "PRESENT"},
		{FilterRaw, "RAW"},
		{FilterType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.ft.String(); result != tt.expected {
			t.Errorf("FilterType(%d).String() = %s, want %s", tt.ft, result, tt.expected)
		}
	}
}

func TestRenderLeafFilters(t *testing.T) {
	tests := []struct {
		filter   *Filter
		expected string
	}{
		{NewEqualityFilter("uid", "alice"), "(uid=alice)"},
		{NewPresentFilter("objectClass"), "(objectClass=*)"},
		{NewGreaterOrEqualFilter("uidNumber", "1000"), "(uidNumber>=1000)"},
		{NewLessOrEqualFilter("uidNumber", "2000"), "(uidNumber<=2000)"},
		{NewApproxMatchFilter("cn", "alice"), "(cn~=alice)"},
		{NewRawFilter("(uid=verbatim)"), "(uid=verbatim)"},
	}

	for _, tt := range tests {
		if result := tt.filter.String(); result != tt.expected {
			t.Errorf("String() = %s, want %s", result, tt.expected)
		}
	}
}

func TestRenderSubstringFilter(t *testing.T) {
	tests := []struct {
		sf       *SubstringFilter
		expected string
	}{
		{&SubstringFilter{Attribute: "cn", Initial: "John"}, "(cn=John*)"},
		{&SubstringFilter{Attribute: "cn", Final: "Smith"}, "(cn=*Smith)"},
		{&SubstringFilter{Attribute: "cn", Any: []string{"admin"}}, "(cn=*admin*)"},
		{&SubstringFilter{Attribute: "cn", Initial: "J", Any: []string{"oh"}, Final: "n"}, "(cn=J*oh*n)"},
	}

	for _, tt := range tests {
		if result := NewSubstringFilter(tt.sf).String(); result != tt.expected {
			t.Errorf("String() = %s, want %s", result, tt.expected)
		}
	}
}

func TestRenderCompositeFilters(t *testing.T) {
	and := NewAndFilter(
		NewEqualityFilter("objectClass", "person"),
		NewEqualityFilter("uid", "alice"),
	)
	if result := and.String(); result != "(&(objectClass=person)(uid=alice))" {
		t.Errorf("AND render = %s", result)
	}

	or := NewOrFilter(
		NewEqualityFilter("uid", "a"),
		NewEqualityFilter("uid", "b"),
	)
	if result := or.String(); result != "(|(uid=a)(uid=b))" {
		t.Errorf("OR render = %s", result)
	}

	not := NewNotFilter(NewEqualityFilter("status", "disabled"))
	if result := not.String(); result != "(!(status=disabled))" {
		t.Errorf("NOT render = %s", result)
	}
}

func TestNotOfAnd(t *testing.T) {
	f := NewNotFilter(NewAndFilter(
		NewEqualityFilter("sn", "Granger"),
		NewEqualityFilter("sn", "Smith"),
	))
	expected := "(!(&(sn=Granger)(sn=Smith)))"
	if result := f.String(); result != expected {
		t.Errorf("String() = %s, want %s", result, expected)
	}
}

func TestValueSetFilter(t *testing.T) {
	single := NewValueSetFilter("uid", "alice")
	if single.Type != FilterEquality {
		t.Errorf("single value should compile to equality, got %s", single.Type)
	}
	if result := single.String(); result != "(uid=alice)" {
		t.Errorf("String() = %s, want (uid=alice)", result)
	}

	multi := NewValueSetFilter("uid", "a", "b", "c")
	if multi.Type != FilterOr {
		t.Errorf("multiple values should compile to OR, got %s", multi.Type)
	}
	if result := multi.String(); result != "(|(uid=a)(uid=b)(uid=c))" {
		t.Errorf("String() = %s, want (|(uid=a)(uid=b)(uid=c))", result)
	}

	// No values must never render an empty OR.
	empty := NewValueSetFilter("uid")
	if empty.Type != FilterPresent {
		t.Errorf("no values should compile to presence, got %s", empty.Type)
	}
	if result := empty.String(); result != "(uid=*)" {
		t.Errorf("String() = %s, want (uid=*)", result)
	}
}

func TestFromPairs(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []Pair
		expected string
	}{
		{
			"empty criteria yields default filter",
			nil,
			"(objectClass=*)",
		},
		{
			"single pair single value",
			[]Pair{{Attr: "uid", Values: []string{"alice"}}},
			"(uid=alice)",
		},
		{
			"two pairs preserve input order",
			[]Pair{
				{Attr: "givenName", Values: []string{"Michael"}},
				{Attr: "sn", Values: []string{"Granger"}},
			},
			"(&(givenName=Michael)(sn=Granger))",
		},
		{
			"multi-valued pair inside conjunction",
			[]Pair{
				{Attr: "objectClass", Values: []string{"person"}},
				{Attr: "uid", Values: []string{"a", "b"}},
			},
			"(&(objectClass=person)(|(uid=a)(uid=b)))",
		},
	}

	for _, tt := range tests {
		if result := FromPairs(tt.pairs...).String(); result != tt.expected {
			t.Errorf("%s: FromPairs = %s, want %s", tt.name, result, tt.expected)
		}
	}
}

func TestCompile(t *testing.T) {
	if result := Compile().String(); result != "(objectClass=*)" {
		t.Errorf("Compile() = %s, want (objectClass=*)", result)
	}

	single := NewEqualityFilter("uid", "alice")
	if Compile(single) != single {
		t.Error("Compile of a single filter should return it unchanged")
	}

	combined := Compile(
		NewEqualityFilter("givenName", "Michael"),
		NewEqualityFilter("sn", "Granger"),
	)
	if result := combined.String(); result != "(&(givenName=Michael)(sn=Granger))" {
		t.Errorf("Compile = %s", result)
	}
}

func TestConjoin(t *testing.T) {
	base := Default()
	refined := Conjoin(base, NewEqualityFilter("uid", "alice"))
	if result := refined.String(); result != "(&(objectClass=*)(uid=alice))" {
		t.Errorf("Conjoin = %s", result)
	}

	// Chained refinement stays conjunctive in application order.
	again := Conjoin(refined, NewEqualityFilter("sn", "Smith"))
	if result := again.String(); result != "(&(&(objectClass=*)(uid=alice))(sn=Smith))" {
		t.Errorf("chained Conjoin = %s", result)
	}

	if Conjoin(base) != base {
		t.Error("Conjoin with no extra filters should return the previous filter")
	}

	if result := Conjoin(nil, NewEqualityFilter("uid", "x")).String(); result != "(uid=x)" {
		t.Errorf("Conjoin with nil previous = %s", result)
	}
}
