package patch

import (
	"testing"
)

type testAddress struct {
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type testDoc struct {
	Name    string       `json:"name,omitempty"`
	Address *testAddress `json:"address,omitempty"`
}

func TestApplyCreatesMissingParents(t *testing.T) {
	doc := testDoc{Name: "home"}
	out, err := ApplyRFC6902(doc, []Operation{Set("/address/postal_code", "98052")})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Address == nil || out.Address.PostalCode != "98052" {
		t.Fatalf("expected postal code to be written, got %+v", out.Address)
	}
	if out.Name != "home" {
		t.Errorf("expected name to survive, got %q", out.Name)
	}
}

func TestApplyOverwritesExistingValue(t *testing.T) {
	doc := testDoc{Address: &testAddress{PostalCode: "11111"}}
	out, err := ApplyRFC6902(doc, []Operation{Set("/address/postal_code", "22222")})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Address.PostalCode != "22222" {
		t.Errorf("expected overwrite, got %q", out.Address.PostalCode)
	}
}

func TestApplyDropsRemoveOfMissingPath(t *testing.T) {
	doc := testDoc{Name: "x"}
	out, err := ApplyRFC6902(doc, []Operation{{Op: OperationRemove, Path: "/address/street"}})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Name != "x" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestFillMissingKeepsExistingValues(t *testing.T) {
	current := testDoc{Address: &testAddress{Street: "1 Main St"}}
	source := testDoc{Name: "n", Address: &testAddress{Street: "2 Other St", PostalCode: "98052"}}
	ops, err := FillMissing(current, source)
	if err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	out, err := ApplyRFC6902(current, ops)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.Address.Street != "1 Main St" {
		t.Errorf("existing street overwritten: %q", out.Address.Street)
	}
	if out.Address.PostalCode != "98052" || out.Name != "n" {
		t.Errorf("missing values not filled: %+v %+v", out, out.Address)
	}
}

func TestFilterAllowed(t *testing.T) {
	ops := []Operation{
		Set("/address/street", "a"),
		Set("/address/postal_code", "b"),
		Set("/name", "c"),
	}
	allowed := map[string]bool{"/address/postal_code": true, "/name": true}
	got := FilterAllowed(ops, allowed)
	if len(got) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(got))
	}
	if err := ValidatePatchOperations(got, allowed); err != nil {
		t.Errorf("filtered ops should validate: %v", err)
	}
	if err := ValidatePatchOperations(ops, allowed); err == nil {
		t.Error("expected validation error for street path")
	}
	if err := ValidatePatchOperations(ops, map[string]bool{"/address/*": true, "/name": true}); err != nil {
		t.Errorf("wildcard should allow address children: %v", err)
	}
}
