package handler

import "testing"

func TestValidator_GreaterThan(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&getAccountRequest{ID: 0})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "id must be greater than 0" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	if err := v.Validate(&getAccountRequest{ID: 1}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidator_UntaggedStructPasses(t *testing.T) {
	if err := NewValidator().Validate(&createAccountRequest{}); err != nil {
		t.Fatalf("create request carries no rules, got %v", err)
	}
}
