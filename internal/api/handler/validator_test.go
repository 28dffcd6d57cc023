package handler

import (
	"errors"
	"testing"

	"github.com/staffdir/directory-api/internal/core/domain"
)

func validate(t *testing.T, req any) *domain.ValidationError {
	t.Helper()
	err := NewValidator().Validate(req)
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve
}

func TestValidator_AcceptsValidCreateUser(t *testing.T) {
	req := createUserRequest{
		Name:     "Alice Johnson",
		Username: "alice",
		Password: "s3cret",
		Role:     "ROLE_USER",
	}
	if ve := validate(t, &req); ve != nil {
		t.Fatalf("unexpected failures: %v", ve.Fields)
	}
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	req := createUserRequest{
		Name:     "x1",     // too short, digit, no uppercase
		Username: "ab",     // too short
		Password: "short",  // too short
		Role:     "WIZARD", // not a role
	}
	ve := validate(t, &req)
	if ve == nil {
		t.Fatalf("expected failures")
	}
	for _, field := range []string{"name", "username", "password", "role"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Errorf("expected a failure for %q, got %v", field, ve.Fields)
		}
	}
}

func TestValidator_NameRules(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"letters and spaces with uppercase", "Alice Johnson", true},
		{"single word", "Alice", true},
		{"digits rejected", "Alice 2nd", false},
		{"punctuation rejected", "Alice-Johnson", false},
		{"no uppercase rejected", "alice johnson", false},
		{"too short", "Al", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createUserRequest{Name: tc.value, Username: "alice", Password: "s3cret", Role: "ROLE_USER"}
			ve := validate(t, &req)
			if tc.ok && ve != nil {
				t.Fatalf("expected %q to pass, got %v", tc.value, ve.Fields)
			}
			if !tc.ok {
				if ve == nil {
					t.Fatalf("expected %q to fail", tc.value)
				}
				if _, found := ve.Fields["name"]; !found {
					t.Fatalf("expected a name failure, got %v", ve.Fields)
				}
			}
		})
	}
}

func TestValidator_RoleEnum(t *testing.T) {
	for _, role := range []string{"ROLE_SUPER_ADMIN", "ROLE_COMPANY_ADMIN", "ROLE_USER"} {
		req := createUserRequest{Name: "Alice", Username: "alice", Password: "s3cret", Role: role}
		if ve := validate(t, &req); ve != nil {
			t.Errorf("role %q rejected: %v", role, ve.Fields)
		}
	}
	for _, role := range []string{"", "role_user", "ROLE_ADMIN", "SuperAdmin"} {
		req := createUserRequest{Name: "Alice", Username: "alice", Password: "s3cret", Role: role}
		if ve := validate(t, &req); ve == nil {
			t.Errorf("role %q accepted", role)
		}
	}
}

func TestValidator_UpdateAllowsAbsentFields(t *testing.T) {
	// A fully empty update is valid; fields keep their current values.
	if ve := validate(t, &updateUserRequest{}); ve != nil {
		t.Fatalf("unexpected failures: %v", ve.Fields)
	}

	// Present fields are still checked.
	bad := "x"
	ve := validate(t, &updateUserRequest{Name: &bad})
	if ve == nil {
		t.Fatalf("expected a name failure")
	}
	if _, ok := ve.Fields["name"]; !ok {
		t.Fatalf("expected a name failure, got %v", ve.Fields)
	}
}

func TestValidator_CompanyNameLength(t *testing.T) {
	if ve := validate(t, &companyRequest{Name: "Acme Logistics"}); ve != nil {
		t.Fatalf("unexpected failures: %v", ve.Fields)
	}
	if ve := validate(t, &companyRequest{Name: "Acme"}); ve == nil {
		t.Fatalf("expected a failure for a 4-character name")
	}
	if ve := validate(t, &companyRequest{Name: ""}); ve == nil {
		t.Fatalf("expected a failure for an empty name")
	}
}
