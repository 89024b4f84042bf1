package handlers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// findField returns the error recorded for a field, if any.
func findField(errs []FieldError, field string) (FieldError, bool) {
	for _, e := range errs {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// TestRegisterSchema exercises the registration rules: required name,
// valid email, minimum password length.
func TestRegisterSchema(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		errs := registerSchema.validate(map[string]string{
			"name": "Ada Lovelace", "email": "ada@example.com", "password": "secret1",
		})
		if errs != nil {
			t.Errorf("validate() = %v, want nil", errs)
		}
	})

	t.Run("all fields invalid reports one error each", func(t *testing.T) {
		errs := registerSchema.validate(map[string]string{
			"name": "   ", "email": "not-an-email", "password": "ab",
		})
		if len(errs) != 3 {
			t.Fatalf("validate() returned %d errors, want 3: %v", len(errs), errs)
		}
		if e, ok := findField(errs, "name"); !ok || e.Msg != "Name is required" {
			t.Errorf("name error = %+v, want required message", e)
		}
		if e, ok := findField(errs, "email"); !ok || e.Msg != "Please provide a valid email" {
			t.Errorf("email error = %+v, want email message", e)
		}
		if e, ok := findField(errs, "password"); !ok || e.Msg != "Password must be at least 6 characters" {
			t.Errorf("password error = %+v, want length message", e)
		}
	})

	t.Run("first failing rule wins per field", func(t *testing.T) {
		errs := registerSchema.validate(map[string]string{
			"name": strings.Repeat("n", 101), "email": "ada@example.com", "password": "secret1",
		})
		if len(errs) != 1 || errs[0].Msg != "Name cannot exceed 100 characters" {
			t.Errorf("validate() = %v, want single over-length name error", errs)
		}
	})
}

// TestEmailPattern spot-checks the email rule against common shapes.
func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@example.com", true},
		{"first.last@sub.example.org", true},
		{"a-b@example.co", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"ada@", false},
		{"ada@example", false},
		{"ada example@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := validEmail(tt.email); got != tt.want {
				t.Errorf("validEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

// TestPostSchema verifies the post rules, in particular that the
// category id must be a well-formed UUID before any lookup happens.
func TestPostSchema(t *testing.T) {
	valid := map[string]string{
		"title": "Hello", "content": "body", "categoryId": uuid.NewString(),
	}

	t.Run("valid input passes", func(t *testing.T) {
		if errs := postSchema.validate(valid); errs != nil {
			t.Errorf("validate() = %v, want nil", errs)
		}
	})

	t.Run("malformed category id", func(t *testing.T) {
		errs := postSchema.validate(map[string]string{
			"title": "Hello", "content": "body", "categoryId": "not-a-uuid",
		})
		if len(errs) != 1 || errs[0].Msg != "Invalid category ID" {
			t.Errorf("validate() = %v, want invalid category id error", errs)
		}
	})

	t.Run("missing category id", func(t *testing.T) {
		errs := postSchema.validate(map[string]string{
			"title": "Hello", "content": "body",
		})
		if len(errs) != 1 || errs[0].Msg != "Category is required" {
			t.Errorf("validate() = %v, want required category error", errs)
		}
	})

	t.Run("optional excerpt checked only when present", func(t *testing.T) {
		withExcerpt := map[string]string{
			"title": "Hello", "content": "body",
			"categoryId": uuid.NewString(), "excerpt": strings.Repeat("e", 201),
		}
		errs := postSchema.validate(withExcerpt)
		if len(errs) != 1 || errs[0].Msg != "Excerpt cannot exceed 200 characters" {
			t.Errorf("validate() = %v, want excerpt length error", errs)
		}
	})
}

// TestProfileSchema verifies every profile field is optional.
func TestProfileSchema(t *testing.T) {
	if errs := profileSchema.validate(map[string]string{}); errs != nil {
		t.Errorf("validate(empty) = %v, want nil", errs)
	}

	errs := profileSchema.validate(map[string]string{"bio": strings.Repeat("b", 501)})
	if len(errs) != 1 || errs[0].Msg != "Bio cannot exceed 500 characters" {
		t.Errorf("validate() = %v, want bio length error", errs)
	}
}
