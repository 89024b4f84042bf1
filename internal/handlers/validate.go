package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FieldError is one entry in a validation failure response.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// rule is a single predicate over a field value, paired with the
// message reported when it fails.
type rule struct {
	ok  func(string) bool
	msg string
}

// fieldRules is the ordered rule list for one field. Optional fields
// skip their rules when the value is empty. Trimmed fields are
// whitespace-trimmed before evaluation (and the caller is expected to
// trim them again before use).
type fieldRules struct {
	field    string
	optional bool
	trim     bool
	rules    []rule
}

// schema is a declarative, transport-independent validation schema:
// fields in order, each with its ordered rule list. Evaluation reports
// the first failing rule of every field.
type schema []fieldRules

// validate evaluates the schema against a field→value map and returns
// all field errors found, or nil.
func (s schema) validate(values map[string]string) []FieldError {
	var errs []FieldError
	for _, f := range s {
		v := values[f.field]
		if f.trim {
			v = strings.TrimSpace(v)
		}
		if f.optional && v == "" {
			continue
		}
		for _, r := range f.rules {
			if !r.ok(v) {
				errs = append(errs, FieldError{Field: f.field, Msg: r.msg})
				break
			}
		}
	}
	return errs
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func notEmpty(v string) bool   { return v != "" }
func validEmail(v string) bool { return emailPattern.MatchString(v) }

func validUUID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func maxLen(n int) func(string) bool {
	return func(v string) bool { return utf8.RuneCountInString(v) <= n }
}

func minLen(n int) func(string) bool {
	return func(v string) bool { return utf8.RuneCountInString(v) >= n }
}

// Schemas for each mutating operation. Messages match what clients of
// the API display inline next to form fields.
var (
	registerSchema = schema{
		{field: "name", trim: true, rules: []rule{
			{notEmpty, "Name is required"},
			{maxLen(100), "Name cannot exceed 100 characters"},
		}},
		{field: "email", rules: []rule{
			{validEmail, "Please provide a valid email"},
		}},
		{field: "password", rules: []rule{
			{minLen(6), "Password must be at least 6 characters"},
		}},
	}

	loginSchema = schema{
		{field: "email", rules: []rule{
			{validEmail, "Please provide a valid email"},
		}},
		{field: "password", rules: []rule{
			{notEmpty, "Password is required"},
		}},
	}

	profileSchema = schema{
		{field: "name", optional: true, trim: true, rules: []rule{
			{maxLen(100), "Name cannot exceed 100 characters"},
		}},
		{field: "bio", optional: true, rules: []rule{
			{maxLen(500), "Bio cannot exceed 500 characters"},
		}},
	}

	postSchema = schema{
		{field: "title", trim: true, rules: []rule{
			{notEmpty, "Title is required"},
			{maxLen(100), "Title cannot exceed 100 characters"},
		}},
		{field: "content", rules: []rule{
			{notEmpty, "Content is required"},
		}},
		{field: "categoryId", rules: []rule{
			{notEmpty, "Category is required"},
			{validUUID, "Invalid category ID"},
		}},
		{field: "excerpt", optional: true, rules: []rule{
			{maxLen(200), "Excerpt cannot exceed 200 characters"},
		}},
	}

	categorySchema = schema{
		{field: "name", trim: true, rules: []rule{
			{notEmpty, "Category name is required"},
			{maxLen(50), "Name cannot exceed 50 characters"},
		}},
		{field: "description", optional: true, rules: []rule{
			{maxLen(200), "Description cannot exceed 200 characters"},
		}},
	}
)
