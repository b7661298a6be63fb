package validation

import (
	"net/http"
	"testing"

	"github.com/conduit-labs/conduit/errors"
)

type registration struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestStructValid(t *testing.T) {
	r := registration{Username: "ada", Email: "ada@x.com", Password: "secret123"}
	if err := Struct(r); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStructMissingFields(t *testing.T) {
	err := Struct(registration{})
	if err == nil {
		t.Fatal("expected error for empty struct")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.HTTPStatus)
	}
	for _, field := range []string{"username", "email", "password"} {
		if appErr.Fields[field] != "can't be blank" {
			t.Errorf("field %s: got %q", field, appErr.Fields[field])
		}
	}
}

func TestStructFieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		input registration
		field string
		want  string
	}{
		{"bad email", registration{Username: "ada", Email: "not-an-email", Password: "secret123"}, "email", "is invalid"},
		{"non alphanumeric username", registration{Username: "ada!", Email: "ada@x.com", Password: "secret123"}, "username", "is invalid"},
		{"short password", registration{Username: "ada", Email: "ada@x.com", Password: "abc"}, "password", "must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Fields[tt.field] != tt.want {
				t.Errorf("field %s: got %q, want %q", tt.field, appErr.Fields[tt.field], tt.want)
			}
		})
	}
}
