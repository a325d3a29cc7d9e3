package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/localai-stt/errors"
)

type endpoint struct {
	ServerURL string `json:"server_url" validate:"required,url"`
	APIKey    string `json:"api_key,omitempty"`
	Model     string `validate:"required"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      endpoint
		wantFields []string
	}{
		{"valid", endpoint{ServerURL: "http://localhost:8080", Model: "whisper-1"}, nil},
		{"missing url", endpoint{Model: "whisper-1"}, []string{"server_url"}},
		{"bad url", endpoint{ServerURL: "not a url", Model: "whisper-1"}, []string{"server_url"}},
		{"everything missing", endpoint{}, []string{"server_url", "model"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.input)
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			fields := Fields(err)
			if len(fields) != len(tc.wantFields) {
				t.Fatalf("expected %d field errors, got %+v", len(tc.wantFields), fields)
			}
			for i, want := range tc.wantFields {
				if fields[i].Field != want {
					t.Errorf("field[%d] = %q, want %q", i, fields[i].Field, want)
				}
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	err := Validate(endpoint{ServerURL: "::", Model: "m"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "server_url: must be a valid URL" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestValidateNonStruct(t *testing.T) {
	err := Validate("plain string")
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT for non-struct input, got %v", err)
	}
}

func TestVar(t *testing.T) {
	if err := Var("server_url", "http://localhost:8080", "required,url"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Var("server_url", "", "required,url")
	if err == nil || !strings.Contains(err.Error(), "server_url: is required") {
		t.Fatalf("expected required error, got %v", err)
	}
	if f := Fields(err); len(f) != 1 || f[0].Field != "server_url" {
		t.Errorf("unexpected fields %+v", f)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ServerURL": "server_u_r_l",
		"Model":     "model",
		"apiKey":    "api_key",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldsOnForeignError(t *testing.T) {
	if Fields(errors.Internal(nil)) != nil {
		t.Error("expected no fields for non-validation error")
	}
	if Fields(nil) != nil {
		t.Error("expected no fields for nil")
	}
}
