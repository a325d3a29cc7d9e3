// Package validation validates structs through go-playground/validator
// tags and reports failures as *errors.AppError with per-field details.
//
//	type Credentials struct {
//	    ServerURL string `json:"server_url" validate:"required,url"`
//	}
//	err := validation.Validate(creds)
//
// Field names in messages come from json tags, falling back to the
// snake_case Go field name.
package validation
