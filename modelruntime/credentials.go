package modelruntime

import (
	"fmt"
	"maps"
	"strings"

	"github.com/kbukum/localai-stt/errors"
	"github.com/kbukum/localai-stt/validation"
)

// Credential keys understood by Credentials.
const (
	KeyServerURL = "server_url"
	KeyAPIKey    = "api_key"
)

// Credentials identifies and authenticates a self-hosted endpoint.
// Unknown keys from the loose form are kept in Extra.
type Credentials struct {
	ServerURL string         `json:"server_url" validate:"required,http_url"`
	APIKey    string         `json:"api_key,omitempty"`
	Extra     map[string]any `json:"-"`
}

// CredentialsFromMap converts an operator-supplied credentials map into
// Credentials. A non-string server_url or api_key fails with
// CREDENTIALS_VALIDATION_FAILED; a missing server_url is left for Validate.
func CredentialsFromMap(m map[string]any) (Credentials, error) {
	var c Credentials
	for k, v := range m {
		switch k {
		case KeyServerURL, KeyAPIKey:
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return Credentials{}, errors.CredentialsValidationFailed(
					fmt.Errorf("%s: expected string, got %T", k, v))
			}
			if k == KeyServerURL {
				c.ServerURL = s
			} else {
				c.APIKey = s
			}
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]any)
			}
			c.Extra[k] = v
		}
	}
	return c, nil
}

// ToMap returns the loose form of c. Extra keys never shadow the typed ones.
func (c Credentials) ToMap() map[string]any {
	m := make(map[string]any, len(c.Extra)+2)
	maps.Copy(m, c.Extra)
	m[KeyServerURL] = c.ServerURL
	if c.APIKey != "" {
		m[KeyAPIKey] = c.APIKey
	}
	return m
}

// Clone returns a deep copy of c's Extra map along with its fields.
func (c Credentials) Clone() Credentials {
	c.Extra = maps.Clone(c.Extra)
	return c
}

// Normalized returns a copy of c with at most one trailing slash removed
// from ServerURL. The receiver is not modified.
func (c Credentials) Normalized() Credentials {
	out := c.Clone()
	out.ServerURL = strings.TrimSuffix(out.ServerURL, "/")
	return out
}

// Validate checks that ServerURL is an absolute http or https URL.
func (c Credentials) Validate() error {
	return validation.Validate(c)
}

// String renders c for logs with the API key masked.
func (c Credentials) String() string {
	if c.APIKey != "" {
		return fmt.Sprintf("Credentials{server_url=%s api_key=***}", c.ServerURL)
	}
	return fmt.Sprintf("Credentials{server_url=%s}", c.ServerURL)
}
