package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthHeader sends the key in a named header.
	AuthHeader
	// AuthCustom delegates to a request modifier.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type AuthType
	// Token is the bearer token or header value.
	Token string
	// Header is the header name for AuthHeader.
	Header string
	// Apply modifies the request for AuthCustom.
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config. An empty token yields
// nil so that callers can pass optional keys straight through.
func BearerAuth(token string) *AuthConfig {
	if token == "" {
		return nil
	}
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// HeaderAuth sends token verbatim in the named header.
func HeaderAuth(header, token string) *AuthConfig {
	return &AuthConfig{Type: AuthHeader, Header: header, Token: token}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthHeader:
		if a.Header != "" {
			req.Header.Set(a.Header, a.Token)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
