package twitter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is returned when an authorizer is built with an incomplete credential set.
var ErrMissingCredentials = errors.New("missing credentials")

// Authorizer produces the Authorization header value for one request.
// params are the query parameters that will be sent with rawURL.
type Authorizer interface {
	Authorize(method, rawURL string, params map[string]string) (string, error)
}

// BearerAuth authorizes requests with an OAuth2 user-context bearer token.
type BearerAuth struct {
	Token string
}

// NewBearerAuth returns a BearerAuth, failing when token is empty.
func NewBearerAuth(token string) (*BearerAuth, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: bearer token", ErrMissingCredentials)
	}
	return &BearerAuth{Token: token}, nil
}

// Authorize implements Authorizer.
func (b *BearerAuth) Authorize(_, _ string, _ map[string]string) (string, error) {
	if b.Token == "" {
		return "", fmt.Errorf("%w: bearer token", ErrMissingCredentials)
	}
	return "Bearer " + b.Token, nil
}
