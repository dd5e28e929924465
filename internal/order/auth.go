package order

import "net/http"

// HeaderProvider decorates outgoing backend requests with auth headers.
type HeaderProvider interface {
	Apply(req *http.Request)
}

// BearerToken sends a static bearer token on every request. An empty token
// sends nothing, for backends that accept anonymous order creation.
type BearerToken struct {
	token string
}

// NewBearerToken creates a bearer token header provider.
func NewBearerToken(token string) *BearerToken {
	return &BearerToken{token: token}
}

// Apply sets the Authorization header when a token is configured.
func (b *BearerToken) Apply(req *http.Request) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
}
