package middleware

import (
	"net/http"
	"strings"
)

// TokenSource yields the bearer token consulted per request. The credential
// store implements it: the pipeline reads durable storage, not in-memory
// auth state.
type TokenSource interface {
	Token() string
}

func isAuthEndpoint(path string) bool {
	return strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/register")
}

// Auth injects "Authorization: Bearer <token>" on every request except the
// login and register endpoints. When a non-auth request comes back 401 the
// onUnauthorized hook fires (forced logout) and the response still propagates
// to the caller.
func Auth(tokens TokenSource, onUnauthorized func()) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			authReq := isAuthEndpoint(req.URL.Path)
			if !authReq {
				if token := tokens.Token(); token != "" {
					req = req.Clone(req.Context())
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}

			resp, err := next.RoundTrip(req)
			if err != nil {
				return nil, err
			}

			if resp.StatusCode == http.StatusUnauthorized && !authReq && onUnauthorized != nil {
				onUnauthorized()
			}
			return resp, nil
		})
	}
}
