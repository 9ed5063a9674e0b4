// Package middleware implements the client-side HTTP request pipeline. Each
// stage wraps an http.RoundTripper and is applied uniformly to every outbound
// call: auth injection, error normalization, loading tracking, request
// logging. Stages are composed in a fixed order by Chain.
package middleware

import "net/http"

// Middleware wraps an http.RoundTripper with additional behavior.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain composes middlewares around base. The first middleware is outermost:
// it sees the request first and the response last. A nil base means
// http.DefaultTransport.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}
