package middleware

import (
	"net/http"
	"time"

	"github.com/xyz-asif/gotasks/internal/pkg/logger"
)

// RequestLogger logs every round trip at DEBUG. It never mutates the request.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(req)
			if err != nil {
				log.Debug("%s %s failed after %v: %v", req.Method, req.URL.Path, time.Since(start), err)
				return nil, err
			}

			log.Debug("%s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
			return resp, nil
		})
	}
}
