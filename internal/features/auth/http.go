package auth

import (
	"context"
	"fmt"

	"github.com/xyz-asif/gotasks/internal/pkg/apiclient"
)

// HTTPRepository talks to the remote /auth endpoints over the shared API
// client.
type HTTPRepository struct {
	api *apiclient.Client
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *apiclient.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	return r.authCall(ctx, "/auth/login", req)
}

func (r *HTTPRepository) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	return r.authCall(ctx, "/auth/register", req)
}

func (r *HTTPRepository) CurrentUser(ctx context.Context) (User, error) {
	var out User
	if err := r.api.Get(ctx, "/auth/me", &out); err != nil {
		return User{}, err
	}
	if err := out.Validate(); err != nil {
		return User{}, fmt.Errorf("invalid user in response: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) authCall(ctx context.Context, path string, body interface{}) (AuthResponse, error) {
	var out AuthResponse
	if err := r.api.Post(ctx, path, body, &out); err != nil {
		return AuthResponse{}, err
	}
	if out.AccessToken == "" {
		return AuthResponse{}, fmt.Errorf("missing access token in response")
	}
	if err := out.User.Validate(); err != nil {
		return AuthResponse{}, fmt.Errorf("invalid user in response: %w", err)
	}
	return out, nil
}
