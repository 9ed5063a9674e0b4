package auth

import "context"

// Repository abstracts the remote auth endpoints away from the state
// container.
type Repository interface {
	// Login exchanges an email for an access token and user.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Register creates an account and returns its token and user.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// CurrentUser resolves the bearer token carried by the pipeline into the
	// authenticated user.
	CurrentUser(ctx context.Context) (User, error)
}
