package auth

import "time"

// User is the authenticated account as returned by the API. Immutable on the
// client; a new instance arrives with every login, register, or /auth/me
// response.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate enforces the entity invariants on a decoded user.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrMissingUserID
	}
	return ValidateEmail(u.Email)
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
}

func NewLoginRequest(email string) (LoginRequest, error) {
	if err := ValidateEmail(email); err != nil {
		return LoginRequest{}, err
	}
	return LoginRequest{Email: email}, nil
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email string `json:"email"`
}

func NewRegisterRequest(email string) (RegisterRequest, error) {
	if err := ValidateEmail(email); err != nil {
		return RegisterRequest{}, err
	}
	return RegisterRequest{Email: email}, nil
}

// AuthResponse is the body of a successful login or register call.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
