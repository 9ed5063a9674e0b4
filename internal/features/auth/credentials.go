package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/xyz-asif/gotasks/pkg/errors"
)

// Credentials is the session persisted between runs: the bearer token and the
// serialized user, always stored and cleared together.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

// TokenUsable reports whether the token is present and, when it carries a
// readable exp claim, not yet expired. The claim is read without signature
// verification; only the server can actually vouch for the token.
func (c *Credentials) TokenUsable(now time.Time) bool {
	if c.AccessToken == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(c.AccessToken, &claims); err != nil {
		// Opaque tokens are passed through; the server decides.
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}

// CredentialStore is the durable client storage behind the auth container.
// One JSON file, mode 0600, replaced atomically on every write. It doubles as
// the pipeline's TokenSource.
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load reads the persisted credentials. A missing file yields
// errors.ErrNoCredentials.
func (s *CredentialStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, apierrors.ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	if creds.AccessToken == "" {
		return Credentials{}, apierrors.ErrNoCredentials
	}
	return creds, nil
}

// Save persists token and user together.
func (s *CredentialStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

// Clear removes the persisted session. Clearing an already-empty store is
// not an error.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Token is the synchronous read the HTTP pipeline consults per request. It
// reads durable storage, not in-memory state, and treats a clearly expired
// token as absent.
func (s *CredentialStore) Token() string {
	creds, err := s.Load()
	if err != nil {
		return ""
	}
	if !creds.TokenUsable(time.Now()) {
		return ""
	}
	return creds.AccessToken
}
