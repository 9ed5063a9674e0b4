package auth

import (
	"context"
	"sync"
	"time"

	apierrors "github.com/xyz-asif/gotasks/pkg/errors"
)

// AuthState is the complete auth snapshot. Every field changes together; the
// whole value is replaced on each mutation so subscribers never see a
// half-updated session.
type AuthState struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// Store owns the one authoritative auth snapshot and the persisted session
// behind it. Construction hydrates from the credential store: token and user
// present means authenticated with no network call; a bare token is verified
// against /auth/me in the background once Start is called.
type Store struct {
	repo     Repository
	creds    *CredentialStore
	onLogout func()

	mu            sync.Mutex
	state         AuthState
	subs          map[int]chan AuthState
	nextSub       int
	verifyPending bool
}

type Option func(*Store)

// WithLogoutHook installs a callback fired after every logout, forced or
// explicit. The presentation layer uses it to navigate to the login view.
func WithLogoutHook(fn func()) Option {
	return func(s *Store) { s.onLogout = fn }
}

func NewStore(repo Repository, creds *CredentialStore, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		creds: creds,
		subs:  make(map[int]chan AuthState),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

func (s *Store) restore() {
	stored, err := s.creds.Load()
	if err != nil || !stored.TokenUsable(time.Now()) {
		return
	}

	if stored.User != nil {
		user := *stored.User
		s.update(func(st AuthState) AuthState {
			st.User = &user
			st.IsAuthenticated = true
			return st
		})
		return
	}

	// Token without a user: it needs verification before it can be trusted.
	// Deferred to Start so the request flows through the finished pipeline.
	s.verifyPending = true
}

// Start launches the background session verification when construction found
// a token without a user. Call it once after the surrounding wiring is
// complete; calling it again is a no-op.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	pending := s.verifyPending
	s.verifyPending = false
	s.mu.Unlock()

	if pending {
		go s.verifySession(ctx)
	}
}

func (s *Store) verifySession(ctx context.Context) {
	tok := s.creds.Token()
	if tok == "" {
		return
	}

	s.update(func(st AuthState) AuthState {
		st.IsLoading = true
		return st
	})

	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		s.creds.Clear()
		s.update(func(AuthState) AuthState { return AuthState{} })
		return
	}

	// A logout or fresh login that landed while the request was in flight
	// wins; do not re-persist the session it replaced.
	if s.creds.Token() != tok {
		s.update(func(st AuthState) AuthState {
			st.IsLoading = false
			return st
		})
		return
	}

	s.creds.Save(Credentials{AccessToken: tok, User: &user})
	s.update(func(st AuthState) AuthState {
		st.User = &user
		st.IsAuthenticated = true
		st.IsLoading = false
		st.Err = ""
		return st
	})
}

// Current returns a copy of the present snapshot.
func (s *Store) Current() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a stream of snapshots, starting with the current one.
func (s *Store) Subscribe() (<-chan AuthState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan AuthState, 16)
	s.subs[id] = ch
	ch <- s.state.clone()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Login authenticates by email, persists the session, and replaces the
// snapshot. The error is propagated so the caller sees the failure in
// addition to the snapshot's Err field.
func (s *Store) Login(ctx context.Context, req LoginRequest) error {
	return s.authenticate(func() (AuthResponse, error) {
		return s.repo.Login(ctx, req)
	}, "Login failed")
}

// Register creates an account and signs in, with the same persistence and
// snapshot semantics as Login.
func (s *Store) Register(ctx context.Context, req RegisterRequest) error {
	return s.authenticate(func() (AuthResponse, error) {
		return s.repo.Register(ctx, req)
	}, "Registration failed")
}

func (s *Store) authenticate(call func() (AuthResponse, error), fallback string) error {
	s.update(func(st AuthState) AuthState {
		st.IsLoading = true
		st.Err = ""
		return st
	})

	resp, err := call()
	if err != nil {
		message := fallback
		if apiErr := apierrors.AsAPIError(err); apiErr != nil && apiErr.Message != "" {
			message = apiErr.Message
		}
		s.update(func(st AuthState) AuthState {
			st.IsLoading = false
			st.Err = message
			return st
		})
		return err
	}

	user := resp.User
	s.creds.Save(Credentials{AccessToken: resp.AccessToken, User: &user})
	s.update(func(AuthState) AuthState {
		return AuthState{User: &user, IsAuthenticated: true}
	})
	return nil
}

// Logout clears the persisted session, resets the snapshot to the
// unauthenticated initial state, and fires the logout hook. Also invoked by
// the auth interceptor when any request comes back 401.
func (s *Store) Logout() {
	s.creds.Clear()
	s.update(func(AuthState) AuthState { return AuthState{} })
	if s.onLogout != nil {
		s.onLogout()
	}
}

// Token is the synchronous durable-storage read used by the HTTP pipeline.
func (s *Store) Token() string {
	return s.creds.Token()
}

func (s *Store) update(fn func(AuthState) AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.state.clone())
	s.state = next
	for _, sub := range s.subs {
		select {
		case sub <- next.clone():
		default:
		}
	}
}

func (st AuthState) clone() AuthState {
	out := st
	if st.User != nil {
		user := *st.User
		out.User = &user
	}
	return out
}
