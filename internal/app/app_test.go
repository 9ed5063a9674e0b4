package app_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/gotasks/internal/app"
	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/devserver"
	"github.com/xyz-asif/gotasks/internal/features/auth"
	"github.com/xyz-asif/gotasks/internal/features/tasks"
	"github.com/xyz-asif/gotasks/internal/pkg/notify"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
)

type sink struct {
	mu   sync.Mutex
	msgs []string
}

func (s *sink) Notify(_ notify.Severity, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, message)
}

func (s *sink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

// harness wires the full client stack against an in-process dev server.
type harness struct {
	app   *app.App
	sink  *sink
	ts    *httptest.Server
	creds string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	serverCfg := &config.Config{
		JWTSecret:      "integration-secret",
		JWTExpireHours: 1,
		FrontendURL:    "http://localhost:4200",
		AppEnv:         "test",
		LogLevel:       "error",
	}
	ts := httptest.NewServer(devserver.New(serverCfg).Handler())
	t.Cleanup(ts.Close)

	credsFile := filepath.Join(t.TempDir(), "credentials.json")
	clientCfg := &config.Config{
		APIBaseURL:      ts.URL,
		HTTPTimeout:     5 * time.Second,
		CredentialsFile: credsFile,
		LogLevel:        "error",
		AppEnv:          "test",
	}

	n := &sink{}
	a := app.New(clientCfg, app.Options{Notifier: n})
	return &harness{app: a, sink: n, ts: ts, creds: credsFile}
}

func (h *harness) register(t *testing.T, email string) auth.AuthState {
	t.Helper()
	req, err := auth.NewRegisterRequest(email)
	require.NoError(t, err)
	require.NoError(t, h.app.Auth.Register(context.Background(), req))
	state := h.app.Auth.Current()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	return state
}

func TestRegisterPersistsSession(t *testing.T) {
	h := newHarness(t)

	state := h.register(t, "ada@example.com")
	require.Equal(t, "ada@example.com", state.User.Email)

	// The session survives a fresh stack sharing the credentials file.
	again := app.New(h.app.Config, app.Options{Notifier: notify.Discard})
	require.True(t, again.Auth.Current().IsAuthenticated)
	require.Equal(t, state.User.ID, again.Auth.Current().User.ID)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	h := newHarness(t)

	req, err := auth.NewLoginRequest("nobody@example.com")
	require.NoError(t, err)
	err = h.app.Auth.Login(context.Background(), req)
	require.Error(t, err)

	state := h.app.Auth.Current()
	require.False(t, state.IsAuthenticated)
	require.Equal(t, "Invalid email", state.Err)
	require.Contains(t, h.sink.messages(), "Unauthorized. Please log in again.")
}

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "grace@example.com").User
	ctx := context.Background()

	h.app.Tasks.Load(ctx, user.ID)
	require.Empty(t, h.app.Tasks.Current().Tasks)

	first, err := h.app.Tasks.Create(ctx, mustCreate(t, "write report", "", user.ID))
	require.NoError(t, err)
	second, err := h.app.Tasks.Create(ctx, mustCreate(t, "review patch", "before Friday", user.ID))
	require.NoError(t, err)
	require.Equal(t, []string{first.ID, second.ID}, ids(h.app.Tasks.Current().Tasks))

	updReq, err := tasks.NewUpdateTaskRequest(first.ID, "write weekly report", "", false, user.ID)
	require.NoError(t, err)
	updated, err := h.app.Tasks.Update(ctx, updReq)
	require.NoError(t, err)
	require.Equal(t, "write weekly report", updated.Title)
	require.Equal(t, "write weekly report", h.app.Tasks.Current().Tasks[0].Title)

	toggled, err := h.app.Tasks.ToggleCompletion(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)
	back, err := h.app.Tasks.ToggleCompletion(ctx, second.ID)
	require.NoError(t, err)
	require.False(t, back.Completed)

	require.NoError(t, h.app.Tasks.Delete(ctx, first.ID))
	require.Equal(t, []string{second.ID}, ids(h.app.Tasks.Current().Tasks))

	// Reload from the server agrees with the local snapshot.
	h.app.Tasks.Load(ctx, user.ID)
	require.Equal(t, []string{second.ID}, ids(h.app.Tasks.Current().Tasks))
	require.Empty(t, h.sink.messages())
}

func TestDeleteUnknownTaskNotifies(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "linus@example.com").User
	ctx := context.Background()

	created, err := h.app.Tasks.Create(ctx, mustCreate(t, "keep me", "", user.ID))
	require.NoError(t, err)

	err = h.app.Tasks.Delete(ctx, "no-such-id")
	require.Error(t, err)
	require.Contains(t, h.sink.messages(), "Resource not found")

	state := h.app.Tasks.Current()
	require.Equal(t, []string{created.ID}, ids(state.Tasks))
	require.Equal(t, "Failed to delete task", state.Err)
}

func TestBareTokenRestoreRejectionLogsOut(t *testing.T) {
	h := newHarness(t)

	// A token-only credentials file triggers background verification during
	// stack construction; the wrong signing secret guarantees a 401.
	forged, err := token.Generate("ghost", "ghost@example.com", "wrong-secret", time.Hour)
	require.NoError(t, err)
	require.NoError(t, auth.NewCredentialStore(h.creds).Save(auth.Credentials{AccessToken: forged}))

	n := &sink{}
	a := app.New(h.app.Config, app.Options{Notifier: n})

	require.Eventually(t, func() bool {
		st := a.Auth.Current()
		return !st.IsAuthenticated && !st.IsLoading
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, statErr := os.Stat(h.creds)
		return os.IsNotExist(statErr)
	}, 2*time.Second, 10*time.Millisecond)
	require.Contains(t, n.messages(), "Unauthorized. Please log in again.")
}

func TestForgedTokenForcesLogout(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "mallory@example.com").User

	// Replace the stored token with one signed by the wrong secret. The
	// unverified expiry pre-check passes, so it reaches the server.
	forged, err := token.Generate(user.ID, user.Email, "wrong-secret", time.Hour)
	require.NoError(t, err)
	require.NoError(t, h.app.Credentials.Save(auth.Credentials{AccessToken: forged, User: user}))

	updates, cancel := h.app.Auth.Subscribe()
	defer cancel()
	<-updates // replayed current snapshot

	h.app.Tasks.Load(context.Background(), user.ID)

	state := h.app.Tasks.Current()
	require.Equal(t, "Failed to load tasks", state.Err)
	require.Contains(t, h.sink.messages(), "Unauthorized. Please log in again.")

	require.Eventually(t, func() bool {
		select {
		case s := <-updates:
			return !s.IsAuthenticated
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	_, err = os.Stat(h.creds)
	require.True(t, os.IsNotExist(err))
}

func TestLoadingSignalDuringRequests(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "barbara@example.com").User

	var mu sync.Mutex
	var transitions []bool
	h.app.Tracker.OnChange(func(active bool) {
		mu.Lock()
		transitions = append(transitions, active)
		mu.Unlock()
	})

	h.app.Tasks.Load(context.Background(), user.ID)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []bool{true, false}, transitions)
	require.False(t, h.app.Tracker.Active())
}

func mustCreate(t *testing.T, title, description, userID string) tasks.CreateTaskRequest {
	t.Helper()
	req, err := tasks.NewCreateTaskRequest(title, description, userID)
	require.NoError(t, err)
	return req
}

func ids(list []tasks.Task) []string {
	out := make([]string, 0, len(list))
	for _, task := range list {
		out = append(out, task.ID)
	}
	return out
}
