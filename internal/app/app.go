// Package app assembles the client stack: credential store, interceptor
// chain, repositories, and state containers, in the fixed pipeline order
// auth -> errors -> loading.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/features/auth"
	"github.com/xyz-asif/gotasks/internal/features/tasks"
	"github.com/xyz-asif/gotasks/internal/middleware"
	"github.com/xyz-asif/gotasks/internal/pkg/apiclient"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	"github.com/xyz-asif/gotasks/internal/pkg/notify"
)

type App struct {
	Config      *config.Config
	Log         *logger.Logger
	Tracker     *middleware.Tracker
	Credentials *auth.CredentialStore
	Auth        *auth.Store
	Tasks       *tasks.Store
}

type Options struct {
	// BaseURL overrides Config.APIBaseURL (used by tests).
	BaseURL string
	// Notifier receives the pipeline's failure notifications. Defaults to a
	// logging notifier.
	Notifier notify.Notifier
	// LoadingSkip lists path prefixes excluded from the loading signal.
	LoadingSkip []string
	// LogoutHook fires after every logout, forced or explicit.
	LogoutHook func()
	// Transport overrides the base transport under the chain (tests).
	Transport http.RoundTripper
}

func New(cfg *config.Config, opts Options) *App {
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	sink := opts.Notifier
	if sink == nil {
		sink = &notify.LogNotifier{Log: log}
	}

	baseURL := cfg.APIBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}

	a := &App{
		Config:      cfg,
		Log:         log,
		Tracker:     middleware.NewTracker(),
		Credentials: auth.NewCredentialStore(cfg.CredentialsFile),
	}

	// The logout hook closes over the app so the auth stage can force a
	// logout on 401 even though the store is built after the chain.
	chain := middleware.Chain(
		opts.Transport,
		middleware.Auth(a.Credentials, func() {
			if a.Auth != nil {
				a.Auth.Logout()
			}
		}),
		middleware.Errors(sink),
		middleware.Loading(a.Tracker, opts.LoadingSkip...),
		middleware.RequestLogger(log),
	)

	httpClient := &http.Client{
		Transport: chain,
		Timeout:   cfg.HTTPTimeout,
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 30 * time.Second
	}

	api := apiclient.New(baseURL, httpClient)

	var authOpts []auth.Option
	if opts.LogoutHook != nil {
		authOpts = append(authOpts, auth.WithLogoutHook(opts.LogoutHook))
	}
	a.Auth = auth.NewStore(auth.NewHTTPRepository(api), a.Credentials, authOpts...)
	a.Tasks = tasks.NewStore(tasks.NewHTTPRepository(api))

	// Background verification of a restored bare token starts only now, with
	// a.Auth assigned, so the 401 logout closure never races the wiring.
	a.Auth.Start(context.Background())
	return a
}
