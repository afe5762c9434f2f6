// Package redirect bridges an externally delivered redirect callback back
// into the authenticate call that triggered it.
package redirect

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// Launcher opens the external redirect URL (browser, custom tab, intent).
type Launcher interface {
	Launch(ctx context.Context, rawURL string) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, rawURL string) error

func (f LauncherFunc) Launch(ctx context.Context, rawURL string) error {
	return f(ctx, rawURL)
}

// Correlator is a single-slot suspension primitive: at most one
// authenticator may be awaiting its redirect callback at a time. A second
// Begin while one is pending is rejected rather than silently overwriting
// the pending wait.
type Correlator struct {
	mu       sync.Mutex
	selected *models.Authenticator
	done     chan map[string]string

	launcher Launcher
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures the Correlator.
type Option func(*Correlator)

func WithLauncher(l Launcher) Option {
	return func(c *Correlator) {
		c.launcher = l
	}
}

// WithTimeout bounds how long Begin waits for the callback. Zero waits
// until the context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Correlator) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Correlator) {
		c.logger = logger
	}
}

func New(opts ...Option) *Correlator {
	c := &Correlator{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Begin launches the authenticator's external redirect and suspends until
// Complete delivers the callback parameters. The authenticator must declare
// the redirection prompt type and a redirect URL.
func (c *Correlator) Begin(ctx context.Context, a models.Authenticator) (map[string]string, error) {
	if !a.IsRedirect() {
		return nil, dErrors.New(dErrors.CodeRedirectConfiguration,
			"authenticator "+a.Name+" does not use a redirection prompt")
	}
	redirectURL := a.RedirectURL()
	if redirectURL == "" {
		return nil, dErrors.New(dErrors.CodeRedirectConfiguration,
			"authenticator "+a.Name+" declares no redirect url")
	}

	c.mu.Lock()
	if c.selected != nil {
		c.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeRedirectConfiguration,
			"a redirect is already pending for authenticator "+c.selected.Name)
	}
	c.selected = &a
	done := make(chan map[string]string, 1)
	c.done = done
	c.mu.Unlock()

	if c.launcher != nil {
		if err := c.launcher.Launch(ctx, redirectURL); err != nil {
			c.clear()
			return nil, dErrors.Wrap(err, dErrors.CodeRedirectConfiguration, "failed to launch redirect")
		}
	}
	c.logger.InfoContext(ctx, "awaiting redirect callback",
		"authenticator", a.Name,
		"authenticator_id", a.AuthenticatorID,
	)

	var expired <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case params := <-done:
		// The slot is cleared only here, after the waiter has observed the
		// resolution, so a late second callback cannot reuse stale state.
		c.clear()
		return params, nil
	case <-expired:
		c.clear()
		return nil, dErrors.New(dErrors.CodeTimeout, "timed out waiting for redirect callback")
	case <-ctx.Done():
		c.clear()
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "redirect wait abandoned")
	}
}

// Complete resolves the pending redirect wait with the parameters carried by
// the callback URI. Each name in the selected authenticator's RequiredParams
// is extracted from the URI's query; missing names are simply omitted, and
// the resumed authenticate call validates completeness.
func (c *Correlator) Complete(callbackURI string) error {
	parsed, err := url.Parse(callbackURI)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed redirect callback uri")
	}

	c.mu.Lock()
	selected := c.selected
	done := c.done
	c.mu.Unlock()

	if selected == nil {
		return dErrors.New(dErrors.CodeNoAuthenticatorSelected,
			"redirect callback received with no authenticator awaiting redirect")
	}

	query := parsed.Query()
	params := make(map[string]string, len(selected.RequiredParams))
	for _, name := range selected.RequiredParams {
		if !query.Has(name) {
			continue
		}
		params[name] = query.Get(name)
	}

	select {
	case done <- params:
		return nil
	default:
		return dErrors.New(dErrors.CodeRedirectConfiguration,
			"redirect result already delivered for authenticator "+selected.Name)
	}
}

// Pending reports whether an authenticator is currently awaiting a redirect.
func (c *Correlator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected != nil
}

func (c *Correlator) clear() {
	c.mu.Lock()
	c.selected = nil
	c.done = nil
	c.mu.Unlock()
}
