package token

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"flowauth/internal/authn/metrics"
	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// Grants is the token-endpoint collaborator. Satisfied by *Exchanger.
type Grants interface {
	ExchangeCode(ctx context.Context, code string) (*models.TokenState, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenState, error)
}

// Manager owns the token record across sessions. It is the only component
// with persisted state outside the active flow, and it serializes every
// read-modify-write sequence (refresh-then-save) so concurrent callers
// cannot lose updates.
type Manager struct {
	mu     sync.Mutex
	store  Store
	grants Grants

	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

func ManagerWithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

func ManagerWithMetrics(collectors *metrics.Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = collectors
	}
}

// ManagerWithClock overrides the time source. Tests use this to cross
// expiry boundaries without sleeping.
func ManagerWithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store Store, grants Grants, opts ...ManagerOption) *Manager {
	m := &Manager{store: store, grants: grants}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// ExchangeAndSave trades the authorization code for tokens and persists
// them. Failures here are a distinct, retryable class: the flow itself has
// already succeeded.
func (m *Manager) ExchangeAndSave(ctx context.Context, code string) (*models.TokenState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.grants.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, state); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchange, "persist exchanged tokens")
	}
	if m.metrics != nil {
		m.metrics.TokenExchanges.Inc()
	}
	m.logger.InfoContext(ctx, "tokens exchanged and saved",
		"has_refresh_token", state.RefreshToken != "",
	)
	return state, nil
}

// IsAuthenticated reports token validity without any network call.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	state, err := m.store.Load(ctx)
	if err != nil {
		return false
	}
	return state.Valid(m.now())
}

// AccessToken returns a currently valid access token, performing a refresh
// grant when the stored one has expired. The whole load-refresh-save
// sequence holds the manager lock.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNotFound, "no token record; authenticate first")
	}
	if err != nil {
		return "", err
	}
	if state.Valid(m.now()) {
		return state.AccessToken, nil
	}
	if !state.CanRefresh() {
		return "", dErrors.New(dErrors.CodeNotFound, "access token expired and no refresh token held")
	}

	refreshed, err := m.grants.Refresh(ctx, state.RefreshToken)
	if err != nil {
		return "", err
	}
	if refreshed.RefreshToken == "" {
		// Servers that do not rotate the refresh token expect reuse.
		refreshed.RefreshToken = state.RefreshToken
	}
	if err := m.store.Save(ctx, refreshed); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeTokenExchange, "persist refreshed tokens")
	}
	if m.metrics != nil {
		m.metrics.TokenRefreshes.Inc()
	}
	m.logger.InfoContext(ctx, "access token refreshed")
	return refreshed.AccessToken, nil
}

// IDToken returns the stored id token, needed for the end-session call.
func (m *Manager) IDToken(ctx context.Context) (string, error) {
	state, err := m.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNotFound, "no token record")
	}
	if err != nil {
		return "", err
	}
	return state.IDToken, nil
}

// Clear drops the token record on logout.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Clear(ctx)
}
