// Package service exposes the public authentication session: a state
// machine that drives the multi-step flow, dispatches authenticator
// selections, and publishes the observable session state.
package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"flowauth/internal/authn/metrics"
	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// Transport issues the protocol's wire requests.
// Error Contract: network failures carry network_error, non-200 and
// malformed responses protocol_error, rejected logouts logout_failed.
type Transport interface {
	Authorize(ctx context.Context) (*models.FlowResponse, error)
	Authenticate(ctx context.Context, flowID, authenticatorID string, params map[string]string) (*models.FlowResponse, error)
	Logout(ctx context.Context, idToken string) error
}

// FlowTracker owns the current flow id and classifies raw responses.
type FlowTracker interface {
	SetFlowID(id string)
	FlowID() (string, error)
	Reset()
	Classify(ctx context.Context, resp *models.FlowResponse) (models.AuthenticationFlow, error)
}

// TokenManager owns the persisted token record.
type TokenManager interface {
	ExchangeAndSave(ctx context.Context, code string) (*models.TokenState, error)
	IsAuthenticated(ctx context.Context) bool
	IDToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// RedirectCorrelator suspends redirect-based authenticate calls until the
// external callback delivers their parameters.
type RedirectCorrelator interface {
	Begin(ctx context.Context, a models.Authenticator) (map[string]string, error)
	Complete(callbackURI string) error
}

// Service is a long-lived authentication session. One Service drives one
// flow at a time; calling Initialize again supersedes the in-progress flow.
type Service struct {
	transport Transport
	tracker   FlowTracker
	tokens    TokenManager
	redirects RedirectCorrelator

	logger  *slog.Logger
	metrics *metrics.Metrics
	states  *statePublisher

	// candidatesMu guards the current step's candidate list.
	candidatesMu sync.RWMutex
	candidates   []models.Authenticator

	// generation tags every flow operation with the Initialize call that
	// spawned it; responses from a superseded flow are discarded instead of
	// overwriting the newer flow's state.
	generation atomic.Uint64
}

// errFlowSuperseded marks results of a flow replaced by a newer Initialize.
// It is returned to the superseded caller and never published as state.
var errFlowSuperseded = dErrors.New(dErrors.CodeInternal, "flow superseded by a newer initialize")

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(collectors *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = collectors
	}
}

func New(transport Transport, tracker FlowTracker, tokens TokenManager, redirects RedirectCorrelator, opts ...Option) *Service {
	s := &Service{
		transport: transport,
		tracker:   tracker,
		tokens:    tokens,
		redirects: redirects,
		states:    newStatePublisher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// State returns the current session state.
func (s *Service) State() models.AuthenticationState {
	return s.states.Current()
}

// Subscribe returns a channel of state transitions and a cancel function.
// Slow subscribers miss intermediate transitions rather than blocking the
// session.
func (s *Service) Subscribe() (<-chan models.AuthenticationState, func()) {
	return s.states.Subscribe()
}

// IsAuthenticated reports token validity; no network call is made.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	return s.tokens.IsAuthenticated(ctx)
}

// Initialize starts a new flow, superseding any in-progress one, and
// publishes the first step's authenticators.
func (s *Service) Initialize(ctx context.Context) error {
	gen := s.generation.Add(1)
	s.states.Publish(models.StateLoading{})
	s.incrementFlowsStarted()

	start := time.Now()
	resp, err := s.transport.Authorize(ctx)
	if err != nil {
		return s.fail(ctx, gen, "authorize", err)
	}
	s.observeAuthorizeDuration(time.Since(start))
	if s.stale(gen) {
		return errFlowSuperseded
	}
	s.tracker.SetFlowID(resp.FlowID)

	outcome, err := s.tracker.Classify(ctx, resp)
	if err != nil {
		return s.fail(ctx, gen, "authorize", err)
	}
	notSuccess, ok := outcome.(models.FlowNotSuccess)
	if !ok {
		return s.fail(ctx, gen, "authorize",
			dErrors.New(dErrors.CodeProtocol, "authorize response carried no first step"))
	}

	if s.stale(gen) {
		return errFlowSuperseded
	}
	s.setCandidates(notSuccess.NextStep.Authenticators)
	s.logger.InfoContext(ctx, "flow started",
		"flow_id", notSuccess.FlowID,
		"candidates", len(notSuccess.NextStep.Authenticators),
	)
	s.states.Publish(models.StateUnauthenticated{Flow: notSuccess})
	return nil
}

// AuthenticateWith resolves the caller's authenticator selection against the
// current step, serializes the credentials, and runs one authenticate round.
func (s *Service) AuthenticateWith(ctx context.Context, sel Selector, params models.AuthParams) error {
	gen := s.generation.Load()
	s.states.Publish(models.StateLoading{})

	a, err := s.resolveSelector(sel)
	if err != nil {
		return s.fail(ctx, gen, "authenticate", err)
	}
	serialized, err := models.SerializeParams(a, params)
	if err != nil {
		return s.fail(ctx, gen, "authenticate", err)
	}
	return s.commonAuthenticate(ctx, gen, a, serialized)
}

// AuthenticateWithRedirect resolves the selection, launches the external
// redirect, and suspends until the callback delivers the parameters, which
// then feed the same authenticate path as AuthenticateWith.
func (s *Service) AuthenticateWithRedirect(ctx context.Context, sel Selector) error {
	gen := s.generation.Load()
	s.states.Publish(models.StateLoading{})

	a, err := s.resolveSelector(sel)
	if err != nil {
		return s.fail(ctx, gen, "authenticate_redirect", err)
	}

	s.redirectWaitStarted()
	params, err := s.redirects.Begin(ctx, a)
	s.redirectWaitFinished()
	if err != nil {
		return s.fail(ctx, gen, "authenticate_redirect", err)
	}

	serialized, err := models.SerializeParams(a, models.RawParams(params))
	if err != nil {
		return s.fail(ctx, gen, "authenticate_redirect", err)
	}
	return s.commonAuthenticate(ctx, gen, a, serialized)
}

// HandleRedirectCallback feeds an externally received callback URI into the
// pending redirect wait. Failures also reach the state observable.
func (s *Service) HandleRedirectCallback(ctx context.Context, callbackURI string) error {
	if err := s.redirects.Complete(callbackURI); err != nil {
		s.observeFailure(ctx, "redirect_callback", err)
		s.states.Publish(models.StateError{Cause: err})
		return err
	}
	return nil
}

// Logout calls the end-session endpoint and clears the token record.
// When the server rejects the call the tokens stay intact: the caller is
// not silently logged out by a failed network round trip.
func (s *Service) Logout(ctx context.Context) error {
	gen := s.generation.Load()
	s.states.Publish(models.StateLoading{})

	idToken, err := s.tokens.IDToken(ctx)
	if err != nil {
		return s.fail(ctx, gen, "logout", err)
	}
	if err := s.transport.Logout(ctx, idToken); err != nil {
		return s.fail(ctx, gen, "logout", err)
	}
	if err := s.tokens.Clear(ctx); err != nil {
		return s.fail(ctx, gen, "logout", err)
	}

	s.tracker.Reset()
	s.setCandidates(nil)
	s.incrementLogouts()
	s.logger.InfoContext(ctx, "logged out")
	s.states.Publish(models.StateInitial{})
	return nil
}

// commonAuthenticate runs one authenticate round and interprets the
// outcome: success exchanges and persists tokens, an incomplete flow
// replaces the candidate step, and errors become the Error state.
func (s *Service) commonAuthenticate(ctx context.Context, gen uint64, a models.Authenticator, params map[string]string) error {
	flowID, err := s.tracker.FlowID()
	if err != nil {
		return s.fail(ctx, gen, "authenticate", err)
	}
	s.incrementAuthAttempts()

	start := time.Now()
	resp, err := s.transport.Authenticate(ctx, flowID, a.AuthenticatorID, params)
	if err != nil {
		return s.fail(ctx, gen, "authenticate", err)
	}
	s.observeAuthenticateDuration(time.Since(start))
	outcome, err := s.tracker.Classify(ctx, resp)
	if err != nil {
		return s.fail(ctx, gen, "authenticate", err)
	}

	switch v := outcome.(type) {
	case models.FlowSuccess:
		if _, err := s.tokens.ExchangeAndSave(ctx, v.AuthData.Code); err != nil {
			// The protocol step already succeeded; this failure class is
			// retryable without re-running the flow.
			return s.fail(ctx, gen, "token_exchange", err)
		}
		if s.stale(gen) {
			return errFlowSuperseded
		}
		s.tracker.Reset()
		s.setCandidates(nil)
		s.incrementFlowsCompleted()
		s.logger.InfoContext(ctx, "flow completed", "flow_id", flowID)
		s.states.Publish(models.StateAuthenticated{})
		return nil

	case models.FlowNotSuccess:
		if s.stale(gen) {
			return errFlowSuperseded
		}
		s.setCandidates(v.NextStep.Authenticators)
		s.logger.InfoContext(ctx, "flow advanced to next step",
			"flow_id", flowID,
			"candidates", len(v.NextStep.Authenticators),
		)
		s.states.Publish(models.StateUnauthenticated{Flow: v})
		return nil

	default:
		err := dErrors.New(dErrors.CodeInternal, "unhandled flow outcome")
		return s.fail(ctx, gen, "authenticate", err)
	}
}

// fail reports a failed operation: the error reaches the observable as the
// Error state unless the flow was superseded meanwhile.
func (s *Service) fail(ctx context.Context, gen uint64, operation string, err error) error {
	if s.stale(gen) {
		s.logger.DebugContext(ctx, "discarding failure of superseded flow",
			"operation", operation,
			"error", err,
		)
		return errFlowSuperseded
	}
	s.observeFailure(ctx, operation, err)
	s.states.Publish(models.StateError{Cause: err})
	return err
}

func (s *Service) stale(gen uint64) bool {
	return s.generation.Load() != gen
}

func (s *Service) setCandidates(candidates []models.Authenticator) {
	s.candidatesMu.Lock()
	s.candidates = candidates
	s.candidatesMu.Unlock()
}

func (s *Service) currentCandidates() []models.Authenticator {
	s.candidatesMu.RLock()
	defer s.candidatesMu.RUnlock()
	return s.candidates
}
