// Package flow owns the identity of the in-progress authentication flow and
// classifies raw flow responses into domain outcomes.
package flow

import (
	"context"
	"log/slog"
	"sync"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// StepResolver enriches a step's authenticator stubs with full metadata.
type StepResolver interface {
	Resolve(ctx context.Context, flowID string, stubs []models.Authenticator) ([]models.Authenticator, error)
}

// Tracker holds the current flow id and performs the FlowStatus branch on
// every server response. Starting a new flow supersedes the previous id.
type Tracker struct {
	mu       sync.RWMutex
	flowID   string
	resolver StepResolver
	logger   *slog.Logger
}

// Option configures the Tracker.
type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func New(resolver StepResolver, opts ...Option) *Tracker {
	t := &Tracker{resolver: resolver}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// SetFlowID records the server-issued flow id, superseding any previous one.
func (t *Tracker) SetFlowID(id string) {
	t.mu.Lock()
	t.flowID = id
	t.mu.Unlock()
}

// FlowID returns the current flow id. Calling it before SetFlowID is a
// programmer error: there is no flow to act on.
func (t *Tracker) FlowID() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.flowID == "" {
		return "", dErrors.New(dErrors.CodeInternal, "flow id requested before a flow was started")
	}
	return t.flowID, nil
}

// Reset discards the current flow id after a terminal success or failure.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.flowID = ""
	t.mu.Unlock()
}

// Classify turns a raw flow response into an AuthenticationFlow value.
//
//   - FAIL_INCOMPLETE is a terminal error, not a flow value.
//   - SUCCESS yields FlowSuccess with the issued authorization code.
//   - INCOMPLETE resolves the next step's authenticator details and yields
//     FlowNotSuccess.
//   - Anything else is a malformed response.
func (t *Tracker) Classify(ctx context.Context, resp *models.FlowResponse) (models.AuthenticationFlow, error) {
	switch resp.FlowStatus {
	case models.FlowStatusFailIncomplete:
		t.logger.WarnContext(ctx, "flow terminally failed", "flow_id", resp.FlowID)
		return nil, dErrors.New(dErrors.CodeAuthenticationIncomplete,
			"authentication flow terminally failed; restart with a new flow")

	case models.FlowStatusSuccess:
		if resp.AuthData == nil || resp.AuthData.Code == "" {
			return nil, dErrors.New(dErrors.CodeProtocol, "success response missing authorization code")
		}
		return models.FlowSuccess{AuthData: *resp.AuthData}, nil

	case models.FlowStatusIncomplete:
		if resp.NextStep == nil {
			return nil, dErrors.New(dErrors.CodeProtocol, "incomplete response missing next step")
		}
		flowID := resp.FlowID
		if flowID == "" {
			current, err := t.FlowID()
			if err != nil {
				return nil, err
			}
			flowID = current
		}
		authenticators, err := t.resolver.Resolve(ctx, flowID, resp.NextStep.Authenticators)
		if err != nil {
			return nil, err
		}
		return models.FlowNotSuccess{
			FlowID:   flowID,
			FlowType: resp.FlowType,
			NextStep: models.FlowStep{
				StepType:       resp.NextStep.StepType,
				Authenticators: authenticators,
			},
		}, nil

	default:
		return nil, dErrors.New(dErrors.CodeProtocol,
			"unexpected flow status "+string(resp.FlowStatus))
	}
}
