// Package catalog resolves authenticator step stubs into fully-detailed
// authenticators by querying the authenticator-detail endpoint.
package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// DetailFetcher issues one authenticator-detail request.
// Error Contract: network failures carry the network_error code, malformed
// responses the protocol_error code.
type DetailFetcher interface {
	AuthenticatorDetail(ctx context.Context, flowID, authenticatorID string) (*models.FlowResponse, error)
}

// Resolver enriches step stubs with full authenticator metadata.
// Resolution is all-or-nothing: any failed detail fetch fails the aggregate
// and cancels the remaining in-flight requests.
type Resolver struct {
	fetcher DetailFetcher
	logger  *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(fetcher DetailFetcher, opts ...Option) *Resolver {
	r := &Resolver{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Resolve returns one fully-detailed authenticator per input stub. Identity
// is by AuthenticatorID; callers must not rely on slice positions.
//
// Single-candidate steps are self-describing, so they resolve locally
// without a network call. Larger steps fetch details concurrently; the
// group context cancels siblings as soon as one fetch fails.
func (r *Resolver) Resolve(ctx context.Context, flowID string, stubs []models.Authenticator) ([]models.Authenticator, error) {
	switch len(stubs) {
	case 0:
		return nil, nil
	case 1:
		return []models.Authenticator{stubs[0]}, nil
	}

	resolved := make([]models.Authenticator, len(stubs))
	g, gctx := errgroup.WithContext(ctx)
	for i, stub := range stubs {
		g.Go(func() error {
			detail, err := r.fetchOne(gctx, flowID, stub.AuthenticatorID)
			if err != nil {
				return err
			}
			resolved[i] = *detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.WarnContext(ctx, "authenticator resolution failed",
			"flow_id", flowID,
			"authenticators", len(stubs),
			"error", err,
		)
		return nil, err
	}
	return resolved, nil
}

// fetchOne issues a single detail request and extracts the one matching
// authenticator. The server returning zero or several matches for a known id
// violates its own invariant and is reported as ambiguous.
func (r *Resolver) fetchOne(ctx context.Context, flowID, authenticatorID string) (*models.Authenticator, error) {
	resp, err := r.fetcher.AuthenticatorDetail(ctx, flowID, authenticatorID)
	if err != nil {
		return nil, err
	}
	if resp.NextStep == nil {
		return nil, dErrors.New(dErrors.CodeProtocol, "authenticator detail response missing next step")
	}

	var match *models.Authenticator
	for i := range resp.NextStep.Authenticators {
		a := &resp.NextStep.Authenticators[i]
		if a.AuthenticatorID != authenticatorID {
			continue
		}
		if match != nil {
			return nil, dErrors.New(dErrors.CodeAmbiguousAuthenticator,
				"authenticator detail response contains duplicate entries for "+authenticatorID)
		}
		match = a
	}
	if match == nil {
		return nil, dErrors.New(dErrors.CodeAmbiguousAuthenticator,
			"authenticator detail response contains no entry for "+authenticatorID)
	}
	return match, nil
}
