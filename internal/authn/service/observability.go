package service

import (
	"context"
	"time"

	dErrors "flowauth/pkg/domain-errors"
)

// Metric helpers are nil-guarded so tests can construct the Service
// without a registry.

func (s *Service) incrementFlowsStarted() {
	if s.metrics != nil {
		s.metrics.FlowsStarted.Inc()
	}
}

func (s *Service) incrementFlowsCompleted() {
	if s.metrics != nil {
		s.metrics.FlowsCompleted.Inc()
	}
}

func (s *Service) incrementAuthAttempts() {
	if s.metrics != nil {
		s.metrics.AuthAttempts.Inc()
	}
}

func (s *Service) incrementLogouts() {
	if s.metrics != nil {
		s.metrics.Logouts.Inc()
	}
}

func (s *Service) redirectWaitStarted() {
	if s.metrics != nil {
		s.metrics.RedirectWaits.Inc()
	}
}

func (s *Service) redirectWaitFinished() {
	if s.metrics != nil {
		s.metrics.RedirectWaits.Dec()
	}
}

func (s *Service) observeAuthorizeDuration(d time.Duration) {
	if s.metrics != nil {
		s.metrics.AuthorizeDurationMs.Observe(float64(d.Milliseconds()))
	}
}

func (s *Service) observeAuthenticateDuration(d time.Duration) {
	if s.metrics != nil {
		s.metrics.AuthenticateDuration.Observe(float64(d.Milliseconds()))
	}
}

func (s *Service) observeFailure(ctx context.Context, operation string, err error) {
	code := string(dErrors.CodeOf(err))
	if s.metrics != nil {
		s.metrics.AuthFailures.WithLabelValues(code).Inc()
	}
	s.logger.ErrorContext(ctx, "authentication operation failed",
		"operation", operation,
		"code", code,
		"error", err,
	)
}
