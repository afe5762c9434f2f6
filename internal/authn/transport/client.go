// Package transport builds and sends the wire requests of the step
// authentication protocol and parses their typed responses.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowauth/internal/authn/models"
	"flowauth/internal/platform/config"
	"flowauth/internal/platform/tracer"
	dErrors "flowauth/pkg/domain-errors"
)

const (
	headerRequestID   = "x-request-id"
	headerAttestation = "x-client-attestation"

	// maxResponseBytes bounds how much of a response body we are willing to
	// read; flow responses are small.
	maxResponseBytes = 1 << 20
)

// Client issues the authorize, authenticate, authenticator-detail and logout
// requests. It is safe for concurrent use.
type Client struct {
	http   *http.Client
	cfg    config.Client
	logger *slog.Logger
	tracer tracer.Tracer
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func New(cfg config.Client, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	return c
}

// Authorize starts a new flow. The server answers with the flow id and the
// first step.
func (c *Client) Authorize(ctx context.Context) (resp *models.FlowResponse, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanAuthorize)
	defer func() { span.End(err) }()

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"scope":         {c.cfg.Scope()},
		"response_type": {"code"},
		"response_mode": {"direct"},
	}
	if c.cfg.RedirectURI != "" {
		form.Set("redirect_uri", c.cfg.RedirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthorizeURL(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build authorize request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.cfg.Attestation != "" {
		req.Header.Set(headerAttestation, c.cfg.Attestation)
	}

	resp, err = c.doFlow(req, span, "authorize")
	return resp, err
}

// Authenticate submits credentials for the selected authenticator of the
// given flow.
func (c *Client) Authenticate(ctx context.Context, flowID, authenticatorID string, params map[string]string) (resp *models.FlowResponse, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanAuthenticate,
		tracer.String(tracer.AttrFlowID, flowID),
		tracer.String(tracer.AttrAuthenticatorID, authenticatorID),
	)
	defer func() { span.End(err) }()

	body := models.AuthnRequest{
		FlowID: flowID,
		SelectedAuthenticator: models.SelectedAuthenticator{
			AuthenticatorID: authenticatorID,
			Params:          params,
		},
	}
	req, err := c.newJSONRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	resp, err = c.doFlow(req, span, "authenticate")
	return resp, err
}

// AuthenticatorDetail asks the authenticate endpoint for the full metadata
// of one authenticator by sending a parameterless selection.
func (c *Client) AuthenticatorDetail(ctx context.Context, flowID, authenticatorID string) (resp *models.FlowResponse, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanDetail,
		tracer.String(tracer.AttrFlowID, flowID),
		tracer.String(tracer.AttrAuthenticatorID, authenticatorID),
	)
	defer func() { span.End(err) }()

	body := models.AuthnRequest{
		FlowID: flowID,
		SelectedAuthenticator: models.SelectedAuthenticator{
			AuthenticatorID: authenticatorID,
		},
	}
	req, err := c.newJSONRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	resp, err = c.doFlow(req, span, "authenticator_detail")
	return resp, err
}

// Logout calls the end-session endpoint with the current id token.
// A non-200 answer is a logout failure; the caller keeps its tokens.
func (c *Client) Logout(ctx context.Context, idToken string) (err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanLogout)
	defer func() { span.End(err) }()

	form := url.Values{
		"id_token_hint": {idToken},
		"client_id":     {c.cfg.ClientID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LogoutURL(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build logout request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNetwork, "logout request failed")
	}
	defer httpResp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxResponseBytes)) //nolint:errcheck

	span.SetAttributes(tracer.Int64(tracer.AttrHTTPStatus, int64(httpResp.StatusCode)))
	if httpResp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "logout rejected",
			"status", httpResp.StatusCode,
			"request_id", requestID,
		)
		return dErrors.New(dErrors.CodeLogout,
			fmt.Sprintf("logout rejected with status %d", httpResp.StatusCode))
	}
	return nil
}

// newJSONRequest builds a POST to the authn endpoint with a JSON body.
func (c *Client) newJSONRequest(ctx context.Context, body models.AuthnRequest) (*http.Request, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode authenticate request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthnURL(), bytes.NewReader(raw))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build authenticate request")
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doFlow sends the request and decodes a flow response, mapping transport
// failures to network_error and everything unexpected to protocol_error.
func (c *Client) doFlow(req *http.Request, span tracer.Span, operation string) (*models.FlowResponse, error) {
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	span.SetAttributes(tracer.String(tracer.AttrRequestID, requestID))

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(req.Context(), "flow request failed",
			"operation", operation,
			"request_id", requestID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeNetwork, operation+" request failed")
	}
	defer httpResp.Body.Close()

	span.SetAttributes(tracer.Int64(tracer.AttrHTTPStatus, int64(httpResp.StatusCode)))
	if httpResp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxResponseBytes)) //nolint:errcheck
		return nil, dErrors.New(dErrors.CodeProtocol,
			fmt.Sprintf("%s returned status %d", operation, httpResp.StatusCode))
	}

	var flowResp models.FlowResponse
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, maxResponseBytes)).Decode(&flowResp); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeProtocol, "malformed "+operation+" response")
	}
	if !flowResp.FlowStatus.IsValid() {
		return nil, dErrors.New(dErrors.CodeProtocol,
			"missing or unexpected flow status in "+operation+" response")
	}

	span.SetAttributes(tracer.String(tracer.AttrFlowStatus, flowResp.FlowStatus.String()))
	c.logger.DebugContext(req.Context(), "flow request completed",
		"operation", operation,
		"request_id", requestID,
		"flow_status", flowResp.FlowStatus.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &flowResp, nil
}
