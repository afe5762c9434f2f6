package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flowauth/internal/authn/models"
	"flowauth/internal/platform/config"
	"flowauth/internal/platform/tracer"
	dErrors "flowauth/pkg/domain-errors"
)

const maxTokenResponseBytes = 1 << 20

// Exchanger talks to the OAuth token endpoint: the authorization_code grant
// after a successful flow and the refresh_token grant afterwards. Every
// failure here carries the token_exchange code so hosts can retry the
// exchange without re-running the authenticator flow.
type Exchanger struct {
	http   *http.Client
	cfg    config.Client
	logger *slog.Logger
	tracer tracer.Tracer
}

// ExchangerOption configures the Exchanger.
type ExchangerOption func(*Exchanger)

func ExchangerWithHTTPClient(h *http.Client) ExchangerOption {
	return func(e *Exchanger) {
		e.http = h
	}
}

func ExchangerWithLogger(logger *slog.Logger) ExchangerOption {
	return func(e *Exchanger) {
		e.logger = logger
	}
}

func ExchangerWithTracer(t tracer.Tracer) ExchangerOption {
	return func(e *Exchanger) {
		e.tracer = t
	}
}

func NewExchanger(cfg config.Client, opts ...ExchangerOption) *Exchanger {
	e := &Exchanger{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.http == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		e.http = &http.Client{Timeout: timeout}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.tracer == nil {
		e.tracer = tracer.NewNoop()
	}
	return e
}

// ExchangeCode trades the flow's authorization code for tokens.
func (e *Exchanger) ExchangeCode(ctx context.Context, code string) (*models.TokenState, error) {
	form := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {code},
		"client_id":  {e.cfg.ClientID},
	}
	if e.cfg.RedirectURI != "" {
		form.Set("redirect_uri", e.cfg.RedirectURI)
	}
	return e.grant(ctx, "authorization_code", form)
}

// Refresh trades a refresh token for a new token set.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*models.TokenState, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {e.cfg.ClientID},
	}
	return e.grant(ctx, "refresh_token", form)
}

func (e *Exchanger) grant(ctx context.Context, grantType string, form url.Values) (state *models.TokenState, err error) {
	ctx, span := e.tracer.Start(ctx, tracer.SpanTokenGrant,
		tracer.String(tracer.AttrGrantType, grantType),
	)
	defer func() { span.End(err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.TokenURL(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchange, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchange, grantType+" grant request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxTokenResponseBytes)) //nolint:errcheck
		e.logger.WarnContext(ctx, "token grant rejected",
			"grant_type", grantType,
			"status", resp.StatusCode,
		)
		return nil, dErrors.New(dErrors.CodeTokenExchange,
			fmt.Sprintf("%s grant rejected with status %d", grantType, resp.StatusCode))
	}

	var tokenResp models.TokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTokenResponseBytes)).Decode(&tokenResp); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchange, "malformed token response")
	}
	if tokenResp.AccessToken == "" {
		return nil, dErrors.New(dErrors.CodeTokenExchange, "token response missing access token")
	}

	expiry := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	if tokenResp.ExpiresIn <= 0 {
		// Some servers omit expires_in; fall back to the access token's own
		// exp claim when it is a JWT.
		if fromClaim, claimErr := Expiry(tokenResp.AccessToken); claimErr == nil {
			expiry = fromClaim
		}
	}

	return &models.TokenState{
		AccessToken:       tokenResp.AccessToken,
		RefreshToken:      tokenResp.RefreshToken,
		IDToken:           tokenResp.IDToken,
		TokenType:         tokenResp.TokenType,
		Scope:             tokenResp.Scope,
		AccessTokenExpiry: expiry,
	}, nil
}
