package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client captures everything the authentication client needs to talk to the
// flow orchestration server. Values come from environment variables so main
// stays lean.
type Client struct {
	// BaseURL is the root of the identity server, e.g. https://id.example.com.
	BaseURL string `env:"FLOWAUTH_BASE_URL"`

	ClientID    string   `env:"FLOWAUTH_CLIENT_ID"`
	Scopes      []string `env:"FLOWAUTH_SCOPES" envSeparator:"," envDefault:"openid,profile"`
	RedirectURI string   `env:"FLOWAUTH_REDIRECT_URI"`

	// Attestation is sent as the x-client-attestation header when present.
	Attestation string `env:"FLOWAUTH_CLIENT_ATTESTATION"`

	HTTPTimeout time.Duration `env:"FLOWAUTH_HTTP_TIMEOUT" envDefault:"30s"`

	// CallbackAddr is where the loopback redirect listener binds.
	CallbackAddr string `env:"FLOWAUTH_CALLBACK_ADDR" envDefault:"127.0.0.1:8765"`

	// TokenFile is the path of the persisted token record. Empty means
	// tokens live in memory only.
	TokenFile string `env:"FLOWAUTH_TOKEN_FILE"`

	MetricsAddr string `env:"FLOWAUTH_METRICS_ADDR"`
}

// FromEnv builds a Client config from environment variables.
func FromEnv() (Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return Client{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate checks the fields without which no flow can be started.
func (c Client) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("FLOWAUTH_BASE_URL is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("FLOWAUTH_CLIENT_ID is required")
	}
	return nil
}

// Scope returns the configured scopes as a single space-separated value, the
// form the authorize endpoint expects.
func (c Client) Scope() string {
	return strings.Join(c.Scopes, " ")
}

// Endpoint helpers. The server lays its endpoints out under fixed paths.

func (c Client) AuthorizeURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/oauth2/authorize"
}

func (c Client) AuthnURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/oauth2/authn"
}

func (c Client) TokenURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/oauth2/token"
}

func (c Client) LogoutURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/oidc/logout"
}
