package token

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"flowauth/internal/authn/models"
	dErrors "flowauth/pkg/domain-errors"
)

// FileStore persists the token record as a single JSON file, readable only
// by the owning user. No component other than the token package reads it.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// fileRecord is the on-disk shape. Expiry is stored as epoch milliseconds so
// the record stays portable across hosts.
type fileRecord struct {
	AccessToken              string `json:"accessToken"`
	RefreshToken             string `json:"refreshToken,omitempty"`
	IDToken                  string `json:"idToken,omitempty"`
	TokenType                string `json:"tokenType"`
	Scope                    string `json:"scope,omitempty"`
	AccessTokenExpiryEpochMs int64  `json:"accessTokenExpiryEpochMs"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(_ context.Context, state *models.TokenState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := fileRecord{
		AccessToken:              state.AccessToken,
		RefreshToken:             state.RefreshToken,
		IDToken:                  state.IDToken,
		TokenType:                state.TokenType,
		Scope:                    state.Scope,
		AccessTokenExpiryEpochMs: state.AccessTokenExpiry.UnixMilli(),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode token record")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "create token directory")
		}
	}

	// Write-and-rename so a crash never leaves a truncated record.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write token record")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "persist token record")
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*models.TokenState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read token record")
	}

	var record fileRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode token record")
	}
	return &models.TokenState{
		AccessToken:       record.AccessToken,
		RefreshToken:      record.RefreshToken,
		IDToken:           record.IDToken,
		TokenType:         record.TokenType,
		Scope:             record.Scope,
		AccessTokenExpiry: time.UnixMilli(record.AccessTokenExpiryEpochMs),
	}, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "remove token record")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
