// Package session owns the persisted credentials and broadcasts every
// mutation so login-dependent UI regions re-evaluate without a reload.
package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/minjipark/encore/pkg/domain"
)

// Store is the single cross-view shared mutable state in the client.
// Mutations are synchronous and serialized; subscribers are notified after
// every Set and Clear.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	cur  domain.Credentials
	subs []chan struct{}
}

// Open loads any persisted credentials from path. A missing file is a clean
// anonymous state, not an error.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read session file")
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.cur); err != nil {
		return nil, errors.Wrap(err, "parse session file")
	}
	return s, nil
}

// Set persists the credentials and notifies subscribers. When MemberEmail is
// empty it is derived from the access token claims; the token is never
// verified or expiry-checked client-side.
func (s *Store) Set(creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if creds.MemberEmail == "" {
		creds.MemberEmail = emailFromToken(creds.AccessToken)
	}
	if err := s.persist(creds); err != nil {
		return err
	}
	s.cur = creds
	s.notifyLocked()
	return nil
}

// Clear drops the persisted credentials and notifies subscribers. It always
// succeeds locally; server-side revocation is the caller's best-effort job.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	s.cur = domain.Credentials{}
	s.notifyLocked()
	return nil
}

// Has reports whether an access token is present. This is the sole signal
// that branches the UI between authenticated and anonymous rendering.
func (s *Store) Has() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.AccessToken != ""
}

// Current returns a copy of the stored credentials.
func (s *Store) Current() domain.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token returns the current access token. It satisfies api.TokenProvider so
// every outgoing request reads the token fresh at call time.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.AccessToken
}

// Subscribe returns a channel that receives one signal per mutation. The
// channel is buffered and never blocks a writer; a slow reader coalesces
// consecutive signals.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) persist(creds domain.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	return nil
}

// emailFromToken extracts the email claim from an unverified JWT. The client
// holds no signing key; a token that does not parse yields an empty email
// and the header simply shows no identity.
func emailFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
