// Package session persists the device user's identity between runs: token,
// user id, username, email, role and the logged-in flag, in one flat JSON
// file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// noUserID is what UserID reports when no session has been saved.
const noUserID = -1

type sessionData struct {
	Token      string `json:"token"`
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// Store is the persisted session. All access goes through one mutex so a
// reader running concurrently with Save or Clear never observes a
// half-written session.
type Store struct {
	mu   sync.Mutex
	path string
	data sessionData
}

// Open loads the session file at path, starting from an empty session when
// the file does not exist yet. A corrupt file is discarded rather than
// treated as fatal.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: sessionData{UserID: noUserID}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		log.Warn().
			Str("component", "session").
			Str("path", path).
			Err(err).
			Msg("discarding corrupt session file")
		s.data = sessionData{UserID: noUserID}
	}
	return s, nil
}

// Save writes the whole session in one step and marks it logged in.
func (s *Store) Save(token string, userID int64, username, email, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{
		Token:      token,
		UserID:     userID,
		Username:   username,
		Email:      email,
		Role:       role,
		IsLoggedIn: true,
	}
	return s.flush()
}

// Clear wipes every field and marks the session logged out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{UserID: noUserID}
	return s.flush()
}

// flush writes the session through a temp file and rename so a crash cannot
// leave a torn file behind. Callers hold s.mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a session has been saved and not cleared since.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.IsLoggedIn
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// UserID returns the user id, or -1 when logged out.
func (s *Store) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UserID
}

func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Username
}

func (s *Store) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Email
}

func (s *Store) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Role
}
