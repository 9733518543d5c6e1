// Package auth ties the auth endpoints to the local session store: a
// successful signin persists the session, a signout always clears it.
package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/session"
)

// Manager orchestrates signin/signout against the API and the session store.
type Manager struct {
	client   *api.Client
	sessions *session.Store
}

func NewManager(client *api.Client, sessions *session.Store) *Manager {
	return &Manager{client: client, sessions: sessions}
}

// SignIn logs in and persists the resulting session. On any failure the
// stored session is left exactly as it was, never partially written.
func (m *Manager) SignIn(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	resp, err := m.client.Auth().Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := m.sessions.Save(resp.Token, resp.ID, resp.Username, resp.Email, resp.Role); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return resp, nil
}

// SignOut invalidates the token server-side and clears the local session.
// The local clear is unconditional on signout intent: a failed or unreachable
// server never leaves the device logged in. The server-side error, if any, is
// returned so callers can mention it, but by then the session is already gone.
func (m *Manager) SignOut(ctx context.Context) error {
	token := m.sessions.Token()

	var serverErr error
	if token != "" {
		if _, err := m.client.Auth().Logout(ctx, token); err != nil {
			log.Warn().
				Str("component", "auth").
				Err(err).
				Msg("server-side logout failed, clearing local session anyway")
			serverErr = err
		}
	}

	if err := m.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return serverErr
}
