// internal/identity/manager.go
//
// Owns the current session: login, registration with auto-login, logout, and
// startup hydration from the session store. Nothing here renders; the TUI
// asks the manager what it knows and reacts.

package identity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
	"github.com/arshanss504/job-contractor/internal/session"
)

// AuthenticationError reports a failed login. The prior session, if any,
// is left untouched.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("identity: login failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RegistrationError reports a rejected signup.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("identity: registration failed: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// Manager holds the in-memory session and keeps the store and API client in
// step with it.
type Manager struct {
	client *api.Client
	store  *session.Store
	logger *zap.Logger

	user  *domain.User
	token string
}

// NewManager wires the identity manager. logger may be nil.
func NewManager(client *api.Client, store *session.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{client: client, store: store, logger: logger}
}

// Hydrate restores a persisted session, if one exists. It must complete
// before any protected view renders. Absence of a session is not an error.
func (m *Manager) Hydrate() error {
	token, user, err := m.store.Load()
	if err != nil {
		if err == session.ErrNoSession {
			m.logger.Info("no stored session, starting logged out")
			return nil
		}
		return err
	}
	m.token = token
	m.user = &user
	m.client.SetToken(token)
	m.logger.Info("session restored",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// Login exchanges credentials for a token, fetches the profile, and persists
// both. On any failure the prior session state is untouched.
func (m *Manager) Login(ctx context.Context, userID int64, password string) (domain.User, error) {
	tok, err := m.client.Login(ctx, api.LoginRequest{UserID: userID, Password: password})
	if err != nil {
		return domain.User{}, &AuthenticationError{Err: err}
	}

	// The profile fetch needs the fresh token, but the client must fall
	// back to the previous one if the fetch fails.
	prev := m.client.Token()
	m.client.SetToken(tok.AccessToken)
	user, err := m.client.Me(ctx)
	if err != nil {
		m.client.SetToken(prev)
		return domain.User{}, &AuthenticationError{Err: err}
	}

	if err := m.store.Save(tok.AccessToken, user); err != nil {
		m.logger.Warn("session not persisted", zap.Error(err))
	}
	m.token = tok.AccessToken
	m.user = &user
	m.logger.Info("logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Register creates the account, then logs in with the returned identifier
// and the same password.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (domain.User, error) {
	created, err := m.client.Register(ctx, req)
	if err != nil {
		return domain.User{}, &RegistrationError{Err: err}
	}
	m.logger.Info("account registered", zap.Int64("user_id", created.ID))
	user, err := m.Login(ctx, created.ID, req.Password)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the persisted and in-memory session unconditionally.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("session store clear failed", zap.Error(err))
	}
	m.user = nil
	m.token = ""
	m.client.ClearToken()
	m.logger.Info("logged out")
}

// Invalidate drops the session after the server rejected the token. Callers
// route back to the login screen afterwards.
func (m *Manager) Invalidate() {
	m.logger.Warn("session token rejected by server, clearing session")
	m.Logout()
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	return m.user
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.user != nil && m.token != ""
}
