package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
	"github.com/arshanss504/job-contractor/internal/session"
)

// fakeAuthServer serves /auth/login, /auth/register, and /auth/me for one
// known account.
func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	user := domain.User{ID: 7, Name: "Ada", Role: domain.RoleContractor, CreatedAt: "2025-06-01T00:00:00Z"}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
			var req api.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.UserID != user.ID || req.Password != "hunter22" {
				http.Error(w, `{"detail":"Incorrect user ID or password"}`, http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(api.TokenResponse{AccessToken: "tok-7", TokenType: "bearer"})
		case r.URL.Path == "/auth/register" && r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(user)
		case r.URL.Path == "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-7" {
				http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(user)
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestManager(t *testing.T, serverURL string) (*Manager, *session.Store, *api.Client) {
	t.Helper()
	client := api.NewClient(serverURL, nil)
	store := session.NewStore(filepath.Join(t.TempDir(), "state"))
	return NewManager(client, store, nil), store, client
}

func TestLoginPersistsSession(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, store, client := newTestManager(t, server.URL)

	user, err := m.Login(context.Background(), 7, "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, m.LoggedIn())
	assert.Equal(t, "tok-7", client.Token())

	token, stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-7", token)
	assert.Equal(t, user.ID, stored.ID)
}

func TestLoginFailureLeavesPriorSession(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, store, client := newTestManager(t, server.URL)

	_, err := m.Login(context.Background(), 7, "hunter22")
	require.NoError(t, err)

	_, err = m.Login(context.Background(), 7, "wrong-password")
	require.Error(t, err)

	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
	assert.True(t, api.IsUnauthorized(err), "the unauthorized sentinel must survive wrapping")

	assert.True(t, m.LoggedIn(), "failed login must not drop the active session")
	assert.Equal(t, "tok-7", client.Token())
	token, _, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Equal(t, "tok-7", token)
}

func TestRegisterAutoLogsIn(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, _, client := newTestManager(t, server.URL)

	user, err := m.Register(context.Background(), api.RegisterRequest{
		Name:     "Ada",
		Role:     domain.RoleContractor,
		Password: "hunter22",
		Skills:   "roofing, framing",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, m.LoggedIn())
	assert.Equal(t, "tok-7", client.Token())
}

func TestRegisterRejectionWraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Email already registered"}`, http.StatusBadRequest)
	}))
	defer server.Close()
	m, _, _ := newTestManager(t, server.URL)

	_, err := m.Register(context.Background(), api.RegisterRequest{
		Name:     "Ada",
		Role:     domain.RoleAgent,
		Password: "hunter22",
		Email:    "ada@example.com",
	})
	require.Error(t, err)

	var regErr *RegistrationError
	assert.ErrorAs(t, err, &regErr)
	assert.True(t, strings.Contains(err.Error(), "Email already registered"))
	assert.False(t, m.LoggedIn())
}

func TestLogoutClearsEverything(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, store, client := newTestManager(t, server.URL)

	_, err := m.Login(context.Background(), 7, "hunter22")
	require.NoError(t, err)

	m.Logout()
	assert.False(t, m.LoggedIn())
	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, client.Token())
	_, _, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)

	// A second logout with nothing stored must not panic or error.
	m.Logout()
}

func TestHydrateRestoresStoredSession(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, store, client := newTestManager(t, server.URL)

	user := domain.User{ID: 7, Name: "Ada", Role: domain.RoleContractor}
	require.NoError(t, store.Save("tok-7", user))

	require.NoError(t, m.Hydrate())
	assert.True(t, m.LoggedIn())
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, int64(7), m.CurrentUser().ID)
	assert.Equal(t, "tok-7", client.Token())
}

func TestHydrateWithoutSessionStartsLoggedOut(t *testing.T) {
	server := fakeAuthServer(t)
	defer server.Close()
	m, _, client := newTestManager(t, server.URL)

	require.NoError(t, m.Hydrate())
	assert.False(t, m.LoggedIn())
	assert.Empty(t, client.Token())
}
