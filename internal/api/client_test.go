package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arshanss504/job-contractor/internal/domain"
)

func TestBearerTokenAttachedOnceSet(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.User{ID: 1, Name: "Ada", Role: domain.RoleAgent})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no token set yet")

	client.SetToken("tok-123")
	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	client.ClearToken()
	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Work plan not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.WorkPlan(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.AgentJobs(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, IsUnauthorized(err))
}

func TestRequestErrorCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Job is not open for applications"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Apply(context.Background(), 7, ApplicationCreate{ProposedCost: 100})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, "Job is not open for applications", reqErr.Detail)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestTransportFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.OpenJobs(context.Background(), "")
	require.Error(t, err)

	var unreachable *UnreachableError
	assert.True(t, errors.As(err, &unreachable))
}

func TestValidationShortCircuitsBeforeNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Apply(context.Background(), 1, ApplicationCreate{ProposedCost: -5})
	assert.Error(t, err)

	_, err = client.Register(context.Background(), RegisterRequest{
		Name:     "Bea",
		Password: "short",
		Role:     domain.RoleContractor,
	})
	assert.Error(t, err, "password under six characters must fail locally")

	_, err = client.SubmitInvoice(context.Background(), 1, InvoiceCreate{Amount: 0})
	assert.Error(t, err)

	assert.Zero(t, calls, "invalid payloads must never reach the server")
}

func TestOpenJobsSearchQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]domain.Job{})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.OpenJobs(context.Background(), "roof repair")
	require.NoError(t, err)
	assert.Equal(t, "search=roof+repair", gotQuery)

	_, err = client.OpenJobs(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestLoginPostsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.UserID)
		assert.Equal(t, "hunter22", req.Password)
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-abc", TokenType: "bearer"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	tok, err := client.Login(context.Background(), LoginRequest{UserID: 3, Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok.AccessToken)
}
