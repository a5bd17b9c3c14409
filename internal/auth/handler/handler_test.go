package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"identity-service/internal/account"
	"identity-service/internal/auth"
	"identity-service/internal/auth/provider"
	"identity-service/internal/auth/resolver"
	"identity-service/internal/auth/token"
	"identity-service/internal/statestore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	ident *provider.Identity
	err   error
}

func (f *fakeProvider) Name() string { return "google" }

func (f *fakeProvider) AuthCodeURL(state, codeChallenge string) string {
	return "https://provider.example/auth?state=" + state
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code, codeVerifier string) (*provider.Identity, error) {
	return f.ident, f.err
}

func (f *fakeProvider) VerifyIDToken(ctx context.Context, rawIDToken string) (*provider.Identity, error) {
	return f.ident, f.err
}

type memStateStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemStateStore() *memStateStore {
	return &memStateStore{entries: make(map[string]string)}
}

func (m *memStateStore) Save(ctx context.Context, state, codeVerifier string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[state] = codeVerifier
	return nil
}

func (m *memStateStore) Consume(ctx context.Context, state string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[state]
	if !ok {
		return "", statestore.ErrNotFound
	}
	delete(m.entries, state)
	return v, nil
}

func newTestRouter(t *testing.T, p provider.OAuthProvider) (*gin.Engine, *memStateStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := account.NewMemStore()
	tokens, err := token.NewService([]byte("test-secret-key-must-be-32-bytes"), token.DefaultTTL)
	require.NoError(t, err)

	var registry *provider.Registry
	if p != nil {
		registry = provider.NewRegistry(p)
	} else {
		registry = provider.NewRegistry()
	}

	authService := auth.NewService(store, tokens, resolver.NewStoreResolver(store), registry)
	states := newMemStateStore()

	router := gin.New()
	NewHandler(authService, registry, states).RegisterRoutes(router)

	return router, states
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w, env := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Jane Doe",
		"email":    "Jane@Example.com",
		"password": "Str0ng!pass",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.Equal(t, "jane@example.com", env.User.Email)
	assert.NotEmpty(t, env.User.ID)
	assert.NotEmpty(t, env.Token)
}

func TestRegisterEndpointRejectsWeakPassword(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w, env := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "Weak1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Password must be at least 8 characters", env.Message)
}

func TestRegisterEndpointRejectsDuplicate(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body := gin.H{"name": "Jane", "email": "jane@example.com", "password": "Str0ng!pass"}

	w, _ := doJSON(t, router, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, router, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists", env.Message)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	_, reg := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Jane",
		"email":    "jane@example.com",
		"password": "Str0ng!pass",
	})

	w, env := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "Str0ng!pass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, reg.User.ID, env.User.ID)
	assert.NotEmpty(t, env.Token)
}

func TestLoginEndpointOpaqueRejection(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Jane",
		"email":    "real@example.com",
		"password": "Str0ng!pass",
	})

	wUnknown, envUnknown := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "nouser@example.com",
		"password": "whatever",
	})
	wWrong, envWrong := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "real@example.com",
		"password": "wrongpass",
	})

	// Identical rejection for unknown email and wrong password.
	assert.Equal(t, wUnknown.Code, wWrong.Code)
	assert.Equal(t, envUnknown.Message, envWrong.Message)
	assert.Equal(t, "Invalid email or password", envWrong.Message)
}

func TestGoogleEndpointRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w, env := doJSON(t, router, http.MethodPost, "/auth/google", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Google token is required", env.Message)
}

func TestGoogleEndpointAuthenticates(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{ident: &provider.Identity{
		Provider: "google",
		Subject:  "sub-1",
		Email:    "fed@example.com",
		Name:     "Fed User",
	}})

	w, env := doJSON(t, router, http.MethodPost, "/auth/google", gin.H{"token": "raw-id-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Google authentication successful", env.Message)
	assert.Equal(t, "fed@example.com", env.User.Email)
	assert.NotEmpty(t, env.Token)
}

func TestGoogleEndpointRejectsBadToken(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{err: errors.New("bad signature")})

	w, env := doJSON(t, router, http.MethodPost, "/auth/google", gin.H{"token": "forged"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Google token", env.Message)
}

func TestGoogleEndpointRejectsIncompleteProfile(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{ident: &provider.Identity{
		Provider: "google",
		Subject:  "sub-1",
		// no email, no name
	}})

	w, env := doJSON(t, router, http.MethodPost, "/auth/google", gin.H{"token": "raw-id-token"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unable to get user information from Google", env.Message)
}

func TestOAuthLoginRedirectsAndStoresState(t *testing.T) {
	router, states := newTestRouter(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/oauth/login/google", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://provider.example/auth?state=")
	assert.Len(t, states.entries, 1)
}

func TestOAuthCallbackRejectsUnknownState(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback/google?state=bogus&code=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOAuthCallbackCompletesLogin(t *testing.T) {
	router, states := newTestRouter(t, &fakeProvider{ident: &provider.Identity{
		Provider: "google",
		Subject:  "sub-1",
		Email:    "fed@example.com",
		Name:     "Fed User",
	}})

	require.NoError(t, states.Save(context.Background(), "state-1", "verifier-1", time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback/google?state=state-1&code=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Token)

	// State is one-time.
	assert.Empty(t, states.entries)
}
