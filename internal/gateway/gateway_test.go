package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Header().Set("X-Path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupGateway(t *testing.T) (*Gateway, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService("test-secret", "teamhub", time.Hour)
	gw, err := New(Config{
		AuthURL:    upstream(t, "auth").URL,
		TaskURL:    upstream(t, "task").URL,
		MeetingURL: upstream(t, "meeting").URL,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTService: jwtService,
	})
	require.NoError(t, err)
	return gw, jwtService
}

func token(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	tok, err := jwtService.GenerateToken(uuid.New(), "alice", "alice@example.com", "User", "")
	require.NoError(t, err)
	return tok
}

func TestGateway_PublicAuthPathsSkipTokenCheck(t *testing.T) {
	gw, _ := setupGateway(t)

	for _, path := range []string{
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
	} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rr := httptest.NewRecorder()
		gw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "auth", rr.Header().Get("X-Upstream"), path)
		assert.Equal(t, path, rr.Header().Get("X-Path"), path)
	}
}

func TestGateway_ProtectedPathsRequireToken(t *testing.T) {
	gw, _ := setupGateway(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/projects/all"},
		{http.MethodPost, "/api/v1/tasks"},
		{http.MethodPost, "/api/v1/meetings/join"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		gw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
		assert.Empty(t, rr.Header().Get("X-Upstream"), tc.path)
	}
}

func TestGateway_RoutesByPathPrefix(t *testing.T) {
	gw, jwtService := setupGateway(t)
	tok := token(t, jwtService)

	for _, tc := range []struct {
		method   string
		path     string
		upstream string
	}{
		{http.MethodGet, "/api/v1/auth/me", "auth"},
		{http.MethodGet, "/api/v1/profile", "auth"},
		{http.MethodGet, "/api/v1/profile/all", "auth"},
		{http.MethodGet, "/api/v1/projects/all", "task"},
		{http.MethodPost, "/api/v1/tasks", "task"},
		{http.MethodGet, "/api/v1/tasks/user/alice@example.com", "task"},
		{http.MethodPost, "/api/v1/meetings/join", "meeting"},
		{http.MethodDelete, "/api/v1/meetings/project-1", "meeting"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rr := httptest.NewRecorder()
		gw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, tc.path)
		assert.Equal(t, tc.upstream, rr.Header().Get("X-Upstream"), tc.path)
		assert.Equal(t, tc.path, rr.Header().Get("X-Path"), tc.path)
	}
}

func TestGateway_Health(t *testing.T) {
	gw, _ := setupGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}

func TestGateway_UnreachableUpstreamReturns502(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "teamhub", time.Hour)
	gw, err := New(Config{
		AuthURL:    "http://127.0.0.1:1",
		TaskURL:    "http://127.0.0.1:1",
		MeetingURL: "http://127.0.0.1:1",
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTService: jwtService,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Upstream service unavailable")
}
