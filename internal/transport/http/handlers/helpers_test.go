package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrconnect/internal/app/server"
	"hrconnect/internal/platform/config"
	"hrconnect/internal/platform/storage"
)

const (
	adminEmail   = "john@example.com"
	hrEmail      = "sarah@example.com"
	managerEmail = "michael@example.com"
	password     = "password123"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func (e envelope) code() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Code
}

func testConfig() config.Config {
	return config.Config{
		Addr:                ":0",
		Environment:         "test",
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		BcryptCost:          4,
		SessionBackend:      storage.BackendMemory,
		PageSize:            5,
		MaxPageSize:         100,
		MaxBodyBytes:        1048576,
		RateLimitPerMinute:  1000,
		NotificationHistory: 50,
		MetricsEnabled:      true,
	}
}

func newTestServer(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	app, err := server.New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any, wantStatus int) envelope {
	t.Helper()
	resp, payload := doRequest(t, ts, method, path, token, body)
	require.Equalf(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, payload)
	var env envelope
	require.NoError(t, json.Unmarshal(payload, &env))
	return env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func login(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	env := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	var out struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}
