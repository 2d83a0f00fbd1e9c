package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

// registerAndLogin drives a user through the whole lifecycle and returns an
// access token ready for authenticated requests.
func registerAndLogin(t *testing.T, ts *testutil.TestServer, userName, email, password string) string {
	t.Helper()
	return registerAndLoginRole(t, ts, userName, email, password, "")
}

func registerAndLoginRole(t *testing.T, ts *testutil.TestServer, userName, email, password, role string) string {
	t.Helper()

	account := map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"userName":  userName,
		"email":     email,
		"password":  password,
	}
	if role != "" {
		account["role"] = role
	}

	resp, _ := doRequest(t, http.MethodPost, ts.APIURL("/accounts"), "", account)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The confirmation mail goes out through the outbox dispatcher.
	require.Eventually(t, func() bool {
		for _, m := range ts.Mailer.Sent() {
			if m.To == email {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	user, err := ts.Repos.User.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotEmpty(t, user.VerifyToken)

	resp, _ = doRequest(t, http.MethodPost, ts.APIURL("/accounts/confirm-account?confirmToken="+user.VerifyToken), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestAccountLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.APIURL("/accounts"), "", map[string]any{
		"firstName": "Fabio",
		"lastName":  "Flores",
		"userName":  "fabio",
		"email":     "fabio@example.com",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Account created", body.Message)

	require.Eventually(t, func() bool {
		return len(ts.Mailer.Sent()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	sent := ts.Mailer.Sent()[0]
	assert.Equal(t, "fabio@example.com", sent.To)
	assert.Equal(t, "Confirmation Account Micro Blog", sent.Subject)

	user, err := ts.Repos.User.GetByEmail(context.Background(), "fabio@example.com")
	require.NoError(t, err)
	assert.Contains(t, sent.HTML, user.VerifyToken)

	// Login before confirming is forbidden.
	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]any{
		"email":    "fabio@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "you must verify your account", body.Message)

	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/accounts/confirm-account?confirmToken="+user.VerifyToken), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Account confirmated", body.Message)

	// A second confirmation with the same token is rejected.
	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/accounts/confirm-account?confirmToken="+user.VerifyToken), "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "user already verified", body.Message)

	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]any{
		"email":    "fabio@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "login successful", body.Message)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))

	resp, body = doRequest(t, http.MethodGet, ts.APIURL("/accounts/me"), login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user found", body.Message)

	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/auth/logout"), login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "session closed", body.Message)

	// The token died with the session.
	resp, _ = doRequest(t, http.MethodGet, ts.APIURL("/accounts/me"), login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccountCreateValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name: "missing fields",
			body: map[string]any{
				"userName": "incomplete",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			body: map[string]any{
				"firstName": "Test",
				"lastName":  "User",
				"userName":  "badrole",
				"email":     "badrole@example.com",
				"password":  "secret1",
				"role":      "ADMIN",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: map[string]any{
				"firstName": "Test",
				"lastName":  "User",
				"userName":  "second",
				"email":     "dup@example.com",
				"password":  "secret1",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "email already taken",
		},
	}

	resp, _ := doRequest(t, http.MethodPost, ts.APIURL("/accounts"), "", map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"userName":  "first",
		"email":     "dup@example.com",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPost, ts.APIURL("/accounts"), "", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Message)
			}
		})
	}
}

func TestLoginUniformError(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := registerAndLogin(t, ts, "uniform", "uniform@example.com", "secret1")
	require.NotEmpty(t, token)

	// Wrong password and unknown email come back identical.
	resp, body := doRequest(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]any{
		"email":    "uniform@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "email or password invalid", body.Message)

	resp, body = doRequest(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]any{
		"email":    "nobody@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "email or password invalid", body.Message)
}

func TestAccountUpdateAndDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := registerAndLogin(t, ts, "mutable", "mutable@example.com", "secret1")

	resp, body := doRequest(t, http.MethodPatch, ts.APIURL("/accounts/me"), token, map[string]any{
		"firstName":    "Renamed",
		"isPublicName": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user updated", body.Message)

	var view struct {
		FirstName string `json:"firstName"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Equal(t, "Renamed", view.FirstName)

	resp, body = doRequest(t, http.MethodDelete, ts.APIURL("/accounts/me"), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.Message, "deleted user with id:")
}
