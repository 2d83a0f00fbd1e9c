package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportQueue(t *testing.T) {
	ts := testutil.NewTestServer(t)
	modToken := registerAndLoginRole(t, ts, "moderator", "moderator@example.com", "secret1", "MODERATOR")
	userToken := registerAndLogin(t, ts, "plainuser", "plainuser@example.com", "secret1")

	post := createPost(t, ts, userToken, "reportable", false)
	resp, _ := doRequest(t, http.MethodPost, ts.APIURL("/posts/"+post.ID.String()+"/reports"), userToken, map[string]any{
		"reason": "spam",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("moderator reads the queue", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, ts.APIURL("/reports"), modToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "reports found", body.Message)

		var reports []struct {
			Reason string `json:"reason"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "spam", reports[0].Reason)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, ts.APIURL("/reports"), userToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "you do not have permission", body.Message)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, ts.APIURL("/reports"), "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
