package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New("ignored", "user@example.test", "key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New("api.example.test", "", "key")
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = New("api.example.test", "user@example.test", "")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestGetConfigVars(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/config/myproject", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user@example.test", user)
		assert.Equal(t, "key", pass)

		w.Write([]byte(`{"config": {"FOO_BAR": "one", "BAZ_QUX": null, "FLAG": true}}`))
	})

	vars, err := c.GetConfigVars(context.Background(), "myproject")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"FOO_BAR": "one", "BAZ_QUX": nil, "FLAG": true}, vars)
}

func TestGetConfigVars_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	vars, err := c.GetConfigVars(context.Background(), "myproject")
	require.NoError(t, err)
	assert.NotNil(t, vars)
	assert.Empty(t, vars)
}

func TestPutConfigVars(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v2/config/myproject", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"A": "b=c", "a": "b"}, body["config"])
		w.WriteHeader(http.StatusOK)
	})

	err := c.PutConfigVars(context.Background(), "myproject", map[string]string{"A": "b=c", "a": "b"})
	assert.NoError(t, err)
}

func TestDeleteConfigVar(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteConfigVar(context.Background(), "myproject", "A"))
	assert.Equal(t, "/v2/config/myproject/A", gotPath)
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/user", r.URL.Path)
		w.Write([]byte(`{"email": "user@example.test", "git_organization": "mortarcode", "org_id": "4dbbd83cae8d5bf8a4000000"}`))
	})

	u, err := c.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mortarcode", u.GitOrganization)
	assert.Equal(t, "4dbbd83cae8d5bf8a4000000", u.OrgID)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"service message", http.StatusUnprocessableEntity, `{"error": "Invalid key name"}`, "Invalid key name"},
		{"unauthorized", http.StatusUnauthorized, ``, "Authentication failed. Check your email and api_key settings."},
		{"not found", http.StatusNotFound, `not json`, "Resource not found."},
		{"server error", http.StatusInternalServerError, ``, "API request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetConfigVars(context.Background(), "myproject")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"config": [`))
	})

	_, err := c.GetConfigVars(context.Background(), "myproject")
	assert.ErrorContains(t, err, "parsing response JSON")
}
