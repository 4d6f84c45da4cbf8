package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// newTestServer replies with status and body to every request and records what it received.
func newTestServer(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(raw),
			Header: r.Header.Clone(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithLogger(logger.NewTestLogger())), &requests
}

func TestClient_ListScripts(t *testing.T) {
	client, requests := newTestServer(t, http.StatusOK,
		`{"success":true,"count":1,"data":[{"id":3,"name":"Fix","category":"BD","priority":"high","status":"pending"}]}`)

	env, err := client.ListScripts(context.Background(), ListParams{Status: "pending", Search: "fix"})
	require.NoError(t, err)
	require.NoError(t, env.Err())
	assert.Equal(t, 1, env.Count)
	require.Len(t, env.Data, 1)
	assert.Equal(t, uint(3), env.Data[0].ID)
	assert.Equal(t, script.PriorityHigh, env.Data[0].Priority)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/scripts", req.Path)
	assert.Equal(t, "search=fix&status=pending", req.Query)
}

func TestClient_BusinessRejectionIsNotAnError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusBadRequest, `{"success":false,"error":"duplicate name"}`)

	env, err := client.CreateScript(context.Background(), script.Input{Name: "x", Category: "BD"})
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "duplicate name", env.Error)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)

	var apiErr *APIError
	require.ErrorAs(t, env.Err(), &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "duplicate name", apiErr.Message)
}

func TestClient_MalformedResponse(t *testing.T) {
	client, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := client.Stats(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(url + "/api")
	_, err := client.ListScripts(context.Background(), ListParams{})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_RequestShapes(t *testing.T) {
	ctx := context.Background()
	in := script.Input{Name: "Fix", Category: "BD", Priority: script.PriorityHigh, Responsible: "DBA"}

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   bool
	}{
		{"get", func(c *Client) error { _, err := c.GetScript(ctx, 7); return err }, http.MethodGet, "/api/scripts/7", false},
		{"create", func(c *Client) error { _, err := c.CreateScript(ctx, in); return err }, http.MethodPost, "/api/scripts", true},
		{"update", func(c *Client) error { _, err := c.UpdateScript(ctx, 7, in); return err }, http.MethodPut, "/api/scripts/7", true},
		{"delete", func(c *Client) error { _, err := c.DeleteScript(ctx, 7); return err }, http.MethodDelete, "/api/scripts/7", false},
		{"apply", func(c *Client) error { _, err := c.ApplyScript(ctx, 7); return err }, http.MethodPost, "/api/scripts/7/apply", false},
		{"sample data", func(c *Client) error { _, err := c.LoadSampleData(ctx); return err }, http.MethodPost, "/api/scripts/sample-data", false},
		{"categories", func(c *Client) error { _, err := c.Categories(ctx); return err }, http.MethodGet, "/api/scripts/categories", false},
		{"export", func(c *Client) error { _, err := c.Export(ctx); return err }, http.MethodGet, "/api/scripts/export", false},
		{"import", func(c *Client) error { _, err := c.Import(ctx, nil); return err }, http.MethodPost, "/api/scripts/import", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := newTestServer(t, http.StatusOK, `{"success":true}`)
			require.NoError(t, tt.call(client))
			require.Len(t, *requests, 1)
			req := (*requests)[0]
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
			if tt.wantBody {
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
				assert.True(t, json.Valid([]byte(req.Body)), req.Body)
			} else {
				assert.Empty(t, req.Body)
			}
		})
	}
}

func TestClient_ImportSendsArray(t *testing.T) {
	client, requests := newTestServer(t, http.StatusOK,
		`{"success":true,"imported_count":1,"errors":["Error importando 'x': invalid priority"]}`)

	env, err := client.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, env.ImportedCount)
	assert.Len(t, env.Errors, 1)
	assert.Equal(t, "[]", (*requests)[0].Body)
}

func TestClient_ForwardsRequestID(t *testing.T) {
	client, requests := newTestServer(t, http.StatusOK, `{"success":true,"data":{"total":0}}`)

	ctx := logger.WithRequestID(context.Background(), "req-123")
	_, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-123", (*requests)[0].Header.Get("X-Request-ID"))
}
