package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

func TestNew_RequiresURL(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)

	c, err := New("http://localhost:8000/", WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.baseURL)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestNew_TimeoutLeavesCallerClientUntouched(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c, err := New("http://localhost:8000", WithHTTPClient(shared), WithTimeout(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

func TestClient_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/review", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "x = 1", req["code"])

		_ = json.NewEncoder(w).Encode(handler.ReviewResponse{
			Feedback: "- ok", Status: core.StatusOK, SnippetID: 3, ReviewID: 4,
		})
	}))
	defer server.Close()

	c, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	resp, err := c.Submit(context.Background(), "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "- ok", resp.Feedback)
	assert.Equal(t, int64(3), resp.SnippetID)
	assert.Equal(t, int64(4), resp.ReviewID)
}

func TestClient_SubmitEmptyCodeIsSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		code, ok := req["code"]
		assert.True(t, ok)
		assert.Equal(t, "", code)
		_ = json.NewEncoder(w).Encode(handler.ReviewResponse{Status: core.StatusOK})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), "")
	require.NoError(t, err)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		isNotFound bool
	}{
		{name: "json error body", status: http.StatusUnprocessableEntity, body: `{"error":"field 'code' is required"}`, wantMsg: "field 'code' is required"},
		{name: "plain text body", status: http.StatusBadGateway, body: "upstream down\n", wantMsg: "upstream down"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", wantMsg: "500 Internal Server Error"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"snippet not found"}`, wantMsg: "snippet not found", isNotFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := New(server.URL)
			require.NoError(t, err)

			_, err = c.Snippet(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode())
			assert.Equal(t, tt.wantMsg, apiErr.Message())
			assert.Equal(t, tt.isNotFound, IsNotFound(err))
		})
	}
}

func TestClient_Snippet(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/snippets/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(core.SnippetDetail{
			Snippet: &core.CodeSnippet{ID: 42, Code: "y = 2", CreatedAt: created},
			Reviews: []core.Review{{ID: 1, SnippetID: 42, Feedback: "- fine", Status: core.StatusOK, CreatedAt: created}},
		})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	detail, err := c.Snippet(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "y = 2", detail.Snippet.Code)
	assert.True(t, created.Equal(detail.Snippet.CreatedAt))
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "- fine", detail.Reviews[0].Feedback)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(handler.Home))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	greeting, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, handler.Greeting, greeting)
}

func TestClient_PingUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.Ping(context.Background())
	assert.Error(t, err)
}
