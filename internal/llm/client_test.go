// ABOUTME: Tests for the Azure OpenAI completion client against stub upstreams
// ABOUTME: Covers request shape, reply extraction, and error kind classification

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jee1994/movie-chat-backend/internal/config"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestClient(t *testing.T, endpoint string) *Client {
	cfg := &config.Config{
		AzureEndpoint:   endpoint,
		AzureAPIVersion: "2024-02-15-preview",
		AzureDeployment: "gpt-4",
		AzureAPIKey:     "test-key",
		MaxTokens:       800,
		Temperature:     0.7,
	}
	return NewClient(cfg, zaptest.NewLogger(t))
}

func stubUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const goodBody = `{"choices":[{"message":{"role":"assistant","content":"Try X"}}]}`

// ==========================
// Core Functionality Tests
// ==========================

func TestClient_Complete_Success(t *testing.T) {
	srv := stubUpstream(t, http.StatusOK, goodBody)
	client := newTestClient(t, srv.URL)

	reply, err := client.Complete(context.Background(), "recommend a comedy")
	require.NoError(t, err)
	assert.Equal(t, "Try X", reply)
}

func TestClient_Complete_RequestShape(t *testing.T) {
	var (
		gotPath   string
		gotQuery  string
		gotAPIKey string
		gotBody   completionRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("api-version")
		gotAPIKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(goodBody))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "recommend a comedy")
	require.NoError(t, err)

	assert.Equal(t, "/openai/deployments/gpt-4/chat/completions", gotPath)
	assert.Equal(t, "2024-02-15-preview", gotQuery)
	assert.Equal(t, "test-key", gotAPIKey)

	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, SystemPrompt, gotBody.Messages[0].Content)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "recommend a comedy", gotBody.Messages[1].Content)
	assert.Equal(t, 800, gotBody.MaxTokens)
	assert.InDelta(t, 0.7, gotBody.Temperature, 0.0001)
}

func TestClient_Complete_TrailingSlashEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(goodBody))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv.URL+"/")
	_, err := client.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "/openai/deployments/gpt-4/chat/completions", gotPath)
}

// ==========================
// Error Classification Tests
// ==========================

func TestClient_Complete_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{
			name:     "upstream 500 is a network error",
			status:   http.StatusInternalServerError,
			body:     `{"error":"boom"}`,
			wantKind: KindNetwork,
		},
		{
			name:     "upstream 401 is a network error",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"code":"401"}}`,
			wantKind: KindNetwork,
		},
		{
			name:     "undecodable body is a bad response",
			status:   http.StatusOK,
			body:     `not json at all`,
			wantKind: KindBadResponse,
		},
		{
			name:     "empty choices is a bad response",
			status:   http.StatusOK,
			body:     `{"choices":[]}`,
			wantKind: KindBadResponse,
		},
		{
			name:     "empty content is a bad response",
			status:   http.StatusOK,
			body:     `{"choices":[{"message":{"content":""}}]}`,
			wantKind: KindBadResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := stubUpstream(t, tt.status, tt.body)
			client := newTestClient(t, srv.URL)

			reply, err := client.Complete(context.Background(), "hi")
			require.Error(t, err)
			assert.Empty(t, reply)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestClient_Complete_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := newTestClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
