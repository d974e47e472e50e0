package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karston/phdscout/internal/config"
)

func completionServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-test", req.Model)
		require.Equal(t, maxOutputTokens, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		require.Equal(t, "user", req.Messages[0].Role)

		w.WriteHeader(status)
		if status >= 200 && status <= 299 {
			resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: reply}}}}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		} else {
			_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
		}
	}))
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&config.Config{
		APIKey:    "sk-test",
		APIBase:   baseURL + "/v1/",
		ModelName: "gpt-test",
	})
	require.NoError(t, err)
	return c
}

func TestCompleteSuccess(t *testing.T) {
	ts := completionServer(t, "hello from the model", http.StatusOK)
	defer ts.Close()

	got, err := testClient(t, ts.URL).Complete(context.Background(), "say hello")
	require.NoError(t, err)
	require.Equal(t, "hello from the model", got)
}

func TestCompleteNon2xx(t *testing.T) {
	ts := completionServer(t, "", http.StatusTooManyRequests)
	defer ts.Close()

	_, err := testClient(t, ts.URL).Complete(context.Background(), "say hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestCompleteNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).Complete(context.Background(), "say hello")
	require.Error(t, err)
}

func TestCompleteUnreachable(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")

	_, err := c.Complete(context.Background(), "say hello")
	require.Error(t, err)
}
