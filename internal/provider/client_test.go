package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/jobs/createTask":
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": map[string]any{"taskId": "task-1"},
			})
		case "/api/v1/jobs/recordInfo":
			assert.Equal(t, "task-1", r.URL.Query().Get("taskId"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200,
				"data": map[string]any{
					"state":      "success",
					"resultJson": `{"resultUrls":["https://cdn.example/img.jpg"]}`,
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 10*time.Second, discardLogger())
	image, err := c.Generate(context.Background(), Request{Prompt: "a red fox"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.jpg", image.URL)
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	c := NewClient("test-key", "http://unused.invalid", time.Second, discardLogger())
	_, err := c.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateClassifiesTaskFailure(t *testing.T) {
	cases := []struct {
		name    string
		failMsg string
		want    error
	}{
		{"content policy", "prompt was blocked by safety checks", ErrContentPolicy},
		{"capacity", "quota exhausted for this key", ErrCapacity},
		{"invalid", "invalid aspect ratio", ErrInvalidRequest},
		{"unknown", "something odd happened", ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/v1/jobs/createTask":
					_ = json.NewEncoder(w).Encode(map[string]any{
						"code": 200,
						"data": map[string]any{"taskId": "task-1"},
					})
				case "/api/v1/jobs/recordInfo":
					_ = json.NewEncoder(w).Encode(map[string]any{
						"code": 200,
						"data": map[string]any{"state": "fail", "failMsg": tc.failMsg},
					})
				}
			}))
			defer srv.Close()

			c := NewClient("test-key", srv.URL, 10*time.Second, discardLogger())
			_, err := c.Generate(context.Background(), Request{Prompt: "p"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateClassifiesHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 10*time.Second, discardLogger())
	_, err := c.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrCapacity)
}
