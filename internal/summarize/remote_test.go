package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNewRemoteRequiresAPIKey(t *testing.T) {
	_, err := NewRemote("", "gpt-4o-mini", "", nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func remoteTestServer(t *testing.T, status int, content string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(calls, 1)

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v", req["model"])
		}
		if mt, _ := req["max_tokens"].(float64); mt != remoteMaxTokens {
			t.Errorf("max_tokens = %v, want %d", req["max_tokens"], remoteMaxTokens)
		}
		if stream, _ := req["stream"].(bool); stream {
			t.Error("request must be non-streaming")
		}
		msgs, _ := req["messages"].([]any)
		if len(msgs) != 2 {
			t.Errorf("messages = %d, want system+user", len(msgs))
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "server exploded"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []any{
				map[string]any{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func TestRemoteSummarizeSuccess(t *testing.T) {
	var calls int32
	srv := remoteTestServer(t, http.StatusOK, "## Overview\nNice data.", &calls)
	defer srv.Close()

	r, err := NewRemote("test-key", "test-model", srv.URL+"/v1", nil)
	if err != nil {
		t.Fatalf("NewRemote: %v", err)
	}
	res := r.Summarize(context.Background(), "the narrative")
	if res.Source != SourceAPI {
		t.Fatalf("source = %s, want api", res.Source)
	}
	if res.Text != "## Overview\nNice data." {
		t.Errorf("text = %q", res.Text)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRemoteFallsBackOnServerErrorWithoutRetry(t *testing.T) {
	var calls int32
	srv := remoteTestServer(t, http.StatusInternalServerError, "", &calls)
	defer srv.Close()

	r, err := NewRemote("test-key", "test-model", srv.URL+"/v1", nil)
	if err != nil {
		t.Fatalf("NewRemote: %v", err)
	}
	narrative := "the original narrative"
	res := r.Summarize(context.Background(), narrative)
	if res.Source != SourceFallback {
		t.Fatalf("source = %s, want fallback", res.Source)
	}
	if res.Text != narrative {
		t.Errorf("fallback text modified: %q", res.Text)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1 attempt", calls)
	}
}

func TestRemoteFallsBackOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	r, err := NewRemote("test-key", "test-model", base+"/v1", nil)
	if err != nil {
		t.Fatalf("NewRemote: %v", err)
	}
	res := r.Summarize(context.Background(), "n")
	if res.Source != SourceFallback || res.Text != "n" {
		t.Fatalf("res = %+v, want fallback with input unchanged", res)
	}
}
