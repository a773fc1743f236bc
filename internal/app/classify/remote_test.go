package classify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thinkfirst-app/thinkfirst/internal/app/classify"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": content}},
				},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func remoteFor(srv *httptest.Server) *classify.RemoteClient {
	return classify.NewRemoteClient(classify.RemoteConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
	})
}

func TestRemoteAnalyze(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"isLazy": true, "isLearning": false, "reason": "asks for a finished solution"}`)
	a, err := remoteFor(srv).Analyze(context.Background(), "solve this")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !a.IsLazy || a.IsLearning {
		t.Errorf("unexpected verdict: %+v", a)
	}
	if a.Source != domain.SourceRemote {
		t.Errorf("expected remote source, got %s", a.Source)
	}
}

func TestRemoteAnalyze_NonSuccessStatus(t *testing.T) {
	srv := chatServer(t, http.StatusTooManyRequests, "")
	_, err := remoteFor(srv).Analyze(context.Background(), "solve this")
	if !errors.Is(err, domain.ErrRemoteClassifier) {
		t.Errorf("expected ErrRemoteClassifier, got %v", err)
	}
}

func TestRemoteAnalyze_MalformedContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "sorry, I cannot produce JSON today")
	_, err := remoteFor(srv).Analyze(context.Background(), "solve this")
	if !errors.Is(err, domain.ErrRemoteClassifier) {
		t.Errorf("expected ErrRemoteClassifier, got %v", err)
	}
}

func TestRemoteRewrite(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"learningPrompt": "Could you walk me through the concepts involved?"}`)
	s, err := remoteFor(srv).Rewrite(context.Background(), "solve this")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if s != "Could you walk me through the concepts involved?" {
		t.Errorf("unexpected rewrite: %q", s)
	}
}
