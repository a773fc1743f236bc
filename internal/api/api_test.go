package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/app/tracker"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
	"github.com/thinkfirst-app/thinkfirst/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*Server, *tracker.Engine) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine := tracker.New(tracker.Options{Store: sqlite.NewStateStore(db)})
	t.Cleanup(engine.Wait)

	srv := NewServer(engine, "test")
	srv.SetHub(NewHub())
	return srv, engine
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) domain.State {
	t.Helper()
	var resp stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return resp.State
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" || resp["version"] != "test" {
		t.Errorf("health: %v", resp)
	}
}

func TestGetState_Defaults(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	st := decodeState(t, rec)
	if st.Mode != domain.ModeNormal || st.Gamification.DailyGoal != 5 || st.Gamification.Level != 1 {
		t.Errorf("defaults: %+v", st)
	}
}

func TestSetMode(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/mode", map[string]string{"mode": "strict"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	if st := decodeState(t, rec); st.Mode != domain.ModeStrict {
		t.Errorf("mode: %s", st.Mode)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/mode", map[string]string{"mode": "turbo"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mode status: %d", rec.Code)
	}
}

func TestSetGoal_Validation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/goal", map[string]int{"goal": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	if st := decodeState(t, rec); st.Gamification.DailyGoal != 10 {
		t.Errorf("goal: %d", st.Gamification.DailyGoal)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/goal", map[string]int{"goal": 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero goal status: %d", rec.Code)
	}
}

func TestRecordPrompt(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/prompt", map[string]string{
		"prompt": "explain the concept of interfaces",
		"site":   "claude.ai",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	st := decodeState(t, rec)
	if st.Usage.Today != 1 || len(st.PromptLog) != 1 {
		t.Errorf("state after prompt: today=%d log=%d", st.Usage.Today, len(st.PromptLog))
	}
	engine.Wait()

	rec = doJSON(t, h, http.MethodPost, "/api/prompt", map[string]string{"site": "claude.ai"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty prompt status: %d", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/classify", map[string]string{
		"prompt": "solve this for me right now",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	var a domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if !a.IsLazy || a.Source != domain.SourceHeuristic {
		t.Errorf("analysis: %+v", a)
	}
	engine.Wait()
}

func TestResets(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/prompt", map[string]string{
		"prompt": "how does this work", "site": "claude.ai",
	})
	engine.Wait()

	rec := doJSON(t, h, http.MethodPost, "/api/reset/today", nil)
	if st := decodeState(t, rec); st.Usage.Today != 0 {
		t.Errorf("today after reset: %d", st.Usage.Today)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/reset/all", nil)
	st := decodeState(t, rec)
	if len(st.Usage.History.Daily) != 0 || st.ThinkingPoints != 0 {
		t.Errorf("state after full reset: %+v", st)
	}
}

func TestHub_BroadcastAndDrop(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	hub.LevelUp(3)
	select {
	case ev := <-ch:
		if ev.Type != "levelUp" {
			t.Errorf("event type: %s", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	// A full subscriber must not block the broadcaster.
	for i := 0; i < 100; i++ {
		hub.InterventionRequired("p", domain.Analysis{})
	}
}

func TestEventsSSE(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type: %s", ct)
	}

	buf := make([]byte, 512)
	var got string

	// Wait for the initial comment: once it arrives the handler has
	// subscribed and a broadcast cannot be lost.
	n, err := resp.Body.Read(buf)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	got += string(buf[:n])
	if !bytes.Contains([]byte(got), []byte("connected")) {
		t.Fatalf("expected connect comment, got %q", got)
	}

	srv.Hub().LevelUp(2)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n, err := resp.Body.Read(buf)
		got += string(buf[:n])
		if err != nil {
			break
		}
		if bytes.Contains([]byte(got), []byte("levelUp")) {
			return
		}
	}
	t.Fatalf("levelUp event not seen in stream: %q", got)
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/state", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status: %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
