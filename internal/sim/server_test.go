package sim

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*Engine, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.GridSize = 20
	e := NewEngine(cfg)
	srv := httptest.NewServer(Handler(e, []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)
	return e, srv
}

func TestHandler_Health(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf(`health body = %v, want {"status":"ok"}`, body)
	}
}

func TestHandler_State(t *testing.T) {
	e, srv := newTestServer(t)
	e.Tick()

	resp, err := http.Get(srv.URL + "/simulation/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Robots) != 5 || len(snap.Missions) != 15 {
		t.Errorf("state has %d robots, %d missions", len(snap.Robots), len(snap.Missions))
	}
	if !strings.HasSuffix(snap.Timestamp, "Z") {
		t.Errorf("timestamp %q is not UTC with trailing Z", snap.Timestamp)
	}
}

func TestHandler_Reset(t *testing.T) {
	e, srv := newTestServer(t)
	for i := 0; i < 20; i++ {
		e.Tick()
	}

	resp, err := http.Post(srv.URL+"/simulation/reset", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "reset" {
		t.Errorf(`reset body = %v, want {"status":"reset"}`, body)
	}

	snap := e.Snapshot()
	if snap.Metrics.TotalDistanceTraveled != 0 {
		t.Errorf("distance after reset = %v, want 0", snap.Metrics.TotalDistanceTraveled)
	}
}

func TestHandler_ResetRequiresPost(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/simulation/reset")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /simulation/reset = %d, want 405", resp.StatusCode)
	}
}

func TestHandler_CORS(t *testing.T) {
	_, srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/simulation/state", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q for allowed origin", got)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/simulation/state", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q for unlisted origin, want empty", got)
	}
}
