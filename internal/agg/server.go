package agg

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elektrokombinacija/rescueroute/internal/ai"
	"github.com/elektrokombinacija/rescueroute/internal/web"
)

// StreamInterval is the cadence of SSE and WebSocket updates, independent of
// the poll cadence: a stuck poller keeps streaming stale snapshots.
const StreamInterval = time.Second

// Server exposes the aggregator's HTTP surface.
type Server struct {
	Store     *Store
	Advisor   ai.Advisor
	Decisions *ai.DecisionLog

	// Interval between stream events; tests shorten it.
	Interval time.Duration
}

// NewServer wires the aggregator endpoints around a store.
func NewServer(store *Store, advisor ai.Advisor, decisions *ai.DecisionLog) *Server {
	return &Server{
		Store:     store,
		Advisor:   advisor,
		Decisions: decisions,
		Interval:  StreamInterval,
	}
}

// Handler builds the route table.
//
//	GET  /                   -> banner
//	GET  /api/v1/state       -> SimulationState
//	GET  /api/v1/robots      -> robots list
//	GET  /api/v1/missions    -> active missions
//	GET  /api/v1/metrics     -> fleet metrics
//	GET  /api/v1/stream      -> SSE, "update" events
//	GET  /api/v1/ws          -> WebSocket mirror of the stream
//	POST /api/v1/update      -> manual snapshot injection
//	POST /api/v1/ai/decide   -> advisory decision
//	GET  /debug/metrics      -> prometheus
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			web.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": "RescueRoute AI Backend Operating Normal"})
	})

	mux.HandleFunc("/api/v1/state", s.requireGet(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, s.Store.State())
	}))

	mux.HandleFunc("/api/v1/robots", s.requireGet(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, s.Store.State().Robots)
	}))

	mux.HandleFunc("/api/v1/missions", s.requireGet(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, s.Store.State().ActiveMissions)
	}))

	mux.HandleFunc("/api/v1/metrics", s.requireGet(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, s.Store.Metrics())
	}))

	mux.HandleFunc("/api/v1/update", s.handleUpdate)
	mux.HandleFunc("/api/v1/stream", s.handleStream)
	mux.HandleFunc("/api/v1/ws", s.handleWebSocket(allowedOrigins))
	mux.HandleFunc("/api/v1/ai/decide", s.handleDecide)

	mux.Handle("/debug/metrics", promhttp.Handler())

	return web.CORS(allowedOrigins, mux)
}

func (s *Server) requireGet(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	}
}

// handleUpdate accepts a full external-schema snapshot and replaces the
// published one. Ordinarily the poller is authoritative; this exists for
// manual and test injection.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var state SimulationState
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		web.WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid state payload: %v", err))
		return
	}

	s.Store.Inject(state)
	log.Printf("agg: received state update for step %d", state.Step)
	web.WriteJSON(w, http.StatusOK, map[string]any{"status": "received", "step": state.Step})
}

// handleStream serves the SSE channel: one "update" event per interval with
// the published snapshot as payload, until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		web.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := uuid.NewString()[:8]
	streamClients.Inc()
	defer streamClients.Dec()
	log.Printf("agg: stream client %s connected", client)
	defer log.Printf("agg: stream client %s disconnected", client)

	emit := func() bool {
		payload, err := s.Store.StateJSON()
		if err != nil {
			log.Printf("agg: stream client %s: serialize snapshot: %v", client, err)
			return false
		}
		if _, err := fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !emit() {
		return
	}
	ticker := channerics.NewTicker(r.Context().Done(), s.Interval)
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker:
			if !emit() {
				return
			}
		}
	}
}

// handleDecide forwards the current snapshot to the advisory model and
// appends the decision to the JSON-lines log.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := s.Store.State()
	if len(state.Robots) == 0 {
		web.WriteError(w, http.StatusBadRequest, "no robots in current simulation state")
		return
	}

	raw, err := json.Marshal(state)
	if err != nil {
		web.WriteError(w, http.StatusInternalServerError, "serialize state")
		return
	}

	decision, err := s.Advisor.Decide(r.Context(), ai.StateSummary{
		Step:           state.Step,
		Robots:         len(state.Robots),
		ActiveMissions: len(state.ActiveMissions),
		Raw:            raw,
	})
	if err != nil {
		if errors.Is(err, ai.ErrNoAPIKey) {
			web.WriteError(w, http.StatusInternalServerError, "advisory model not configured")
			return
		}
		log.Printf("agg: advisory call failed: %v", err)
		web.WriteError(w, http.StatusBadGateway, "advisory model error")
		return
	}

	if s.Decisions != nil {
		if err := s.Decisions.Append(state.Step, decision); err != nil {
			log.Printf("agg: append decision log: %v", err)
		}
	}

	web.WriteJSON(w, http.StatusOK, decision)
}
