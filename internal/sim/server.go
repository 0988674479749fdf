package sim

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elektrokombinacija/rescueroute/internal/web"
)

// Handler builds the engine's HTTP surface.
//
//	GET  /                  -> {"status":"ok"}
//	GET  /simulation/state  -> Snapshot
//	POST /simulation/reset  -> {"status":"reset"}
//	GET  /debug/metrics     -> prometheus
func Handler(e *Engine, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			web.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/simulation/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		web.WriteJSON(w, http.StatusOK, e.Snapshot())
	})

	mux.HandleFunc("/simulation/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			web.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		e.Reset()
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	})

	mux.Handle("/debug/metrics", promhttp.Handler())

	return web.CORS(allowedOrigins, mux)
}
