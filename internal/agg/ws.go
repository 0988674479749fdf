package agg

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
)

// Time allowed to write a message to the peer.
const wsWriteWait = 10 * time.Second

// handleWebSocket mirrors the SSE stream over a full-duplex socket for
// clients that prefer it. Payloads are identical to /api/v1/stream events.
func (s *Server) handleWebSocket(allowedOrigins []string) http.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("agg: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		client := uuid.NewString()[:8]
		streamClients.Inc()
		defer streamClients.Dec()
		log.Printf("agg: ws client %s connected", client)
		defer log.Printf("agg: ws client %s disconnected", client)

		// Reader drains control frames and signals peer close.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		write := func() bool {
			payload, err := s.Store.StateJSON()
			if err != nil {
				log.Printf("agg: ws client %s: serialize snapshot: %v", client, err)
				return false
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			return conn.WriteMessage(websocket.TextMessage, payload) == nil
		}

		if !write() {
			return
		}
		ticker := channerics.NewTicker(r.Context().Done(), s.Interval)
		for {
			select {
			case <-closed:
				return
			case <-r.Context().Done():
				return
			case <-ticker:
				if !write() {
					return
				}
			}
		}
	}
}
