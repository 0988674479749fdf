package agg

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/elektrokombinacija/rescueroute/internal/sim"
)

// FetchTimeout is the hard bound on one engine poll.
const FetchTimeout = 4 * time.Second

// Poller periodically fetches the engine snapshot, translates it and swaps
// it into the store. Failures are logged and leave both the snapshot and the
// step counter untouched.
type Poller struct {
	Store    *Store
	BaseURL  string // Engine base URL, no trailing slash
	Interval time.Duration
	GridSize int
	Client   *http.Client

	step int // Monotonic, advances only on successful polls
}

// NewPoller creates a poller against the given engine endpoint.
func NewPoller(store *Store, baseURL string, interval time.Duration, gridSize int) *Poller {
	return &Poller{
		Store:    store,
		BaseURL:  baseURL,
		Interval: interval,
		GridSize: gridSize,
		Client:   &http.Client{Timeout: FetchTimeout},
	}
}

// Run polls until ctx is cancelled. The first poll fires immediately.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("agg: poller started, engine=%s interval=%s", p.BaseURL, p.Interval)
	defer log.Printf("agg: poller stopped")

	p.pollOnce(ctx)
	ticker := channerics.NewTicker(ctx.Done(), p.Interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	pollsTotal.Inc()
	snap, err := p.fetch(ctx)
	if err != nil {
		pollErrors.Inc()
		log.Printf("agg: poll failed, keeping previous snapshot: %v", err)
		return
	}

	// Translate outside the guard; only the swap holds the lock.
	p.step++
	state := Translate(*snap, p.step, p.GridSize)
	p.Store.Replace(state, snap.Metrics.AvgCompletionTime, snap.Metrics.TotalDistanceTraveled)
}

func (p *Poller) fetch(ctx context.Context) (*sim.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/simulation/state", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch engine state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %d", resp.StatusCode)
	}

	var snap sim.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode engine state: %w", err)
	}
	return &snap, nil
}
