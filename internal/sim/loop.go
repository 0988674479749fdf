package sim

import (
	"context"
	"log"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// TickInterval is the cadence of the background simulation loop.
const TickInterval = time.Second

// Run ticks the engine until ctx is cancelled. Each tick is guarded
// internally; a failed tick never stops the loop.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	log.Printf("sim: background loop started, interval=%s", interval)
	defer log.Printf("sim: background loop stopped")

	ticker := channerics.NewTicker(ctx.Done(), interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker:
			e.Tick()
		}
	}
}
