package agg

import (
	"encoding/json"
	"math"
	"sync"
)

// Store holds the latest published snapshot behind a single guard. The
// poller swaps it, the HTTP handlers and stream emitters read it. Critical
// sections stay short: translation happens before Replace, network writes
// happen after StateJSON.
type Store struct {
	mu    sync.Mutex
	state SimulationState

	// Carried over from the most recent engine poll for /api/v1/metrics.
	avgDeliveryTime float64
	totalDistance   float64
}

// NewStore creates a store with the default empty state served before the
// first successful poll.
func NewStore() *Store {
	return &Store{
		state: SimulationState{
			Step:              0,
			Robots:            []RobotState{},
			Grid:              MapGrid{Width: 10, Height: 10, Obstacles: []Point{}, ChargingStations: []Point{}},
			ActiveMissions:    []Mission{},
			CompletedMissions: []Mission{},
		},
	}
}

// Replace atomically swaps the published snapshot and its poll-derived
// metric fields.
func (s *Store) Replace(state SimulationState, avgDeliveryTime, totalDistance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.avgDeliveryTime = avgDeliveryTime
	s.totalDistance = totalDistance
}

// Inject replaces the snapshot from a manual /update payload. Poll-derived
// metric fields are left untouched.
func (s *Store) Inject(state SimulationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// State returns the current published snapshot.
func (s *Store) State() SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StateJSON serializes the snapshot under the guard so stream emitters see a
// consistent document, then releases before any network write.
func (s *Store) StateJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.state)
}

// Metrics derives fleet metrics from the published snapshot. Battery is
// clamped per robot to [0,100] before averaging; injected snapshots are
// otherwise trusted as-is.
func (s *Store) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	batterySum := 0.0
	for _, r := range s.state.Robots {
		if r.Status != "DEAD" {
			active++
		}
		batterySum += clamp(r.Battery, 0, 100)
	}

	n := len(s.state.Robots)
	fleetBattery := 0.0
	if n > 0 {
		fleetBattery = batterySum / float64(n)
	}
	totalUsed := math.Max(0, 100*float64(n)-batterySum)

	return Metrics{
		ActiveRobots:          active,
		CompletedMissions:     len(s.state.CompletedMissions),
		FleetBattery:          round1(fleetBattery),
		TotalBatteryUsed:      round1(totalUsed),
		AvgDeliveryTime:       round1(s.avgDeliveryTime),
		TotalDistanceTraveled: round1(s.totalDistance),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
