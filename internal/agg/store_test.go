package agg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewStore_DefaultState(t *testing.T) {
	s := NewStore()
	state := s.State()

	assert.Equal(t, 0, state.Step)
	assert.Empty(t, state.Robots)
	assert.Equal(t, 10, state.Grid.Width)
	assert.Equal(t, 10, state.Grid.Height)

	// Empty lists serialize as [], not null.
	raw, err := s.StateJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"robots":[]`)
	assert.Contains(t, string(raw), `"active_missions":[]`)
}

func TestStore_Replace(t *testing.T) {
	s := NewStore()
	s.Replace(SimulationState{Step: 5, Robots: []RobotState{{ID: "1"}}}, 12.3, 456.7)

	state := s.State()
	assert.Equal(t, 5, state.Step)
	assert.Len(t, state.Robots, 1)

	m := s.Metrics()
	assert.Equal(t, 12.3, m.AvgDeliveryTime)
	assert.Equal(t, 456.7, m.TotalDistanceTraveled)
}

func TestStore_InjectKeepsPollMetrics(t *testing.T) {
	s := NewStore()
	s.Replace(SimulationState{Step: 3}, 9.0, 100.0)
	s.Inject(SimulationState{Step: 99})

	assert.Equal(t, 99, s.State().Step)
	m := s.Metrics()
	assert.Equal(t, 9.0, m.AvgDeliveryTime)
	assert.Equal(t, 100.0, m.TotalDistanceTraveled)
}

func TestMetrics_EmptyFleet(t *testing.T) {
	m := NewStore().Metrics()

	assert.Equal(t, 0, m.ActiveRobots)
	assert.Equal(t, 0.0, m.FleetBattery)
	assert.Equal(t, 0.0, m.TotalBatteryUsed)
}

func TestMetrics_Computation(t *testing.T) {
	s := NewStore()
	s.Inject(SimulationState{
		Robots: []RobotState{
			{ID: "1", Battery: 80, Status: "MOVING"},
			{ID: "2", Battery: 60, Status: "IDLE"},
			{ID: "3", Battery: 0, Status: "DEAD"},
		},
		CompletedMissions: []Mission{{ID: "9", Status: "COMPLETED"}},
	})

	m := s.Metrics()
	assert.Equal(t, 2, m.ActiveRobots, "DEAD robots excluded")
	assert.Equal(t, 1, m.CompletedMissions)
	assert.InDelta(t, 46.7, m.FleetBattery, 0.01)
	assert.Equal(t, 160.0, m.TotalBatteryUsed)
}

func TestMetrics_ClampsInjectedBattery(t *testing.T) {
	// /update payloads are trusted as-is, but metrics clamp per robot.
	s := NewStore()
	s.Inject(SimulationState{
		Robots: []RobotState{
			{ID: "1", Battery: 150, Status: "IDLE"},
			{ID: "2", Battery: -30, Status: "IDLE"},
		},
	})

	m := s.Metrics()
	assert.Equal(t, 50.0, m.FleetBattery)
	assert.Equal(t, 100.0, m.TotalBatteryUsed)

	// The stored snapshot keeps the raw values.
	assert.Equal(t, 150.0, s.State().Robots[0].Battery)
}

func TestStateJSON_MatchesState(t *testing.T) {
	s := NewStore()
	s.Inject(SimulationState{
		Step:   7,
		Robots: []RobotState{{ID: "1", Position: Point{2, 3}, Battery: 55, Status: "IDLE", CurrentMission: strPtr("4")}},
	})

	raw, err := s.StateJSON()
	require.NoError(t, err)

	var decoded SimulationState
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, s.State().Step, decoded.Step)
	assert.Equal(t, s.State().Robots, decoded.Robots)
}
