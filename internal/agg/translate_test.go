package agg

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/rescueroute/internal/sim"
)

func intPtr(v int) *int { return &v }

func sampleSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Robots: []sim.RobotSnapshot{
			{ID: 1, X: 3, Y: 4, Battery: 87.5, Status: "moving", MissionID: intPtr(2)},
			{ID: 2, X: 10, Y: 10, Battery: 0, Status: "dead"},
		},
		Missions: []sim.MissionSnapshot{
			{ID: 1, Priority: "high", Target: sim.PositionSnapshot{X: 7, Y: 8}, Status: "pending"},
			{ID: 2, Priority: "medium", Target: sim.PositionSnapshot{X: 3, Y: 9}, Status: "active", AssignedRobot: intPtr(1)},
			{ID: 3, Priority: "low", Target: sim.PositionSnapshot{X: 1, Y: 1}, Status: "completed"},
		},
		Obstacles:        []sim.ObstacleSnapshot{{Type: "debris", X: 5, Y: 6}},
		ChargingStations: []sim.PositionSnapshot{{X: 5, Y: 5}, {X: 45, Y: 5}},
		Metrics: sim.MetricsSnapshot{
			ActiveRobots:          1,
			CompletedMissions:     1,
			PendingMissions:       1,
			TotalDistanceTraveled: 42.0,
			AvgCompletionTime:     13.5,
		},
		Timestamp: "2025-06-01T12:00:00Z",
	}
}

func TestTranslate_Robots(t *testing.T) {
	state := Translate(sampleSnapshot(), 17, 50)

	assert.Equal(t, 17, state.Step)
	require.Len(t, state.Robots, 2)

	r := state.Robots[0]
	assert.Equal(t, "1", r.ID)
	assert.Equal(t, Point{3, 4}, r.Position)
	assert.Equal(t, 87.5, r.Battery)
	assert.Equal(t, "MOVING", r.Status)
	require.NotNil(t, r.CurrentMission)
	assert.Equal(t, "2", *r.CurrentMission)

	dead := state.Robots[1]
	assert.Equal(t, "DEAD", dead.Status)
	assert.Nil(t, dead.CurrentMission)
}

func TestTranslate_MissionSplit(t *testing.T) {
	state := Translate(sampleSnapshot(), 1, 50)

	require.Len(t, state.ActiveMissions, 2)
	require.Len(t, state.CompletedMissions, 1)

	pending := state.ActiveMissions[0]
	assert.Equal(t, "PENDING", pending.Status)
	assert.Equal(t, "High", pending.Priority)
	assert.Equal(t, Point{7, 8}, pending.Target)
	assert.Nil(t, pending.AssignedRobot)

	active := state.ActiveMissions[1]
	assert.Equal(t, "IN_PROGRESS", active.Status)
	assert.Equal(t, "Medium", active.Priority)
	require.NotNil(t, active.AssignedRobot)
	assert.Equal(t, "1", *active.AssignedRobot)

	done := state.CompletedMissions[0]
	assert.Equal(t, "COMPLETED", done.Status)
	assert.Equal(t, "Low", done.Priority)
}

func TestTranslate_GridUsesConfiguredSize(t *testing.T) {
	// Grid dimensions come from config, never from the engine payload.
	state := Translate(sampleSnapshot(), 1, 64)

	assert.Equal(t, 64, state.Grid.Width)
	assert.Equal(t, 64, state.Grid.Height)
	assert.Equal(t, []Point{{5, 6}}, state.Grid.Obstacles)
	assert.Equal(t, []Point{{5, 5}, {45, 5}}, state.Grid.ChargingStations)
}

func TestTranslate_RoundTripObservableFields(t *testing.T) {
	snap := sampleSnapshot()
	state := Translate(snap, 1, 50)

	// Every observable engine field survives translation after case and
	// type normalization.
	for i, r := range snap.Robots {
		out := state.Robots[i]
		assert.Equal(t, strconv.Itoa(r.ID), out.ID)
		assert.Equal(t, Point{r.X, r.Y}, out.Position)
		assert.Equal(t, r.Battery, out.Battery)
	}

	all := append(append([]Mission{}, state.ActiveMissions...), state.CompletedMissions...)
	assert.Len(t, all, len(snap.Missions))
	seen := map[string]bool{}
	for _, m := range all {
		seen[m.ID] = true
	}
	for _, m := range snap.Missions {
		assert.True(t, seen[strconv.Itoa(m.ID)], "mission %d lost in translation", m.ID)
	}
}

func TestTranslate_UnknownStatusFallsBack(t *testing.T) {
	snap := sampleSnapshot()
	snap.Robots[0].Status = "rebooting"
	snap.Missions[0].Priority = "critical"

	state := Translate(snap, 1, 50)
	assert.Equal(t, "REBOOTING", state.Robots[0].Status)
	assert.Equal(t, "Critical", state.ActiveMissions[0].Priority)
}
