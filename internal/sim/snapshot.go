package sim

import (
	"math"
	"time"

	"github.com/elektrokombinacija/rescueroute/internal/core"
)

// The snapshot types below are the engine's wire schema, served at
// GET /simulation/state and consumed by the aggregator's poller.

// PositionSnapshot is an (x,y) pair.
type PositionSnapshot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RobotSnapshot is the published view of one robot.
type RobotSnapshot struct {
	ID        int     `json:"id"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Battery   float64 `json:"battery"`
	Status    string  `json:"status"`
	MissionID *int    `json:"mission_id"`
}

// MissionSnapshot is the published view of one mission.
type MissionSnapshot struct {
	ID            int              `json:"id"`
	Priority      string           `json:"priority"`
	Target        PositionSnapshot `json:"target"`
	Status        string           `json:"status"`
	AssignedRobot *int             `json:"assigned_robot"`
}

// ObstacleSnapshot is the published view of one obstacle.
type ObstacleSnapshot struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// MetricsSnapshot carries derived fleet metrics, floats rounded to one
// decimal place.
type MetricsSnapshot struct {
	ActiveRobots          int     `json:"active_robots"`
	CompletedMissions     int     `json:"completed_missions"`
	PendingMissions       int     `json:"pending_missions"`
	TotalDistanceTraveled float64 `json:"total_distance_traveled"`
	AvgCompletionTime     float64 `json:"avg_completion_time"`
}

// Snapshot is a deep, self-consistent view of the world at one instant.
type Snapshot struct {
	Robots           []RobotSnapshot    `json:"robots"`
	Missions         []MissionSnapshot  `json:"missions"`
	Obstacles        []ObstacleSnapshot `json:"obstacles"`
	ChargingStations []PositionSnapshot `json:"charging_stations"`
	Metrics          MetricsSnapshot    `json:"metrics"`
	Timestamp        string             `json:"timestamp"` // ISO-8601 UTC, trailing Z
}

// Snapshot returns the current world state and derived metrics.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Robots:           make([]RobotSnapshot, 0, len(e.robots)),
		Missions:         make([]MissionSnapshot, 0, len(e.missions)),
		Obstacles:        make([]ObstacleSnapshot, 0, len(e.world.Obstacles)),
		ChargingStations: make([]PositionSnapshot, 0, len(e.world.Stations)),
		Timestamp:        e.now().UTC().Format(time.RFC3339Nano),
	}

	activeRobots := 0
	totalDistance := 0.0
	for _, r := range e.robots {
		if r.Status != core.StatusDead {
			activeRobots++
		}
		totalDistance += r.Distance

		out := RobotSnapshot{
			ID:      int(r.ID),
			X:       r.Pos.X,
			Y:       r.Pos.Y,
			Battery: round1(r.Battery),
			Status:  r.Status.String(),
		}
		if r.Mission != core.NoMission {
			id := int(r.Mission)
			out.MissionID = &id
		}
		snap.Robots = append(snap.Robots, out)
	}

	completed, pending := 0, 0
	for _, m := range e.missions {
		switch m.Status {
		case core.MissionCompleted:
			completed++
		case core.MissionPending:
			pending++
		}

		out := MissionSnapshot{
			ID:       int(m.ID),
			Priority: m.Priority.String(),
			Target:   PositionSnapshot{X: m.Target.X, Y: m.Target.Y},
			Status:   m.Status.String(),
		}
		if m.Assigned != core.NoRobot {
			id := int(m.Assigned)
			out.AssignedRobot = &id
		}
		snap.Missions = append(snap.Missions, out)
	}

	for _, o := range e.world.Obstacles {
		snap.Obstacles = append(snap.Obstacles, ObstacleSnapshot{Type: o.Type, X: o.Pos.X, Y: o.Pos.Y})
	}
	for _, s := range e.world.Stations {
		snap.ChargingStations = append(snap.ChargingStations, PositionSnapshot{X: s.X, Y: s.Y})
	}

	avgCompletion := 0.0
	if len(e.completedTimes) > 0 {
		sum := 0.0
		for _, t := range e.completedTimes {
			sum += t
		}
		avgCompletion = sum / float64(len(e.completedTimes))
	}

	snap.Metrics = MetricsSnapshot{
		ActiveRobots:          activeRobots,
		CompletedMissions:     completed,
		PendingMissions:       pending,
		TotalDistanceTraveled: round1(totalDistance),
		AvgCompletionTime:     round1(avgCompletion),
	}
	return snap
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
