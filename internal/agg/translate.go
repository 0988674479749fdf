package agg

import (
	"strconv"
	"strings"

	"github.com/elektrokombinacija/rescueroute/internal/sim"
)

// Serialization maps between the engine wire schema and the external schema.
// Statuses are closed sets; an unknown value falls back to a case-mapped
// copy so a schema drift upstream degrades visibly instead of panicking.
var (
	robotStatusMap = map[string]string{
		"idle":     "IDLE",
		"moving":   "MOVING",
		"charging": "CHARGING",
		"dead":     "DEAD",
	}
	priorityMap = map[string]string{
		"high":   "High",
		"medium": "Medium",
		"low":    "Low",
	}
	missionStatusMap = map[string]string{
		"pending":   "PENDING",
		"active":    "IN_PROGRESS",
		"completed": "COMPLETED",
	}
)

func mapRobotStatus(s string) string {
	if v, ok := robotStatusMap[s]; ok {
		return v
	}
	return strings.ToUpper(s)
}

func mapPriority(p string) string {
	if v, ok := priorityMap[p]; ok {
		return v
	}
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
}

func mapMissionStatus(s string) string {
	if v, ok := missionStatusMap[s]; ok {
		return v
	}
	return strings.ToUpper(s)
}

// Translate converts an engine snapshot into the external schema. step is
// the aggregator's own counter, not anything the engine reports; gridSize is
// the configured dimension and deliberately not derived from the payload.
func Translate(snap sim.Snapshot, step, gridSize int) SimulationState {
	state := SimulationState{
		Step:              step,
		Robots:            make([]RobotState, 0, len(snap.Robots)),
		ActiveMissions:    []Mission{},
		CompletedMissions: []Mission{},
		Grid: MapGrid{
			Width:            gridSize,
			Height:           gridSize,
			Obstacles:        make([]Point, 0, len(snap.Obstacles)),
			ChargingStations: make([]Point, 0, len(snap.ChargingStations)),
		},
	}

	for _, r := range snap.Robots {
		out := RobotState{
			ID:       strconv.Itoa(r.ID),
			Position: Point{r.X, r.Y},
			Battery:  r.Battery,
			Status:   mapRobotStatus(r.Status),
		}
		if r.MissionID != nil {
			id := strconv.Itoa(*r.MissionID)
			out.CurrentMission = &id
		}
		state.Robots = append(state.Robots, out)
	}

	for _, m := range snap.Missions {
		out := Mission{
			ID:       strconv.Itoa(m.ID),
			Priority: mapPriority(m.Priority),
			Target:   Point{m.Target.X, m.Target.Y},
			Status:   mapMissionStatus(m.Status),
		}
		if m.AssignedRobot != nil {
			id := strconv.Itoa(*m.AssignedRobot)
			out.AssignedRobot = &id
		}
		if out.Status == "COMPLETED" {
			state.CompletedMissions = append(state.CompletedMissions, out)
		} else {
			state.ActiveMissions = append(state.ActiveMissions, out)
		}
	}

	for _, o := range snap.Obstacles {
		state.Grid.Obstacles = append(state.Grid.Obstacles, Point{o.X, o.Y})
	}
	for _, s := range snap.ChargingStations {
		state.Grid.ChargingStations = append(state.Grid.ChargingStations, Point{s.X, s.Y})
	}

	return state
}
