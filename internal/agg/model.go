// Package agg implements the aggregator: it polls the simulation engine,
// translates snapshots into the stable external schema, and fans the latest
// snapshot out to HTTP clients, an SSE stream and a WebSocket mirror.
package agg

// Point is an (x,y) coordinate tupled for the external schema.
type Point [2]int

// RobotState is the external view of one robot.
type RobotState struct {
	ID             string  `json:"id"`
	Position       Point   `json:"position"`
	Battery        float64 `json:"battery"`
	Status         string  `json:"status"` // IDLE | MOVING | CHARGING | DEAD
	CurrentMission *string `json:"current_mission"`
}

// MapGrid describes the terrain in the external schema.
type MapGrid struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Obstacles        []Point `json:"obstacles"`
	ChargingStations []Point `json:"charging_stations"`
}

// Mission is the external view of one mission.
type Mission struct {
	ID            string  `json:"id"`
	Priority      string  `json:"priority"` // High | Medium | Low
	Target        Point   `json:"target"`
	Status        string  `json:"status"` // PENDING | IN_PROGRESS | COMPLETED
	AssignedRobot *string `json:"assigned_robot"`
}

// SimulationState is the published snapshot consumed by downstream clients.
type SimulationState struct {
	Step              int          `json:"step"`
	Robots            []RobotState `json:"robots"`
	Grid              MapGrid      `json:"grid"`
	ActiveMissions    []Mission    `json:"active_missions"`
	CompletedMissions []Mission    `json:"completed_missions"`
}

// Metrics are the derived fleet metrics served at /api/v1/metrics.
type Metrics struct {
	ActiveRobots          int     `json:"active_robots"`
	CompletedMissions     int     `json:"completed_missions"`
	FleetBattery          float64 `json:"fleet_battery"`
	TotalBatteryUsed      float64 `json:"total_battery_used"`
	AvgDeliveryTime       float64 `json:"avg_delivery_time"`
	TotalDistanceTraveled float64 `json:"total_distance_traveled"`
}
