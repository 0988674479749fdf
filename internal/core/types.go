// Package core defines domain models for the RescueRoute fleet.
package core

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Manhattan returns the L1 distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CellSet is a set of grid cells.
type CellSet map[Cell]struct{}

// Add inserts a cell into the set.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether the cell is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// RobotID is a unique robot identifier. Zero means "no robot".
type RobotID int

// MissionID is a unique mission identifier. Zero means "no mission".
type MissionID int

const (
	NoRobot   RobotID   = 0
	NoMission MissionID = 0
)

// RobotStatus is the closed set of robot states.
type RobotStatus int

const (
	StatusIdle RobotStatus = iota
	StatusMoving
	StatusCharging
	StatusDead
)

func (s RobotStatus) String() string {
	return [...]string{"idle", "moving", "charging", "dead"}[s]
}

// ParseRobotStatus maps a wire string to a RobotStatus.
func ParseRobotStatus(s string) (RobotStatus, bool) {
	switch s {
	case "idle":
		return StatusIdle, true
	case "moving":
		return StatusMoving, true
	case "charging":
		return StatusCharging, true
	case "dead":
		return StatusDead, true
	default:
		return StatusIdle, false
	}
}

// MissionPriority orders missions for assignment.
type MissionPriority int

const (
	PriorityLow MissionPriority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p MissionPriority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Score returns the assignment ordering weight (high=3, medium=2, low=1).
func (p MissionPriority) Score() int { return int(p) }

// AllPriorities returns priorities in descending order.
func AllPriorities() []MissionPriority {
	return []MissionPriority{PriorityHigh, PriorityMedium, PriorityLow}
}

// MissionStatus is the closed set of mission states.
type MissionStatus int

const (
	MissionPending MissionStatus = iota
	MissionActive
	MissionCompleted
)

func (s MissionStatus) String() string {
	return [...]string{"pending", "active", "completed"}[s]
}
