package core

// Robot is an agent in the fleet.
type Robot struct {
	ID       RobotID
	Pos      Cell
	Battery  float64 // Percent, [0,100]
	Status   RobotStatus
	Mission  MissionID // NoMission when unassigned
	Path     []Cell    // Remaining cells to traverse, head first
	Distance float64   // Cumulative cells traveled

	// ChargeDest is the station cell the robot is routing to, nil when not
	// heading for (or sitting on) a charger.
	ChargeDest *Cell
}

// NewRobot creates an idle robot with a full battery.
func NewRobot(id RobotID, pos Cell) *Robot {
	return &Robot{ID: id, Pos: pos, Battery: 100}
}

// Drain reduces battery by amount, floored at zero.
func (r *Robot) Drain(amount float64) {
	r.Battery -= amount
	if r.Battery < 0 {
		r.Battery = 0
	}
}

// Charge raises battery by amount, capped at 100. Returns true when full.
func (r *Robot) Charge(amount float64) bool {
	r.Battery += amount
	if r.Battery >= 100 {
		r.Battery = 100
		return true
	}
	return false
}

// NextStep pops the head of the pending path. ok is false when the path is
// already empty.
func (r *Robot) NextStep() (next Cell, ok bool) {
	if len(r.Path) == 0 {
		return Cell{}, false
	}
	next = r.Path[0]
	r.Path = r.Path[1:]
	return next, true
}

// ClearPath drops any pending route.
func (r *Robot) ClearPath() { r.Path = nil }
