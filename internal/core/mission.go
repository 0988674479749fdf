package core

import "time"

// Mission is a prioritized rescue objective at a target cell.
type Mission struct {
	ID       MissionID
	Priority MissionPriority
	Target   Cell
	Status   MissionStatus
	Assigned RobotID // NoRobot when unassigned

	// StartTime is set the first time the mission becomes active and is
	// cleared when the mission is released back to pending.
	StartTime      time.Time
	CompletionTime time.Time
}

// NewMission creates a pending mission.
func NewMission(id MissionID, priority MissionPriority, target Cell) *Mission {
	return &Mission{ID: id, Priority: priority, Target: target}
}

// Activate binds the mission to a robot. The start time is recorded only if
// not already set; a release clears it, so re-assignment starts a new clock.
func (m *Mission) Activate(robot RobotID, now time.Time) {
	m.Status = MissionActive
	m.Assigned = robot
	if m.StartTime.IsZero() {
		m.StartTime = now
	}
}

// Release reverts an active mission to pending and detaches its robot.
func (m *Mission) Release() {
	if m.Status != MissionActive {
		return
	}
	m.Status = MissionPending
	m.Assigned = NoRobot
	m.StartTime = time.Time{}
}

// Complete marks the mission finished and returns the elapsed duration since
// first assignment, or zero if the start time was never recorded.
func (m *Mission) Complete(now time.Time) time.Duration {
	m.Status = MissionCompleted
	m.CompletionTime = now
	if m.StartTime.IsZero() {
		return 0
	}
	return now.Sub(m.StartTime)
}
