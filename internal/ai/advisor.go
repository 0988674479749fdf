// Package ai provides the advisory "fleet commander" collaborator: a
// pluggable model that inspects a published snapshot and suggests mission
// re-prioritization. The simulation never depends on its output.
package ai

import (
	"context"
	"encoding/json"
)

// StateSummary is the advisor's view of a published snapshot: headline
// counts for the prompt plus the raw external-schema JSON document.
type StateSummary struct {
	Step           int
	Robots         int
	ActiveMissions int
	Raw            json.RawMessage
}

// Reassignment moves one robot to a new mission.
type Reassignment struct {
	RobotID      string `json:"robot_id"`
	NewMissionID string `json:"new_mission_id"`
}

// Decision is the advisory output.
type Decision struct {
	PriorityMissionID *string        `json:"priority_mission_id"`
	Reassignments     []Reassignment `json:"reassignments"`
	Reasoning         string         `json:"reasoning"`
}

// Advisor produces a Decision for a snapshot. Implementations are external
// collaborators; errors surface to the caller and are not retried.
type Advisor interface {
	Decide(ctx context.Context, state StateSummary) (*Decision, error)
}
