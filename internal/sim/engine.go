// Package sim implements the deterministic, tick-driven rescue simulation:
// mission assignment, path following, battery management and terminal states.
package sim

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/elektrokombinacija/rescueroute/internal/algo"
	"github.com/elektrokombinacija/rescueroute/internal/core"
)

// Simulation constants. Battery values are percent.
const (
	BatteryDrainPerMove  = 2.0
	BatteryChargePerTick = 10.0
	LowBatteryThreshold  = 20.0
	MinBatteryForMission = 50.0
)

// Config configures world generation at reset.
type Config struct {
	GridSize            int
	RobotCount          int
	MissionsPerPriority int
	ObstacleCount       int
	Stations            []core.Cell

	// Seed for reproducible world generation.
	Seed int64
}

// DefaultConfig returns the standard 50x50 scenario.
func DefaultConfig() Config {
	return Config{
		GridSize:            50,
		RobotCount:          5,
		MissionsPerPriority: 5,
		ObstacleCount:       10,
		Stations:            core.DefaultStations(),
		Seed:                42,
	}
}

// Engine owns the ground-truth world. All mutation happens inside Tick and
// Reset; Snapshot reads under the same guard, so ticks and reads never
// interleave.
type Engine struct {
	mu sync.Mutex

	cfg Config
	rng *rand.Rand
	now func() time.Time // Injectable clock

	tickCount      int
	world          *core.World
	robots         []*core.Robot
	missions       []*core.Mission
	completedTimes []float64 // Completion durations, seconds
}

// NewEngine creates an engine and builds the initial world.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		now: time.Now,
	}
	e.reset()
	return e
}

// Reset discards all state and rebuilds the world.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.tickCount = 0
	e.completedTimes = nil

	e.world = core.GenerateWorld(e.rng, e.cfg.GridSize, e.cfg.ObstacleCount, e.cfg.Stations)

	e.robots = make([]*core.Robot, 0, e.cfg.RobotCount)
	for i := 1; i <= e.cfg.RobotCount; i++ {
		e.robots = append(e.robots, core.NewRobot(core.RobotID(i), e.world.RandomFreeCell(e.rng)))
	}

	e.missions = nil
	id := core.MissionID(1)
	for _, priority := range core.AllPriorities() {
		for i := 0; i < e.cfg.MissionsPerPriority; i++ {
			e.missions = append(e.missions, core.NewMission(id, priority, e.world.RandomFreeCell(e.rng)))
			id++
		}
	}

	log.Printf("sim: reset robots=%d missions=%d obstacles=%d",
		len(e.robots), len(e.missions), len(e.world.Obstacles))
}

// Tick advances the world by exactly one step. It is total: an unexpected
// error inside a phase is logged and the engine continues from the next tick.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sim: tick %d aborted: %v", e.tickCount, r)
		}
	}()

	e.tickCount++
	e.assignPendingMissions()
	e.moveRobotsOneStep()
	e.processMissionCompletion()
	e.manageBatteryAndCharging()
	e.markDeadRobots()
	ticksTotal.Inc()
}

// assignPendingMissions hands pending missions to idle robots in descending
// priority order, nearest robot first.
func (e *Engine) assignPendingMissions() {
	var pending []*core.Mission
	for _, m := range e.missions {
		if m.Status == core.MissionPending {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Priority.Score() > pending[j].Priority.Score()
	})

	for _, mission := range pending {
		robot := e.nearestIdleRobot(mission.Target)
		if robot == nil {
			return // No candidates left; remaining missions wait for next tick.
		}

		path := algo.FindPath(robot.Pos, mission.Target, e.world.Width, e.world.Height, e.world.Blocked)
		if len(path) == 0 {
			pathFailures.Inc()
			log.Printf("sim: mission %d currently unreachable at (%d,%d)",
				mission.ID, mission.Target.X, mission.Target.Y)
			continue
		}

		robot.Path = path[1:]
		robot.Status = core.StatusMoving
		robot.Mission = mission.ID
		robot.ChargeDest = nil
		mission.Activate(robot.ID, e.now())

		log.Printf("sim: mission %d (%s) assigned to robot %d", mission.ID, mission.Priority, robot.ID)
	}
}

// nearestIdleRobot returns the idle robot with enough battery that minimizes
// Manhattan distance to target; ties go to the first robot in fleet order.
func (e *Engine) nearestIdleRobot(target core.Cell) *core.Robot {
	var best *core.Robot
	bestDist := 0
	for _, r := range e.robots {
		if r.Status != core.StatusIdle || r.Battery <= MinBatteryForMission {
			continue
		}
		d := r.Pos.Manhattan(target)
		if best == nil || d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

func (e *Engine) moveRobotsOneStep() {
	for _, robot := range e.robots {
		if robot.Status != core.StatusMoving {
			continue
		}

		next, ok := robot.NextStep()
		if !ok {
			// Arrived at the end of a mission or charging route.
			if robot.ChargeDest != nil && robot.Pos == *robot.ChargeDest {
				robot.Status = core.StatusCharging
			} else {
				robot.Status = core.StatusIdle
			}
			continue
		}

		robot.Pos = next
		robot.Drain(BatteryDrainPerMove)
		robot.Distance++
	}
}

func (e *Engine) processMissionCompletion() {
	for _, robot := range e.robots {
		if robot.Status == core.StatusDead || robot.Mission == core.NoMission {
			continue
		}

		mission := e.missionByID(robot.Mission)
		if mission == nil || mission.Status != core.MissionActive {
			continue
		}

		if robot.Pos == mission.Target && len(robot.Path) == 0 {
			elapsed := mission.Complete(e.now())
			e.completedTimes = append(e.completedTimes, elapsed.Seconds())
			robot.Mission = core.NoMission
			robot.ClearPath()
			robot.Status = core.StatusIdle
			missionsCompleted.Inc()
			log.Printf("sim: mission %d completed by robot %d", mission.ID, robot.ID)
		}
	}
}

func (e *Engine) manageBatteryAndCharging() {
	for _, robot := range e.robots {
		if robot.Status == core.StatusDead {
			continue
		}

		if e.world.IsStation(robot.Pos) && robot.Battery < 100 {
			// Standing on a station always charges, even mid-mission.
			robot.Status = core.StatusCharging
			robot.ClearPath()
			dest := robot.Pos
			robot.ChargeDest = &dest
			if robot.Charge(BatteryChargePerTick) {
				robot.Status = core.StatusIdle
				robot.ChargeDest = nil
			}
			continue
		}

		if robot.Battery < LowBatteryThreshold {
			e.releaseMission(robot)
			station := e.world.NearestStation(robot.Pos)
			path := algo.FindPath(robot.Pos, station, e.world.Width, e.world.Height, e.world.Blocked)
			if len(path) > 0 {
				robot.Path = path[1:]
				robot.ChargeDest = &station
				robot.Status = core.StatusMoving
			} else {
				robot.Status = core.StatusDead
				robot.ClearPath()
				pathFailures.Inc()
				log.Printf("sim: robot %d cannot reach a charging station, marked dead", robot.ID)
			}
		}
	}
}

func (e *Engine) markDeadRobots() {
	for _, robot := range e.robots {
		if robot.Status == core.StatusDead {
			continue
		}
		if robot.Battery <= 0 {
			e.releaseMission(robot)
			robot.Status = core.StatusDead
			robot.ClearPath()
			robot.ChargeDest = nil
			robotsDead.Inc()
			log.Printf("sim: robot %d battery depleted, marked dead", robot.ID)
		}
	}
}

// releaseMission reverts the robot's active mission to pending, if any.
func (e *Engine) releaseMission(robot *core.Robot) {
	if robot.Mission == core.NoMission {
		return
	}
	if mission := e.missionByID(robot.Mission); mission != nil {
		mission.Release()
	}
	robot.Mission = core.NoMission
}

func (e *Engine) missionByID(id core.MissionID) *core.Mission {
	for _, m := range e.missions {
		if m.ID == id {
			return m
		}
	}
	return nil
}
