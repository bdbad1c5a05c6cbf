package engine

import (
	"fmt"

	"github.com/san-kum/tenseg/internal/fabric"
	"github.com/san-kum/tenseg/internal/grower"
	"github.com/san-kum/tenseg/internal/physics"
	"github.com/san-kum/tenseg/internal/tenscript"
)

// Stage is the life-cycle state of a structure.
type Stage int

const (
	Growing Stage = iota
	Shaping
	Slack
	Pretensing
	Pretenst
	stageCount
)

var stageName = [stageCount]string{
	Growing:    "growing",
	Shaping:    "shaping",
	Slack:      "slack",
	Pretensing: "pretensing",
	Pretenst:   "pretenst",
}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageName[s]
}

// ParseStage inverts String, for CLI flags and persisted runs.
func ParseStage(name string) (Stage, error) {
	for s := Stage(0); s < stageCount; s++ {
		if stageName[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown stage %q", name)
}

// Dynamics is the engine-side contract with the relaxation engine: the
// fabric's integrator plus the commands the stage machine issues.
// *physics.Engine satisfies it.
type Dynamics interface {
	fabric.Integrator

	PinJoint(index int)
	SetRestLength(index int, rest float64, countdown int)
	MultiplyRestLength(index int, factor float64, countdown int)
	SetStiffness(index int, stiffness float64)
	Stiffness(index int) float64
	RestLength(index int) float64
	AdoptLengths()
	SetAltitude(altitude float64)
	Height() float64
	MaxStrain() float64
}

// Engine owns one structure: its fabric, its grower while growth is
// pending, and the dynamics that relax it. All mutation flows through
// Tick and RequestStage.
type Engine struct {
	fab   *fabric.Fabric
	dyn   Dynamics
	world physics.World

	gr    *grower.Grower
	grown bool

	stage Stage
	ticks int
	busy  bool
	// busyStreak counts consecutive busy ticks for the stuck diagnostic.
	busyStreak int
	// slackRest snapshots rest lengths on entering Slack.
	slackRest []float64

	// ConnectorTolerance is the relative length tolerance at which a
	// temporary connector counts as converged and is removed.
	ConnectorTolerance float64
	// StuckAfter is the busy-tick streak reported as stuck.
	StuckAfter int
}

func New(dyn Dynamics, world physics.World) *Engine {
	return &Engine{
		fab:                fabric.New(dyn),
		dyn:                dyn,
		world:              world,
		ConnectorTolerance: 0.1,
		StuckAfter:         1000,
	}
}

func (e *Engine) Stage() Stage { return e.stage }

// Busy reports whether the dynamics were still settling on the last tick.
func (e *Engine) Busy() bool { return e.busy }

// Ticks is the number of Tick calls so far.
func (e *Engine) Ticks() int { return e.ticks }

// Stuck reports a dynamics engine that has not calmed for StuckAfter
// consecutive ticks. A stuck structure is a diagnostic, not an error:
// the stage simply never advances.
func (e *Engine) Stuck() bool { return e.busyStreak >= e.StuckAfter }

// GrowthPending is the number of queued growth tasks.
func (e *Engine) GrowthPending() int {
	if e.gr == nil {
		return 0
	}
	return e.gr.Pending()
}

// SubmitGrammar begins growth from a parsed tenscript tree. Exactly one
// grammar per structure, and only before growth has completed.
func (e *Engine) SubmitGrammar(tree *tenscript.Tree) error {
	if e.stage != Growing || e.grown || e.gr != nil {
		return fmt.Errorf("stage %v: %w", e.stage, ErrGrammar)
	}
	e.gr = grower.New(e.fab, tree)
	return nil
}

// AbandonGrowth discards pending growth; structure already grown stays.
// The next calm tick collates marks and moves on to Shaping.
func (e *Engine) AbandonGrowth() {
	if e.gr != nil {
		e.gr.Abandon()
	}
}

// Tick advances the structure by one logical step. The dynamics always
// advance; everything else is gated on them reporting calm, so no
// structural mutation ever happens during a busy tick.
func (e *Engine) Tick() error {
	e.ticks++
	e.busy = e.dyn.Advance()
	if e.busy {
		e.busyStreak++
		return nil
	}
	e.busyStreak = 0

	switch e.stage {
	case Growing:
		if e.gr == nil {
			return nil
		}
		if !e.gr.Done() {
			return e.gr.Tick()
		}
		if err := e.collateMarks(); err != nil {
			return err
		}
		e.gr = nil
		e.grown = true
		e.stage = Shaping
		return nil
	case Pretensing:
		// The pretenst countdown has run out and the structure settled.
		e.stage = Pretenst
		return nil
	default:
		return e.resolveConnectors()
	}
}

// RequestStage commands an explicit life-cycle transition. Legal moves:
// Shaping to Slack, Slack to Shaping or Pretensing, Pretenst to Slack.
// Growing ends on its own and Pretensing settles on its own.
func (e *Engine) RequestStage(target Stage) error {
	if e.busy {
		return fmt.Errorf("to %v: %w", target, ErrBusy)
	}
	switch {
	case e.stage == Shaping && target == Slack:
		e.enterSlack()
	case e.stage == Slack && target == Shaping:
		e.multiplyPushRests(e.world.ShapingFactor)
		e.stage = Shaping
	case e.stage == Slack && target == Pretensing:
		e.multiplyPushRests(e.world.PretenstFactor)
		e.stage = Pretensing
	case e.stage == Pretenst && target == Slack:
		e.strainToStiffness()
		e.enterSlack()
	default:
		return fmt.Errorf("%v to %v: %w", e.stage, target, ErrStage)
	}
	return nil
}

// enterSlack adopts the current geometry as the rest state, drops the
// structure to the ground and snapshots rest lengths for restore.
func (e *Engine) enterSlack() {
	e.dyn.AdoptLengths()
	e.dyn.SetAltitude(0)
	e.slackRest = make([]float64, e.fab.IntervalCount())
	for i := range e.slackRest {
		e.slackRest[i] = e.dyn.RestLength(i)
	}
	e.stage = Slack
}

// RestoreSlack reapplies the rest lengths snapshotted when Slack was
// last entered. Only valid in Slack, and only while the interval set is
// unchanged since the snapshot.
func (e *Engine) RestoreSlack() error {
	if e.stage != Slack {
		return fmt.Errorf("restore in %v: %w", e.stage, ErrStage)
	}
	if len(e.slackRest) != e.fab.IntervalCount() {
		return fmt.Errorf("restore: snapshot covers %d of %d intervals: %w",
			len(e.slackRest), e.fab.IntervalCount(), ErrStage)
	}
	for i, rest := range e.slackRest {
		e.dyn.SetRestLength(i, rest, 0)
	}
	return nil
}

func (e *Engine) multiplyPushRests(factor float64) {
	for i, iv := range e.fab.Intervals() {
		if iv.Role.IsPush() {
			e.dyn.MultiplyRestLength(i, factor, e.world.IntervalCountdown)
		}
	}
}
