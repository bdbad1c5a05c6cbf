package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/tenseg/internal/fabric"
	"github.com/san-kum/tenseg/internal/grower"
)

// groundLevel is the altitude at or below which a joint counts as
// resting on the ground.
const groundLevel = 1e-9

// collateMarks runs once, when growth completes. A lone marked face is
// anchored: its joints are pinned to the ground. Two or more faces
// sharing a tag are pulled together by temporary face-connect intervals
// that resolveConnectors later removes.
func (e *Engine) collateMarks() error {
	for _, group := range grower.Collate(e.fab) {
		if len(group.Faces) == 1 {
			fc, err := e.fab.Face(group.Faces[0])
			if err != nil {
				return fmt.Errorf("mark %d: %w", group.Tag, err)
			}
			for _, j := range fc.Ends {
				e.dyn.PinJoint(j)
			}
			continue
		}
		for i := 0; i+1 < len(group.Faces); i++ {
			if err := e.connectFaces(group.Faces[i], group.Faces[i+1]); err != nil {
				return fmt.Errorf("mark %d: %w", group.Tag, err)
			}
		}
	}
	return nil
}

// connectFaces wires three face-connect pulls between corresponding
// joints of two faces. The second face's winding is reversed so the
// faces approach each other front to front.
func (e *Engine) connectFaces(a, b int) error {
	fa, err := e.fab.Face(a)
	if err != nil {
		return err
	}
	fb, err := e.fab.Face(b)
	if err != nil {
		return err
	}
	ends := [3]int{fb.Ends[0], fb.Ends[2], fb.Ends[1]}
	for k := 0; k < 3; k++ {
		if _, err := e.fab.CreateInterval(fa.Ends[k], ends[k], fabric.PullFaceConnect, 100); err != nil {
			return err
		}
	}
	return nil
}

// resolveConnectors removes temporary connectors whose current length
// has converged within tolerance of their target. Connectors are found
// by role scan, highest index first, so no stored indices go stale
// through the compaction each removal triggers.
func (e *Engine) resolveConnectors() error {
	for i := e.fab.IntervalCount() - 1; i >= 0; i-- {
		iv, err := e.fab.Interval(i)
		if err != nil {
			return err
		}
		if !iv.Role.Connector() {
			continue
		}
		gap := math.Abs(e.dyn.Length(i) - iv.IdealLength)
		if gap > e.ConnectorTolerance*iv.IdealLength {
			continue
		}
		if err := e.fab.RemoveInterval(i); err != nil {
			return err
		}
	}
	return nil
}

// strainToStiffness derives per-interval stiffness from observed strain,
// normalized against the peak so the most strained cable gets the
// default stiffness. Pushes keep their stiffness, connectors are
// transient, and intervals lying on the ground carry contact artifacts
// rather than structural strain.
func (e *Engine) strainToStiffness() {
	peak := e.dyn.MaxStrain()
	if peak == 0 {
		return
	}
	for i, iv := range e.fab.Intervals() {
		if iv.Role.IsPush() || iv.Role.Connector() {
			continue
		}
		alphaY := e.fab.Location(iv.Alpha).Y
		omegaY := e.fab.Location(iv.Omega).Y
		if alphaY <= groundLevel && omegaY <= groundLevel {
			continue
		}
		strain := math.Abs(e.dyn.Strain(i))
		e.dyn.SetStiffness(i, e.world.Stiffness*strain/peak)
	}
}
