package engine

import "github.com/san-kum/tenseg/internal/fabric"

// JointView is a read-only snapshot of one joint for rendering, export
// and tests.
type JointView struct {
	Index    int
	Location fabric.Vec3
	// Push is the incident push interval index, or -1.
	Push int
}

// IntervalView is a read-only snapshot of one interval.
type IntervalView struct {
	Index        int
	Alpha, Omega int
	Role         fabric.Role
	Push         bool
	Length       float64
	RestLength   float64
	Strain       float64
}

// FaceView is a read-only snapshot of one live face.
type FaceView struct {
	Index     int
	Ends      [3]int
	Chirality fabric.Chirality
	Mark      int
	Midpoint  fabric.Vec3
}

func (e *Engine) JointCount() int    { return e.fab.JointCount() }
func (e *Engine) IntervalCount() int { return e.fab.IntervalCount() }
func (e *Engine) FaceCount() int     { return e.fab.FaceCount() }

func (e *Engine) Joints() []JointView {
	joints := e.fab.Joints()
	out := make([]JointView, len(joints))
	for i, j := range joints {
		out[i] = JointView{
			Index:    i,
			Location: e.fab.Location(i),
			Push:     j.Push,
		}
	}
	return out
}

func (e *Engine) Intervals() []IntervalView {
	intervals := e.fab.Intervals()
	out := make([]IntervalView, len(intervals))
	for i, iv := range intervals {
		out[i] = IntervalView{
			Index:      i,
			Alpha:      iv.Alpha,
			Omega:      iv.Omega,
			Role:       iv.Role,
			Push:       iv.Role.IsPush(),
			Length:     e.dyn.Length(i),
			RestLength: e.dyn.RestLength(i),
			Strain:     e.dyn.Strain(i),
		}
	}
	return out
}

func (e *Engine) Faces() []FaceView {
	faces := e.fab.Faces()
	out := make([]FaceView, 0, len(faces))
	for i, fc := range faces {
		if fc.Removed {
			continue
		}
		mid, err := e.fab.FaceMidpoint(i)
		if err != nil {
			continue
		}
		out = append(out, FaceView{
			Index:     i,
			Ends:      fc.Ends,
			Chirality: fc.Chirality,
			Mark:      fc.Mark,
			Midpoint:  mid,
		})
	}
	return out
}

// MaxStrain is the peak strain magnitude over all intervals.
func (e *Engine) MaxStrain() float64 { return e.dyn.MaxStrain() }

// Height is the highest joint's altitude.
func (e *Engine) Height() float64 { return e.dyn.Height() }
