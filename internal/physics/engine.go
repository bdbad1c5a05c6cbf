package physics

import "github.com/san-kum/tenseg/internal/fabric"

type joint struct {
	location fabric.Vec3
	velocity fabric.Vec3
	force    fabric.Vec3
	pinned   bool
}

type interval struct {
	alpha, omega int
	push         bool
	ideal        float64
	rest         float64
	countdown    int
	stiffness    float64
	strain       float64
}

type face struct {
	joints [3]int
}

// Engine relaxes a registered structure tick by tick. It implements
// fabric.Integrator; registration order must mirror the fabric's index
// compaction exactly or the two sides drift apart.
type Engine struct {
	world     World
	joints    []joint
	intervals []interval
	faces     []face
}

func New(world World) *Engine {
	return &Engine{world: world}
}

func (e *Engine) World() World { return e.world }

// Advance runs one batch of inner ticks and reports whether the
// structure is still settling: any interval countdown live, or peak
// joint speed above the calm threshold.
func (e *Engine) Advance() bool {
	for i := 0; i < e.world.IterationsPerAdvance; i++ {
		e.tick()
	}
	for i := range e.intervals {
		if e.intervals[i].countdown > 0 {
			return true
		}
	}
	peak := 0.0
	for i := range e.joints {
		if s := e.joints[i].velocity.Length(); s > peak {
			peak = s
		}
	}
	return peak > e.world.CalmThreshold
}

func (e *Engine) tick() {
	for i := range e.intervals {
		iv := &e.intervals[i]
		if iv.countdown > 0 {
			iv.rest += (iv.ideal - iv.rest) / float64(iv.countdown)
			iv.countdown--
		}
		span := e.joints[iv.omega].location.Sub(e.joints[iv.alpha].location)
		length := span.Length()
		if length == 0 || iv.rest == 0 {
			iv.strain = 0
			continue
		}
		iv.strain = (length - iv.rest) / iv.rest
		if !iv.push && iv.strain < 0 {
			// A slack cable carries no force.
			continue
		}
		f := span.Scale(iv.strain * iv.stiffness / length)
		e.joints[iv.alpha].force = e.joints[iv.alpha].force.Add(f)
		e.joints[iv.omega].force = e.joints[iv.omega].force.Sub(f)
	}
	for i := range e.joints {
		j := &e.joints[i]
		if j.pinned {
			j.velocity = fabric.Vec3{}
			j.force = fabric.Vec3{}
			continue
		}
		j.velocity = j.velocity.Add(j.force).Scale(1 - e.world.Drag)
		if j.location.Y > 0 {
			j.velocity.Y -= e.world.Gravity
		}
		j.location = j.location.Add(j.velocity)
		if j.location.Y < 0 {
			j.location.Y = 0
			j.velocity = j.velocity.Scale(e.world.GroundResponse)
		}
		j.force = fabric.Vec3{}
	}
}

func (e *Engine) Position(index int) fabric.Vec3 {
	return e.joints[index].location
}

func (e *Engine) Length(index int) float64 {
	iv := e.intervals[index]
	return e.joints[iv.omega].location.DistanceTo(e.joints[iv.alpha].location)
}

func (e *Engine) Strain(index int) float64 {
	return e.intervals[index].strain
}

func (e *Engine) RestLength(index int) float64 {
	return e.intervals[index].rest
}

func (e *Engine) Stiffness(index int) float64 {
	return e.intervals[index].stiffness
}

// MaxStrain is the largest strain magnitude over all intervals.
func (e *Engine) MaxStrain() float64 {
	peak := 0.0
	for i := range e.intervals {
		s := e.intervals[i].strain
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

func (e *Engine) RegisterJoint(at fabric.Vec3) int {
	e.joints = append(e.joints, joint{location: at})
	return len(e.joints) - 1
}

func (e *Engine) RegisterInterval(alpha, omega int, push bool, idealLength, restLength float64, countdown int) int {
	e.intervals = append(e.intervals, interval{
		alpha:     alpha,
		omega:     omega,
		push:      push,
		ideal:     idealLength,
		rest:      restLength,
		countdown: countdown,
		stiffness: e.world.Stiffness,
	})
	return len(e.intervals) - 1
}

func (e *Engine) UnregisterInterval(index int) {
	e.intervals = append(e.intervals[:index], e.intervals[index+1:]...)
}

func (e *Engine) RegisterFace(j0, j1, j2 int) int {
	e.faces = append(e.faces, face{joints: [3]int{j0, j1, j2}})
	return len(e.faces) - 1
}

func (e *Engine) UnregisterFace(index int) {
	e.faces = append(e.faces[:index], e.faces[index+1:]...)
}

// PinJoint drops a joint to the ground plane and keeps it there.
func (e *Engine) PinJoint(index int) {
	e.joints[index].location.Y = 0
	e.joints[index].velocity = fabric.Vec3{}
	e.joints[index].pinned = true
}

// SetRestLength commands a rest-length change over a countdown. A
// countdown of zero applies it immediately.
func (e *Engine) SetRestLength(index int, rest float64, countdown int) {
	iv := &e.intervals[index]
	iv.ideal = rest
	if countdown <= 0 {
		iv.rest = rest
		iv.countdown = 0
		return
	}
	iv.countdown = countdown
}

func (e *Engine) MultiplyRestLength(index int, factor float64, countdown int) {
	e.SetRestLength(index, e.intervals[index].ideal*factor, countdown)
}

func (e *Engine) SetStiffness(index int, stiffness float64) {
	e.intervals[index].stiffness = stiffness
}

// AdoptLengths snapshots the current geometry as the slack state: every
// interval's rest length becomes its current length and all motion stops.
func (e *Engine) AdoptLengths() {
	for i := range e.intervals {
		iv := &e.intervals[i]
		length := e.joints[iv.omega].location.DistanceTo(e.joints[iv.alpha].location)
		iv.rest = length
		iv.ideal = length
		iv.countdown = 0
		iv.strain = 0
	}
	for i := range e.joints {
		e.joints[i].velocity = fabric.Vec3{}
		e.joints[i].force = fabric.Vec3{}
	}
}

// SetAltitude shifts the whole structure so its lowest joint sits at the
// given height, and stills all motion.
func (e *Engine) SetAltitude(altitude float64) {
	if len(e.joints) == 0 {
		return
	}
	low := e.joints[0].location.Y
	for i := range e.joints {
		if e.joints[i].location.Y < low {
			low = e.joints[i].location.Y
		}
	}
	for i := range e.joints {
		e.joints[i].location.Y += altitude - low
		e.joints[i].velocity = fabric.Vec3{}
	}
}

// Height is the highest joint's Y coordinate.
func (e *Engine) Height() float64 {
	high := 0.0
	for i := range e.joints {
		if e.joints[i].location.Y > high {
			high = e.joints[i].location.Y
		}
	}
	return high
}
