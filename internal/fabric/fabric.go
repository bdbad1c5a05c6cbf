package fabric

import "fmt"

// Integrator is the physical relaxation engine the fabric keeps in
// lockstep with its graph. The fabric registers every joint, interval
// and face it creates and unregisters what it removes; positions,
// lengths and strains are read back from here.
type Integrator interface {
	// Advance steps the simulation by a batch of ticks and reports
	// whether the structure is still settling.
	Advance() bool

	Position(joint int) Vec3
	Length(interval int) float64
	Strain(interval int) float64

	RegisterJoint(at Vec3) int
	RegisterInterval(alpha, omega int, push bool, idealLength, restLength float64, countdown int) int
	UnregisterInterval(index int)
	RegisterFace(j0, j1, j2 int) int
	UnregisterFace(index int)
}

// RemovalObserver is notified after an interval or face has been removed
// and its index range compacted, so that external index holders can
// decrement their own references.
type RemovalObserver interface {
	IntervalRemoved(index int)
	FaceRemoved(index int)
}

// Joint is a point in the structure. Its position lives in the
// integrator; the graph side tracks only its single optional push.
type Joint struct {
	// Push is the index of the incident push interval, or -1.
	Push int
}

// Interval is an edge between two joints.
type Interval struct {
	Alpha, Omega int
	Role         Role
	// Scale is a sizing percentage; 100 means the role's canonical length.
	Scale float64
	// IdealLength is the target rest length (canonical length x scale).
	IdealLength float64
}

// Touches reports whether the interval has the given joint as an endpoint.
func (iv Interval) Touches(joint int) bool {
	return iv.Alpha == joint || iv.Omega == joint
}

// Other returns the opposite endpoint from the given joint.
func (iv Interval) Other(joint int) int {
	if iv.Alpha == joint {
		return iv.Omega
	}
	return iv.Alpha
}

// Face is an ordered triple of joints bounding a growth point, together
// with the three pull intervals forming its perimeter.
type Face struct {
	Ends      [3]int
	Pulls     [3]int
	Chirality Chirality
	// Mark is a grammar-assigned tag for later collation; 0 means none.
	Mark    int
	Removed bool
}

// Fabric is the structure graph. It is the only legal mutator of the
// joint/interval/face collections; components hold indices into it.
type Fabric struct {
	integ     Integrator
	joints    []Joint
	intervals []Interval
	faces     []Face
	observers []RemovalObserver

	// CountdownScale converts a rest-length gap into interpolation ticks
	// for newly created intervals, so far-from-rest intervals relax in
	// rather than snap.
	CountdownScale float64
}

func New(integ Integrator) *Fabric {
	return &Fabric{
		integ:          integ,
		CountdownScale: 300,
	}
}

func (f *Fabric) Observe(o RemovalObserver) { f.observers = append(f.observers, o) }

func (f *Fabric) JointCount() int    { return len(f.joints) }
func (f *Fabric) IntervalCount() int { return len(f.intervals) }
func (f *Fabric) FaceCount() int     { return len(f.faces) }

// Joints returns a copy of the joint collection.
func (f *Fabric) Joints() []Joint {
	out := make([]Joint, len(f.joints))
	copy(out, f.joints)
	return out
}

// Intervals returns a copy of the interval collection.
func (f *Fabric) Intervals() []Interval {
	out := make([]Interval, len(f.intervals))
	copy(out, f.intervals)
	return out
}

// Faces returns a copy of the face collection.
func (f *Fabric) Faces() []Face {
	out := make([]Face, len(f.faces))
	copy(out, f.faces)
	return out
}

func (f *Fabric) Interval(index int) (Interval, error) {
	if index < 0 || index >= len(f.intervals) {
		return Interval{}, fmt.Errorf("interval %d of %d: %w", index, len(f.intervals), ErrBadIndex)
	}
	return f.intervals[index], nil
}

func (f *Fabric) Face(index int) (Face, error) {
	if index < 0 || index >= len(f.faces) {
		return Face{}, fmt.Errorf("face %d of %d: %w", index, len(f.faces), ErrBadIndex)
	}
	return f.faces[index], nil
}

// Location reads a joint position from the integrator.
func (f *Fabric) Location(joint int) Vec3 {
	return f.integ.Position(joint)
}

// PushEnd returns the joint on the far side of the given joint's push
// interval, if it has one.
func (f *Fabric) PushEnd(joint int) (int, bool) {
	if joint < 0 || joint >= len(f.joints) {
		return 0, false
	}
	p := f.joints[joint].Push
	if p < 0 {
		return 0, false
	}
	return f.intervals[p].Other(joint), true
}

// CreateJoint allocates a joint at the given location.
func (f *Fabric) CreateJoint(at Vec3) int {
	index := len(f.joints)
	f.joints = append(f.joints, Joint{Push: -1})
	f.integ.RegisterJoint(at)
	return index
}

// CreateInterval connects two joints with the given role and scale.
// The rest length starts at the current joint separation and counts down
// toward the role's canonical length times the scale factor.
func (f *Fabric) CreateInterval(alpha, omega int, role Role, scale float64) (int, error) {
	if alpha < 0 || alpha >= len(f.joints) || omega < 0 || omega >= len(f.joints) {
		return 0, fmt.Errorf("interval %d-%d of %d joints: %w", alpha, omega, len(f.joints), ErrBadIndex)
	}
	index := len(f.intervals)
	if role.IsPush() {
		if f.joints[alpha].Push >= 0 {
			return 0, fmt.Errorf("joint %d: %w", alpha, ErrPushTaken)
		}
		if f.joints[omega].Push >= 0 {
			return 0, fmt.Errorf("joint %d: %w", omega, ErrPushTaken)
		}
		f.joints[alpha].Push = index
		f.joints[omega].Push = index
	}
	ideal := role.CanonicalLength() * scale / 100
	current := f.integ.Position(alpha).DistanceTo(f.integ.Position(omega))
	gap := ideal - current
	if gap < 0 {
		gap = -gap
	}
	countdown := int(gap * f.CountdownScale)
	f.intervals = append(f.intervals, Interval{
		Alpha:       alpha,
		Omega:       omega,
		Role:        role,
		Scale:       scale,
		IdealLength: ideal,
	})
	f.integ.RegisterInterval(alpha, omega, role.IsPush(), ideal, current, countdown)
	return index, nil
}

// RemoveInterval removes the interval and compacts every index above it:
// remaining joint push references and face pull references shift down by
// one, and removal observers are notified.
func (f *Fabric) RemoveInterval(index int) error {
	if index < 0 || index >= len(f.intervals) {
		return fmt.Errorf("interval %d of %d: %w", index, len(f.intervals), ErrBadIndex)
	}
	iv := f.intervals[index]
	if iv.Role.IsPush() {
		f.joints[iv.Alpha].Push = -1
		f.joints[iv.Omega].Push = -1
	}
	f.intervals = append(f.intervals[:index], f.intervals[index+1:]...)
	for j := range f.joints {
		if f.joints[j].Push > index {
			f.joints[j].Push--
		}
	}
	for fc := range f.faces {
		for k := range f.faces[fc].Pulls {
			if f.faces[fc].Pulls[k] > index {
				f.faces[fc].Pulls[k]--
			}
		}
	}
	f.integ.UnregisterInterval(index)
	for _, o := range f.observers {
		o.IntervalRemoved(index)
	}
	return nil
}

// FindPull locates a live non-push interval between two joints.
func (f *Fabric) FindPull(a, b int) (int, bool) {
	for i, iv := range f.intervals {
		if iv.Role.IsPush() {
			continue
		}
		if (iv.Alpha == a && iv.Omega == b) || (iv.Alpha == b && iv.Omega == a) {
			return i, true
		}
	}
	return 0, false
}

// CreateFace forms a face over three joints whose perimeter pulls must
// already exist; it never creates intervals itself.
func (f *Fabric) CreateFace(ends [3]int, chirality Chirality) (int, error) {
	for _, e := range ends {
		if e < 0 || e >= len(f.joints) {
			return 0, fmt.Errorf("face end %d of %d joints: %w", e, len(f.joints), ErrBadIndex)
		}
	}
	var pulls [3]int
	for k := 0; k < 3; k++ {
		a, b := ends[k], ends[(k+1)%3]
		p, ok := f.FindPull(a, b)
		if !ok {
			return 0, fmt.Errorf("between joints %d and %d: %w", a, b, ErrNoPerimeter)
		}
		pulls[k] = p
	}
	index := len(f.faces)
	f.faces = append(f.faces, Face{
		Ends:      ends,
		Pulls:     pulls,
		Chirality: chirality,
	})
	f.integ.RegisterFace(ends[0], ends[1], ends[2])
	return index, nil
}

// RemoveFace retires the face: its perimeter pulls go first (through
// RemoveInterval, preserving compaction), then the face itself, with
// remaining face indices shifting down by one.
func (f *Fabric) RemoveFace(index int) error {
	if index < 0 || index >= len(f.faces) {
		return fmt.Errorf("face %d of %d: %w", index, len(f.faces), ErrBadIndex)
	}
	if f.faces[index].Removed {
		return fmt.Errorf("face %d: %w", index, ErrFaceRemoved)
	}
	f.faces[index].Removed = true
	for k := 0; k < 3; k++ {
		// Re-read each time: removing a pull shifts the ones stored after it.
		p := f.faces[index].Pulls[k]
		f.faces[index].Pulls[k] = -1
		if err := f.RemoveInterval(p); err != nil {
			return err
		}
	}
	f.faces = append(f.faces[:index], f.faces[index+1:]...)
	f.integ.UnregisterFace(index)
	for _, o := range f.observers {
		o.FaceRemoved(index)
	}
	return nil
}

// SetMark tags a face for later collation. Marking a removed face is a
// contract violation.
func (f *Fabric) SetMark(face, tag int) error {
	if face < 0 || face >= len(f.faces) {
		return fmt.Errorf("face %d of %d: %w", face, len(f.faces), ErrBadIndex)
	}
	if f.faces[face].Removed {
		return fmt.Errorf("face %d: %w", face, ErrFaceRemoved)
	}
	f.faces[face].Mark = tag
	return nil
}

// FaceMidpoint averages the face's end joint positions.
func (f *Fabric) FaceMidpoint(face int) (Vec3, error) {
	fc, err := f.Face(face)
	if err != nil {
		return Vec3{}, err
	}
	return Midpoint(
		f.integ.Position(fc.Ends[0]),
		f.integ.Position(fc.Ends[1]),
		f.integ.Position(fc.Ends[2]),
	), nil
}
