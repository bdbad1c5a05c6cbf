package fabric_test

import (
	"errors"
	"testing"

	"github.com/san-kum/tenseg/internal/fabric"
)

// recorder is a static integrator: registered joints keep their initial
// positions and every registration call is remembered.
type recorder struct {
	positions  []fabric.Vec3
	restLens   []float64
	countdowns []int
	intervals  int
	faces      int
}

func (r *recorder) Advance() bool               { return false }
func (r *recorder) Position(j int) fabric.Vec3  { return r.positions[j] }
func (r *recorder) Length(i int) float64        { return r.restLens[i] }
func (r *recorder) Strain(i int) float64        { return 0 }
func (r *recorder) RegisterJoint(at fabric.Vec3) int {
	r.positions = append(r.positions, at)
	return len(r.positions) - 1
}
func (r *recorder) RegisterInterval(alpha, omega int, push bool, ideal, rest float64, countdown int) int {
	r.restLens = append(r.restLens, rest)
	r.countdowns = append(r.countdowns, countdown)
	r.intervals++
	return r.intervals - 1
}
func (r *recorder) UnregisterInterval(index int) {
	r.restLens = append(r.restLens[:index], r.restLens[index+1:]...)
	r.countdowns = append(r.countdowns[:index], r.countdowns[index+1:]...)
	r.intervals--
}
func (r *recorder) RegisterFace(j0, j1, j2 int) int {
	r.faces++
	return r.faces - 1
}
func (r *recorder) UnregisterFace(index int) { r.faces-- }

func newFabric() (*fabric.Fabric, *recorder) {
	rec := &recorder{}
	return fabric.New(rec), rec
}

func TestCreateIntervalCountdown(t *testing.T) {
	fab, rec := newFabric()
	a := fab.CreateJoint(fabric.Vec3{})
	b := fab.CreateJoint(fabric.Vec3{X: 5})

	if _, err := fab.CreateInterval(a, b, fabric.PullTriangle, 100); err != nil {
		t.Fatalf("create interval: %v", err)
	}

	// Gap is |1 - 5| = 4, so the countdown must scale with it.
	want := int(4 * fab.CountdownScale)
	if rec.countdowns[0] != want {
		t.Errorf("countdown = %d, want %d", rec.countdowns[0], want)
	}
	if rec.restLens[0] != 5 {
		t.Errorf("initial rest length = %f, want current distance 5", rec.restLens[0])
	}
}

func TestPushExclusivity(t *testing.T) {
	fab, _ := newFabric()
	a := fab.CreateJoint(fabric.Vec3{})
	b := fab.CreateJoint(fabric.Vec3{X: 1})
	c := fab.CreateJoint(fabric.Vec3{X: 2})

	if _, err := fab.CreateInterval(a, b, fabric.PushColumn, 100); err != nil {
		t.Fatalf("first push: %v", err)
	}
	_, err := fab.CreateInterval(b, c, fabric.PushColumn, 100)
	if !errors.Is(err, fabric.ErrPushTaken) {
		t.Fatalf("second push on joint %d: got %v, want ErrPushTaken", b, err)
	}

	// Pulls are unrestricted.
	if _, err := fab.CreateInterval(b, c, fabric.PullRing, 100); err != nil {
		t.Errorf("pull on pushed joint: %v", err)
	}
}

func TestPushEnd(t *testing.T) {
	fab, _ := newFabric()
	a := fab.CreateJoint(fabric.Vec3{})
	b := fab.CreateJoint(fabric.Vec3{X: 1})
	c := fab.CreateJoint(fabric.Vec3{X: 2})

	if _, err := fab.CreateInterval(a, b, fabric.PushColumn, 100); err != nil {
		t.Fatal(err)
	}
	if far, ok := fab.PushEnd(a); !ok || far != b {
		t.Errorf("PushEnd(%d) = %d,%v, want %d,true", a, far, ok, b)
	}
	if _, ok := fab.PushEnd(c); ok {
		t.Errorf("PushEnd(%d) reported a push on a pushless joint", c)
	}
}

type removals struct {
	intervals []int
	faces     []int
}

func (r *removals) IntervalRemoved(index int) { r.intervals = append(r.intervals, index) }
func (r *removals) FaceRemoved(index int)     { r.faces = append(r.faces, index) }

func TestRemoveIntervalCompaction(t *testing.T) {
	fab, rec := newFabric()
	joints := make([]int, 11)
	for i := range joints {
		joints[i] = fab.CreateJoint(fabric.Vec3{X: float64(i)})
	}
	// Ten pulls 0-1, 1-2, ... 9-10.
	for i := 0; i < 10; i++ {
		if _, err := fab.CreateInterval(joints[i], joints[i+1], fabric.PullRing, 100); err != nil {
			t.Fatal(err)
		}
	}
	obs := &removals{}
	fab.Observe(obs)

	if err := fab.RemoveInterval(5); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if got := fab.IntervalCount(); got != 9 {
		t.Fatalf("interval count = %d, want 9", got)
	}
	// Interval previously at 6 (joints 6-7) is now at 5.
	iv, err := fab.Interval(5)
	if err != nil {
		t.Fatal(err)
	}
	if iv.Alpha != joints[6] || iv.Omega != joints[7] {
		t.Errorf("interval 5 = %d-%d, want %d-%d", iv.Alpha, iv.Omega, joints[6], joints[7])
	}
	if len(obs.intervals) != 1 || obs.intervals[0] != 5 {
		t.Errorf("observer saw %v, want [5]", obs.intervals)
	}
	if rec.intervals != 9 {
		t.Errorf("integrator holds %d intervals, want 9", rec.intervals)
	}
}

func TestRemoveIntervalShiftsPushReferences(t *testing.T) {
	fab, _ := newFabric()
	a := fab.CreateJoint(fabric.Vec3{})
	b := fab.CreateJoint(fabric.Vec3{X: 1})
	c := fab.CreateJoint(fabric.Vec3{X: 2})
	d := fab.CreateJoint(fabric.Vec3{X: 3})

	if _, err := fab.CreateInterval(a, b, fabric.PullRing, 100); err != nil {
		t.Fatal(err)
	}
	pushIdx, err := fab.CreateInterval(c, d, fabric.PushColumn, 100)
	if err != nil {
		t.Fatal(err)
	}
	if pushIdx != 1 {
		t.Fatalf("push index = %d, want 1", pushIdx)
	}

	if err := fab.RemoveInterval(0); err != nil {
		t.Fatal(err)
	}
	if far, ok := fab.PushEnd(c); !ok || far != d {
		t.Errorf("push reference not compacted: PushEnd(%d) = %d,%v", c, far, ok)
	}
}

func triangle(t *testing.T, fab *fabric.Fabric, offset float64) [3]int {
	t.Helper()
	ends := [3]int{
		fab.CreateJoint(fabric.Vec3{X: offset}),
		fab.CreateJoint(fabric.Vec3{X: offset + 1}),
		fab.CreateJoint(fabric.Vec3{X: offset, Z: 1}),
	}
	for k := 0; k < 3; k++ {
		if _, err := fab.CreateInterval(ends[k], ends[(k+1)%3], fabric.PullTriangle, 100); err != nil {
			t.Fatal(err)
		}
	}
	return ends
}

func TestCreateFaceRequiresPerimeter(t *testing.T) {
	fab, _ := newFabric()
	ends := [3]int{
		fab.CreateJoint(fabric.Vec3{}),
		fab.CreateJoint(fabric.Vec3{X: 1}),
		fab.CreateJoint(fabric.Vec3{Z: 1}),
	}
	_, err := fab.CreateFace(ends, fabric.Left)
	if !errors.Is(err, fabric.ErrNoPerimeter) {
		t.Fatalf("got %v, want ErrNoPerimeter", err)
	}
	if fab.FaceCount() != 0 {
		t.Errorf("face created despite missing perimeter")
	}
}

func TestRemoveFaceRetiresPerimeter(t *testing.T) {
	fab, rec := newFabric()
	ends := triangle(t, fab, 0)
	face, err := fab.CreateFace(ends, fabric.Left)
	if err != nil {
		t.Fatal(err)
	}

	if err := fab.RemoveFace(face); err != nil {
		t.Fatalf("remove face: %v", err)
	}
	if fab.FaceCount() != 0 {
		t.Errorf("face count = %d, want 0", fab.FaceCount())
	}
	if fab.IntervalCount() != 0 {
		t.Errorf("perimeter pulls survived removal: %d intervals", fab.IntervalCount())
	}
	if rec.faces != 0 || rec.intervals != 0 {
		t.Errorf("integrator out of lockstep: %d faces, %d intervals", rec.faces, rec.intervals)
	}
}

func TestRemoveFaceCompactsFaceIndices(t *testing.T) {
	fab, _ := newFabric()
	endsA := triangle(t, fab, 0)
	endsB := triangle(t, fab, 10)
	faceA, err := fab.CreateFace(endsA, fabric.Left)
	if err != nil {
		t.Fatal(err)
	}
	faceB, err := fab.CreateFace(endsB, fabric.Right)
	if err != nil {
		t.Fatal(err)
	}
	obs := &removals{}
	fab.Observe(obs)

	if err := fab.RemoveFace(faceA); err != nil {
		t.Fatal(err)
	}
	got, err := fab.Face(faceB - 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Ends != endsB {
		t.Errorf("face at compacted index has ends %v, want %v", got.Ends, endsB)
	}
	// B's stored pull indices must point at live intervals between its ends.
	for k := 0; k < 3; k++ {
		iv, err := fab.Interval(got.Pulls[k])
		if err != nil {
			t.Fatalf("pull %d: %v", k, err)
		}
		if !iv.Touches(got.Ends[k]) || !iv.Touches(got.Ends[(k+1)%3]) {
			t.Errorf("pull %d connects %d-%d, want %d-%d", k, iv.Alpha, iv.Omega, got.Ends[k], got.Ends[(k+1)%3])
		}
	}
	if len(obs.faces) != 1 || obs.faces[0] != faceA {
		t.Errorf("observer saw %v, want [%d]", obs.faces, faceA)
	}
}

func TestSetMarkOnRemovedFace(t *testing.T) {
	fab, _ := newFabric()
	ends := triangle(t, fab, 0)
	face, err := fab.CreateFace(ends, fabric.Left)
	if err != nil {
		t.Fatal(err)
	}
	if err := fab.SetMark(face, 7); err != nil {
		t.Fatalf("mark live face: %v", err)
	}
	if err := fab.RemoveFace(face); err != nil {
		t.Fatal(err)
	}
	if err := fab.SetMark(face, 7); err == nil {
		t.Fatal("marking an evicted face index succeeded")
	}
}

func TestIndexDensity(t *testing.T) {
	fab, _ := newFabric()
	joints := make([]int, 8)
	for i := range joints {
		joints[i] = fab.CreateJoint(fabric.Vec3{X: float64(i)})
	}
	for i := 0; i < 7; i++ {
		if _, err := fab.CreateInterval(joints[i], joints[i+1], fabric.PullRing, 100); err != nil {
			t.Fatal(err)
		}
	}
	for _, remove := range []int{3, 0, 4, 1} {
		if err := fab.RemoveInterval(remove); err != nil {
			t.Fatalf("remove %d: %v", remove, err)
		}
		n := fab.IntervalCount()
		for i := 0; i < n; i++ {
			if _, err := fab.Interval(i); err != nil {
				t.Fatalf("gap at index %d of %d: %v", i, n, err)
			}
		}
		if _, err := fab.Interval(n); err == nil {
			t.Fatalf("index %d live beyond count", n)
		}
	}
}
