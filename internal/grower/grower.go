package grower

import (
	"fmt"
	"sort"

	"github.com/san-kum/tenseg/internal/fabric"
	"github.com/san-kum/tenseg/internal/tenscript"
)

// Face sentinels for tasks: noFace means the task has no base yet (the
// seed), consumed means the face the task pointed at has been removed.
const (
	noFace   = -1
	consumed = -2
)

// Task pairs a remaining tree fragment with the face it continues from.
type Task struct {
	node *tenscript.Node
	// remaining forward steps before this task branches.
	remaining int
	// face is the top face growth continues from.
	face int
	// back is the bottom face reachable for lowercase directions. Only
	// the seed twist produces one; forward growth carries it along, and
	// branch twists have none (their base face is consumed).
	back  int
	chir  fabric.Chirality
	scale float64
}

// Grower drains a tenscript tree into a fabric, one generation per tick.
// It observes the fabric so pending face references survive compaction.
type Grower struct {
	fab     *fabric.Fabric
	tasks   []*Task
	next    []*Task
	current *Task
}

func New(fab *fabric.Fabric, tree *tenscript.Tree) *Grower {
	chir := fabric.Left
	if tree.Spin == tenscript.SpinRight {
		chir = fabric.Right
	}
	g := &Grower{fab: fab}
	g.tasks = []*Task{{
		node:      tree.Root,
		remaining: tree.Root.Forward,
		face:      noFace,
		back:      noFace,
		chir:      chir,
		scale:     tree.Root.Scale,
	}}
	fab.Observe(g)
	return g
}

// Done reports a drained worklist: growth is complete.
func (g *Grower) Done() bool { return len(g.tasks) == 0 }

// Pending is the number of queued growth tasks.
func (g *Grower) Pending() int { return len(g.tasks) }

// Abandon discards all pending growth. Structure already grown remains.
func (g *Grower) Abandon() { g.tasks = nil }

// IntervalRemoved implements fabric.RemovalObserver; tasks hold no
// interval indices.
func (g *Grower) IntervalRemoved(int) {}

// FaceRemoved keeps queued face references dense after compaction.
func (g *Grower) FaceRemoved(index int) {
	adjust := func(t *Task) {
		if t == nil {
			return
		}
		switch {
		case t.face == index:
			t.face = consumed
		case t.face > index:
			t.face--
		}
		switch {
		case t.back == index:
			t.back = consumed
		case t.back > index:
			t.back--
		}
	}
	for _, t := range g.tasks {
		adjust(t)
	}
	for _, t := range g.next {
		adjust(t)
	}
	adjust(g.current)
}

// Tick processes one generation: every queued task emits at most one
// twist (or its branch twists) and requeues its continuation. The caller
// must only tick while the integrator is calm.
func (g *Grower) Tick() error {
	g.next = nil
	for len(g.tasks) > 0 {
		t := g.tasks[0]
		g.tasks = g.tasks[1:]
		g.current = t
		err := g.step(t)
		g.current = nil
		if err != nil {
			return err
		}
	}
	g.tasks, g.next = g.next, nil
	return nil
}

func (g *Grower) step(t *Task) error {
	if t.face == consumed {
		return fmt.Errorf("growth task resumes from a consumed face: %w", fabric.ErrFaceRemoved)
	}

	if t.face == noFace {
		tw, err := buildTwist(g.fab, seedRing(t.scale), t.chir, t.scale, true)
		if err != nil {
			return fmt.Errorf("seed twist: %w", err)
		}
		remaining := t.remaining
		if remaining > 0 {
			remaining--
		}
		g.next = append(g.next, &Task{
			node:      t.node,
			remaining: remaining,
			face:      tw.top,
			back:      tw.bottom,
			scale:     t.scale,
		})
		return nil
	}

	if t.remaining > 0 {
		tw, err := g.growOnto(t.face, 0, t.scale)
		if err != nil {
			return err
		}
		g.next = append(g.next, &Task{
			node:      t.node,
			remaining: t.remaining - 1,
			face:      tw.top,
			back:      t.back,
			scale:     t.scale,
		})
		return nil
	}

	// Branch point: marks first, then one twist per child direction.
	for _, dir := range sortedDirs(t.node.Marks) {
		face, err := g.faceFor(t, dir)
		if err != nil {
			return fmt.Errorf("mark %s: %w", dir, err)
		}
		if err := g.fab.SetMark(face, t.node.Marks[dir]); err != nil {
			return fmt.Errorf("mark %s: %w", dir, err)
		}
	}
	for _, dir := range sortedDirs(t.node.Branches) {
		child := t.node.Branches[dir]
		face, err := g.faceFor(t, dir)
		if err != nil {
			return fmt.Errorf("branch %s: %w", dir, err)
		}
		scale := t.scale * child.Scale / 100
		tw, err := g.growOnto(face, dir.Rotation(), scale)
		if err != nil {
			return fmt.Errorf("branch %s: %w", dir, err)
		}
		remaining := child.Forward
		if remaining > 0 {
			// The branch twist is the child's first forward step.
			remaining--
		}
		g.next = append(g.next, &Task{
			node:      child,
			remaining: remaining,
			face:      tw.top,
			back:      noFace,
			scale:     scale,
		})
	}
	return nil
}

// growOnto builds a twist on an existing face with the given ring
// rotation, connects it, and retires the consumed faces. The returned
// twist's top index accounts for the removals.
func (g *Grower) growOnto(faceIndex, rotation int, scale float64) (*twist, error) {
	face, err := g.fab.Face(faceIndex)
	if err != nil {
		return nil, err
	}
	if face.Removed {
		return nil, fmt.Errorf("face %d: %w", faceIndex, fabric.ErrFaceRemoved)
	}
	ends := rotate(face.Ends, rotation)
	var base [fanout]fabric.Vec3
	for i, e := range ends {
		base[i] = g.fab.Location(e)
	}
	chir := face.Chirality.Opposite()
	tw, err := buildTwist(g.fab, base, chir, scale, false)
	if err != nil {
		return nil, err
	}
	if err := connectTwist(g.fab, faceIndex, ends, chir, scale, tw); err != nil {
		return nil, err
	}
	return tw, nil
}

func (g *Grower) faceFor(t *Task, dir tenscript.Dir) (int, error) {
	face := t.back
	if dir.Top() {
		face = t.face
	}
	if face == consumed {
		return 0, fabric.ErrFaceRemoved
	}
	if face == noFace {
		return 0, fmt.Errorf("direction %s: twist has no face there", dir)
	}
	return face, nil
}

// sortedDirs orders map keys so growth is deterministic.
func sortedDirs[V any](m map[tenscript.Dir]V) []tenscript.Dir {
	dirs := make([]tenscript.Dir, 0, len(m))
	for d := range m {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}
