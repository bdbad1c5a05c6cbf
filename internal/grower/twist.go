package grower

import (
	"fmt"
	"math"

	"github.com/san-kum/tenseg/internal/fabric"
)

// fanout is the ring size of a twist: three joints per level.
const fanout = 3

// Placement constants, tuned against reference renders. The apex radial
// offset is larger because the seed twist has no structure to lean on.
const (
	radialApex   = 1.0
	radialOnFace = 0.4
	heightFactor = 0.9
	nudgeFactor  = 0.25
)

// twist is the transient result of one growth step. Its face indices are
// only valid until the next graph mutation.
type twist struct {
	alpha  [fanout]int
	omega  [fanout]int
	bottom int
	top    int
}

// ringOffset selects the ring-position offset for every chirality-
// dependent pull family. The diagonal and connecting families must use
// the same offset or the structure self-intersects.
func ringOffset(c fabric.Chirality) int {
	if c == fabric.Left {
		return 1
	}
	return fanout - 1
}

// seedRing places the base ring of the very first twist: points evenly
// spaced on a circle around the origin, in reversed order so the winding
// normal points up.
func seedRing(scale float64) [fanout]fabric.Vec3 {
	var ring [fanout]fabric.Vec3
	radius := scale / 100
	for i := 0; i < fanout; i++ {
		angle := -2 * math.Pi * float64(i) / fanout
		ring[i] = fabric.Vec3{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius}
	}
	return ring
}

// buildTwist synthesizes one twist above the given base ring. The base
// winding determines the growth direction: new joints go up along the
// winding normal.
func buildTwist(fab *fabric.Fabric, base [fanout]fabric.Vec3, chir fabric.Chirality, scale float64, apex bool) (*twist, error) {
	mid := fabric.Midpoint(base[:]...)
	normal := base[1].Sub(base[0]).Cross(base[2].Sub(base[0])).Normalize()
	pushLength := fabric.PushColumn.CanonicalLength() * scale / 100
	radial := radialOnFace
	if apex {
		radial = radialApex
	}
	sign := 1.0
	if chir == fabric.Right {
		sign = -1
	}

	tw := &twist{}
	for i := 0; i < fanout; i++ {
		a, b := base[i], base[(i+1)%fanout]
		edgeMid := fabric.Midpoint(a, b)
		outward := edgeMid.Sub(mid).Normalize().Scale(radial * scale / 100)
		// The tangential nudge breaks the degenerate alignment and seeds
		// the handedness of the diagonals.
		nudge := b.Sub(a).Normalize().Scale(sign * nudgeFactor * scale / 100)
		alphaAt := edgeMid.Add(outward).Add(nudge)
		omegaAt := alphaAt.Add(normal.Scale(pushLength * heightFactor)).Add(nudge)
		tw.alpha[i] = fab.CreateJoint(alphaAt)
		tw.omega[i] = fab.CreateJoint(omegaAt)
	}

	for i := 0; i < fanout; i++ {
		if _, err := fab.CreateInterval(tw.alpha[i], tw.omega[i], fabric.PushColumn, scale); err != nil {
			return nil, fmt.Errorf("twist push %d: %w", i, err)
		}
	}
	for i := 0; i < fanout; i++ {
		if _, err := fab.CreateInterval(tw.alpha[i], tw.alpha[(i+1)%fanout], fabric.PullTriangle, scale); err != nil {
			return nil, fmt.Errorf("twist bottom triangle %d: %w", i, err)
		}
	}
	for i := 0; i < fanout; i++ {
		if _, err := fab.CreateInterval(tw.omega[i], tw.omega[(i+1)%fanout], fabric.PullTriangle, scale); err != nil {
			return nil, fmt.Errorf("twist top triangle %d: %w", i, err)
		}
	}
	off := ringOffset(chir)
	for i := 0; i < fanout; i++ {
		if _, err := fab.CreateInterval(tw.alpha[i], tw.omega[(i+off)%fanout], fabric.PullCross, scale); err != nil {
			return nil, fmt.Errorf("twist diagonal %d: %w", i, err)
		}
	}

	// Bottom face winds opposite to the base so growth from it heads the
	// other way.
	bottom, err := fab.CreateFace([3]int{tw.alpha[0], tw.alpha[2], tw.alpha[1]}, chir)
	if err != nil {
		return nil, fmt.Errorf("twist bottom face: %w", err)
	}
	top, err := fab.CreateFace([3]int{tw.omega[0], tw.omega[1], tw.omega[2]}, chir)
	if err != nil {
		return nil, fmt.Errorf("twist top face: %w", err)
	}
	tw.bottom, tw.top = bottom, top
	return tw, nil
}

// connectTwist wires a freshly built twist onto the base face it grew
// from: per ring position two ring pulls to the base, an up diagonal
// from the omega ring, and a down diagonal to the far end of the base
// joint's push. Afterwards the base face and the twist's bottom face are
// both retired; their perimeter pulls are redundant with the connectors
// just created.
func connectTwist(fab *fabric.Fabric, baseFace int, baseEnds [fanout]int, chir fabric.Chirality, scale float64, tw *twist) error {
	off := ringOffset(chir)
	for i := 0; i < fanout; i++ {
		near := baseEnds[i]
		offset := baseEnds[(i+off)%fanout]
		if _, err := fab.CreateInterval(near, tw.alpha[i], fabric.PullRing, scale); err != nil {
			return fmt.Errorf("ring pull %d: %w", i, err)
		}
		if _, err := fab.CreateInterval(offset, tw.alpha[i], fabric.PullRing, scale); err != nil {
			return fmt.Errorf("ring pull %d (offset): %w", i, err)
		}
		if _, err := fab.CreateInterval(tw.omega[i], offset, fabric.PullCross, scale); err != nil {
			return fmt.Errorf("up diagonal %d: %w", i, err)
		}
		// Every base-ring joint carries a push; a missing one means the
		// graph bookkeeping is corrupt.
		far, ok := fab.PushEnd(near)
		if !ok {
			return fmt.Errorf("down diagonal %d: base joint %d has no push", i, near)
		}
		if _, err := fab.CreateInterval(tw.alpha[i], far, fabric.PullCross, scale); err != nil {
			return fmt.Errorf("down diagonal %d: %w", i, err)
		}
	}

	// Highest index first so the second removal needs no adjustment.
	if err := fab.RemoveFace(tw.bottom); err != nil {
		return fmt.Errorf("retire twist bottom: %w", err)
	}
	if tw.top > tw.bottom {
		tw.top--
	}
	if err := fab.RemoveFace(baseFace); err != nil {
		return fmt.Errorf("retire base face: %w", err)
	}
	if tw.top > baseFace {
		tw.top--
	}
	return nil
}

// rotate shifts face ends by the direction's ring rotation.
func rotate(ends [3]int, by int) [fanout]int {
	var out [fanout]int
	for i := 0; i < fanout; i++ {
		out[i] = ends[(i+by)%fanout]
	}
	return out
}
