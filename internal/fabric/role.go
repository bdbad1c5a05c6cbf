package fabric

import (
	"fmt"
	"math"
)

// Role tags an interval with its structural function. Push roles are
// compression struts, everything else is a tension cable.
type Role int

const (
	PushNexus Role = iota
	PushColumn
	PullTriangle
	PullRing
	PullCross
	PullBowMid
	PullBowEnd
	PullFaceConnect
	PullFaceDistance
	roleCount
)

const phi = 1.61803398875

// roleLength holds the canonical rest length per role at scale 100.
// Tuned against reference renders; changing one of the pull families
// without its mirror produces self-intersecting twists.
var roleLength = [roleCount]float64{
	PushNexus:        phi,
	PushColumn:       phi * math.Sqrt2,
	PullTriangle:     1,
	PullRing:         1,
	PullCross:        1,
	PullBowMid:       0.4,
	PullBowEnd:       0.6,
	PullFaceConnect:  0.25,
	PullFaceDistance: 1,
}

var roleName = [roleCount]string{
	PushNexus:        "nexus-push",
	PushColumn:       "column-push",
	PullTriangle:     "triangle",
	PullRing:         "ring",
	PullCross:        "cross",
	PullBowMid:       "bow-mid",
	PullBowEnd:       "bow-end",
	PullFaceConnect:  "face-connect",
	PullFaceDistance: "face-distance",
}

func (r Role) IsPush() bool {
	return r == PushNexus || r == PushColumn
}

// Connector reports whether the role is a temporary connector created by
// mark collation, to be resolved and removed by the optimizer.
func (r Role) Connector() bool {
	return r == PullFaceConnect || r == PullFaceDistance
}

// CanonicalLength is the role's default rest length at scale 100.
func (r Role) CanonicalLength() float64 {
	if r < 0 || r >= roleCount {
		return 1
	}
	return roleLength[r]
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleName[r]
}

// ParseRole inverts String, for loading persisted runs.
func ParseRole(s string) (Role, error) {
	for r := Role(0); r < roleCount; r++ {
		if roleName[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("fabric: unknown role %q", s)
}

// Chirality is the handedness of a twist or face. Anything grown on a
// face takes the opposite chirality of that face.
type Chirality int

const (
	Left Chirality = iota
	Right
)

func (c Chirality) Opposite() Chirality {
	if c == Left {
		return Right
	}
	return Left
}

func (c Chirality) String() string {
	if c == Left {
		return "left"
	}
	return "right"
}
