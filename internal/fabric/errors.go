package fabric

import "errors"

// Contract violations. These indicate internal invariant breaches rather
// than user error; callers must not continue past them.
var (
	// ErrBadIndex indicates a joint, interval or face index outside [0, n).
	ErrBadIndex = errors.New("fabric: index out of range")

	// ErrPushTaken indicates a second push interval on a joint.
	ErrPushTaken = errors.New("fabric: joint already bears a push interval")

	// ErrNoPerimeter indicates a face creation without its three
	// connecting pull intervals already in place.
	ErrNoPerimeter = errors.New("fabric: perimeter pull missing between face ends")

	// ErrFaceRemoved indicates an operation on a retired face.
	ErrFaceRemoved = errors.New("fabric: face already removed")
)
