// Package physics is the numeric relaxation engine behind a fabric.
//
// It owns all simulated state: joint positions and velocities, interval
// rest lengths, countdowns and strains. The structure graph registers
// joints, intervals and faces here and otherwise treats the engine as an
// opaque stepping primitive: [Engine.Advance] runs a batch of inner
// ticks and reports whether the structure is still settling ("busy").
//
// An interval created far from its rest length does not snap: its rest
// length interpolates linearly toward the target over its countdown,
// which is what makes growth gradual.
package physics
