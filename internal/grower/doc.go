// Package grower executes a parsed tenscript tree against a fabric,
// one generation of growth per tick.
//
// Growth is staged: the interpreter keeps a worklist of pending tasks
// (a tree fragment paired with the face it continues from) and each
// [Grower.Tick] consumes the whole worklist once, producing the next
// one. The stage controller only calls Tick when the integrator is calm,
// so every twist is placed against joints that have already settled.
//
// The twist builder synthesizes the atomic unit of growth: two rings of
// three joints, their push columns, triangle pulls closing each ring and
// chirality-offset diagonals, bounded by a bottom and a top face.
// Connecting a twist onto a face consumes that face and the twist's own
// bottom face.
package grower
