// Package tenscript parses the small generative grammar that drives
// tensegrity growth. A program is a parenthesized list of items:
//
//	(L, 3, S90, A(2, MA7), b(1))
//
// Items are: a spin token (L, R or LR, root only), a forward-step count,
// an S<percent> scale, a <direction>(subtree) branch, or an M<direction><tag>
// mark. Directions A, B and C name the top face of a twist under ring
// rotations 0, 1 and 2; a, b and c name the bottom face likewise.
//
// All malformed input is rejected here with positioned errors; the
// executor in package grower assumes a validated tree. Parsed trees are
// immutable and safe to share.
package tenscript
