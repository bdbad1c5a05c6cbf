// Package fabric holds the mutable structure graph of a tensegrity fabric:
// joints, intervals (push struts and pull cables) and triangular faces.
//
// The graph is arena-style: joints, intervals and faces live in dense
// slices and refer to each other by index. Removing an interval or face
// compacts the indices above it in the same call, so indices always form
// a contiguous [0, n) range. External index holders can subscribe with
// [Fabric.Observe] to stay in lockstep.
//
// All mutation goes through the Create*/Remove* methods; geometry (joint
// positions, interval lengths and strains) is owned by the [Integrator]
// the fabric was created with.
package fabric
