package physics

// World bundles the tunable physical parameters of a relaxation run.
// Gravity and the calm threshold apply per inner tick, so their small
// magnitudes are expected.
type World struct {
	// Gravity is the per-tick downward velocity increment for unpinned
	// joints above the ground.
	Gravity float64 `yaml:"gravity"`
	// Drag damps joint velocity each tick. It must be large enough,
	// relative to Stiffness, that a slack interval cannot coast far past
	// its rest length before the motion dies.
	Drag float64 `yaml:"drag"`
	// Stiffness scales elastic force from strain for new intervals.
	Stiffness float64 `yaml:"stiffness"`
	// PretenstFactor multiplies push rest lengths when pretensing.
	PretenstFactor float64 `yaml:"pretenst_factor"`
	// ShapingFactor multiplies push rest lengths when returning from
	// slack to shaping.
	ShapingFactor float64 `yaml:"shaping_factor"`
	// IntervalCountdown is the default tick count for commanded
	// rest-length changes.
	IntervalCountdown int `yaml:"interval_countdown"`
	// IterationsPerAdvance is the inner tick batch size of Advance.
	IterationsPerAdvance int `yaml:"iterations_per_advance"`
	// CalmThreshold is the peak joint speed below which the structure
	// counts as settled.
	CalmThreshold float64 `yaml:"calm_threshold"`
	// GroundResponse scales velocity when a joint hits the ground.
	GroundResponse float64 `yaml:"ground_response"`
}

func DefaultWorld() World {
	return World{
		Gravity:              2e-6,
		Drag:                 0.3,
		Stiffness:            0.01,
		PretenstFactor:       1.03,
		ShapingFactor:        1.05,
		IntervalCountdown:    300,
		IterationsPerAdvance: 60,
		CalmThreshold:        1e-5,
		GroundResponse:       0.1,
	}
}
