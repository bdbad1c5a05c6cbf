package metrics

// GrowthTicks counts the ticks spent in the growing stage.
type GrowthTicks struct {
	name  string
	ticks int
}

func NewGrowthTicks() *GrowthTicks {
	return &GrowthTicks{
		name: "growth_ticks",
	}
}

func (g *GrowthTicks) Name() string {
	return g.name
}

func (g *GrowthTicks) Observe(s Sample) {
	if s.Stage == "growing" {
		g.ticks++
	}
}

func (g *GrowthTicks) Value() float64 {
	return float64(g.ticks)
}

func (g *GrowthTicks) Reset() {
	g.ticks = 0
}

// SettleTicks counts the ticks the structure spent still settling.
type SettleTicks struct {
	name  string
	ticks int
}

func NewSettleTicks() *SettleTicks {
	return &SettleTicks{
		name: "settle_ticks",
	}
}

func (s *SettleTicks) Name() string {
	return s.name
}

func (s *SettleTicks) Observe(sample Sample) {
	if sample.Busy {
		s.ticks++
	}
}

func (s *SettleTicks) Value() float64 {
	return float64(s.ticks)
}

func (s *SettleTicks) Reset() {
	s.ticks = 0
}
