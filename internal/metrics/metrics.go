package metrics

// Sample is one per-tick observation of a running structure.
type Sample struct {
	Tick      int
	Stage     string
	Busy      bool
	Joints    int
	Intervals int
	Faces     int
	MaxStrain float64
	Height    float64
}

// Metric accumulates samples into a single summary value.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observe feeds one sample to every metric.
func Observe(s Sample, metrics []Metric) {
	for _, m := range metrics {
		m.Observe(s)
	}
}

// Defaults is the standard metric set for a growth run.
func Defaults() []Metric {
	return []Metric{
		NewPeakStrain(),
		NewFinalHeight(),
		NewGrowthTicks(),
		NewSettleTicks(),
	}
}
