package metrics

type PeakStrain struct {
	name string
	peak float64
}

func NewPeakStrain() *PeakStrain {
	return &PeakStrain{
		name: "peak_strain",
	}
}

func (p *PeakStrain) Name() string {
	return p.name
}

func (p *PeakStrain) Observe(s Sample) {
	if s.MaxStrain > p.peak {
		p.peak = s.MaxStrain
	}
}

func (p *PeakStrain) Value() float64 {
	return p.peak
}

func (p *PeakStrain) Reset() {
	p.peak = 0
}
