package metrics

type FinalHeight struct {
	name   string
	height float64
}

func NewFinalHeight() *FinalHeight {
	return &FinalHeight{
		name: "final_height",
	}
}

func (f *FinalHeight) Name() string {
	return f.name
}

func (f *FinalHeight) Observe(s Sample) {
	f.height = s.Height
}

func (f *FinalHeight) Value() float64 {
	return f.height
}

func (f *FinalHeight) Reset() {
	f.height = 0
}
