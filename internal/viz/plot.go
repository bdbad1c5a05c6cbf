package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tenseg/internal/storage"
)

// Plot charts a saved run's height and strain history.
func Plot(series []storage.Point, width, height int) string {
	if len(series) < 2 {
		return "not enough history to plot"
	}
	heights := make([]float64, len(series))
	strains := make([]float64, len(series))
	for i, p := range series {
		heights[i] = p.Height
		strains[i] = p.MaxStrain
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(heights,
		asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("height")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(strains,
		asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("max strain")))
	b.WriteString("\n\n")
	b.WriteString(stageTimeline(series, width))
	return b.String()
}

// stageTimeline renders one character per sampled tick, marking stage
// changes along the run.
func stageTimeline(series []storage.Point, width int) string {
	step := len(series) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	last := ""
	for i := 0; i < len(series); i += step {
		stage := series[i].Stage
		if stage != last {
			if stage == "" {
				stage = "?"
			}
			b.WriteString(strings.ToUpper(stage[:1]))
			last = stage
		} else {
			b.WriteByte('-')
		}
	}
	return "stages: " + b.String()
}
