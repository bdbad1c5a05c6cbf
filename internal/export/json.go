package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/tenseg/internal/storage"
)

type jointData struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Push int     `json:"push"`
}

type intervalData struct {
	Alpha      int     `json:"alpha"`
	Omega      int     `json:"omega"`
	Role       string  `json:"role"`
	Length     float64 `json:"length"`
	RestLength float64 `json:"rest_length"`
	Strain     float64 `json:"strain"`
}

type runData struct {
	Code      string             `json:"code"`
	Stage     string             `json:"stage"`
	Ticks     int                `json:"ticks"`
	Joints    []jointData        `json:"joints"`
	Intervals []intervalData     `json:"intervals"`
	Metrics   map[string]float64 `json:"metrics"`
}

// JSON writes a finished run to the given writer.
func JSON(w io.Writer, result *storage.Result) error {
	data := runData{
		Code:      result.Code,
		Stage:     result.Stage,
		Ticks:     result.Ticks,
		Joints:    make([]jointData, len(result.Joints)),
		Intervals: make([]intervalData, len(result.Intervals)),
		Metrics:   result.Metrics,
	}
	for i, j := range result.Joints {
		data.Joints[i] = jointData{X: j.Location.X, Y: j.Location.Y, Z: j.Location.Z, Push: j.Push}
	}
	for i, iv := range result.Intervals {
		data.Intervals[i] = intervalData{
			Alpha:      iv.Alpha,
			Omega:      iv.Omega,
			Role:       iv.Role.String(),
			Length:     iv.Length,
			RestLength: iv.RestLength,
			Strain:     iv.Strain,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteJSON saves a finished run to a .json file.
func WriteJSON(path string, result *storage.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return JSON(file, result)
}
