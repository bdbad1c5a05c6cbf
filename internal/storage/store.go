package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/tenseg/internal/engine"
	"github.com/san-kum/tenseg/internal/fabric"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Point is one tick of the run's observable history.
type Point struct {
	Tick      int
	Stage     string
	MaxStrain float64
	Height    float64
}

// Result is everything a finished run persists.
type Result struct {
	Code      string
	Stage     string
	Ticks     int
	Joints    []engine.JointView
	Intervals []engine.IntervalView
	Series    []Point
	Metrics   map[string]float64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Code      string             `json:"code"`
	Timestamp time.Time          `json:"timestamp"`
	Stage     string             `json:"stage"`
	Ticks     int                `json:"ticks"`
	Joints    int                `json:"joints"`
	Intervals int                `json:"intervals"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Code:      result.Code,
		Timestamp: time.Now(),
		Stage:     result.Stage,
		Ticks:     result.Ticks,
		Joints:    len(result.Joints),
		Intervals: len(result.Intervals),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeJoints(runDir, result.Joints); err != nil {
		return "", err
	}
	if err := s.writeIntervals(runDir, result.Intervals); err != nil {
		return "", err
	}
	if err := s.writeSeries(runDir, result.Series); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeJoints(runDir string, joints []engine.JointView) error {
	file, err := os.Create(filepath.Join(runDir, "joints.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"index", "x", "y", "z", "push"}); err != nil {
		return err
	}
	for _, j := range joints {
		row := []string{
			strconv.Itoa(j.Index),
			formatFloat(j.Location.X),
			formatFloat(j.Location.Y),
			formatFloat(j.Location.Z),
			strconv.Itoa(j.Push),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeIntervals(runDir string, intervals []engine.IntervalView) error {
	file, err := os.Create(filepath.Join(runDir, "intervals.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"index", "alpha", "omega", "role", "length", "rest_length", "strain"}); err != nil {
		return err
	}
	for _, iv := range intervals {
		row := []string{
			strconv.Itoa(iv.Index),
			strconv.Itoa(iv.Alpha),
			strconv.Itoa(iv.Omega),
			iv.Role.String(),
			formatFloat(iv.Length),
			formatFloat(iv.RestLength),
			formatFloat(iv.Strain),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeSeries(runDir string, series []Point) error {
	file, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"tick", "stage", "max_strain", "height"}); err != nil {
		return err
	}
	for _, p := range series {
		row := []string{
			strconv.Itoa(p.Tick),
			p.Stage,
			formatFloat(p.MaxStrain),
			formatFloat(p.Height),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the per-tick history of a saved run.
func (s *Store) LoadSeries(runID string) ([]Point, error) {
	records, err := s.readCSV(runID, "series.csv")
	if err != nil {
		return nil, err
	}
	series := make([]Point, 0, len(records))
	for _, record := range records {
		if len(record) < 4 {
			continue
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		strain, err1 := strconv.ParseFloat(record[2], 64)
		height, err2 := strconv.ParseFloat(record[3], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		series = append(series, Point{
			Tick:      tick,
			Stage:     record[1],
			MaxStrain: strain,
			Height:    height,
		})
	}
	return series, nil
}

// LoadGeometry reads a saved run's joints and intervals back into view
// records, for export and replay.
func (s *Store) LoadGeometry(runID string) ([]engine.JointView, []engine.IntervalView, error) {
	jointRecords, err := s.readCSV(runID, "joints.csv")
	if err != nil {
		return nil, nil, err
	}
	joints := make([]engine.JointView, 0, len(jointRecords))
	for _, record := range jointRecords {
		if len(record) < 5 {
			continue
		}
		index, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		x, _ := strconv.ParseFloat(record[1], 64)
		y, _ := strconv.ParseFloat(record[2], 64)
		z, _ := strconv.ParseFloat(record[3], 64)
		push, _ := strconv.Atoi(record[4])
		joints = append(joints, engine.JointView{
			Index:    index,
			Location: fabric.Vec3{X: x, Y: y, Z: z},
			Push:     push,
		})
	}

	intervalRecords, err := s.readCSV(runID, "intervals.csv")
	if err != nil {
		return nil, nil, err
	}
	intervals := make([]engine.IntervalView, 0, len(intervalRecords))
	for _, record := range intervalRecords {
		if len(record) < 7 {
			continue
		}
		index, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		role, err := fabric.ParseRole(record[3])
		if err != nil {
			continue
		}
		alpha, _ := strconv.Atoi(record[1])
		omega, _ := strconv.Atoi(record[2])
		length, _ := strconv.ParseFloat(record[4], 64)
		rest, _ := strconv.ParseFloat(record[5], 64)
		strain, _ := strconv.ParseFloat(record[6], 64)
		intervals = append(intervals, engine.IntervalView{
			Index:      index,
			Alpha:      alpha,
			Omega:      omega,
			Role:       role,
			Push:       role.IsPush(),
			Length:     length,
			RestLength: rest,
			Strain:     strain,
		})
	}
	return joints, intervals, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
