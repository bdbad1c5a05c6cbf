package storage

import (
	"testing"

	"github.com/san-kum/tenseg/internal/engine"
	"github.com/san-kum/tenseg/internal/fabric"
)

func testResult() *Result {
	return &Result{
		Code:  "(L, 1)",
		Stage: "pretenst",
		Ticks: 120,
		Joints: []engine.JointView{
			{Index: 0, Location: fabric.Vec3{X: 1, Y: 0, Z: 0}, Push: 0},
			{Index: 1, Location: fabric.Vec3{X: 0, Y: 2, Z: 0}, Push: 0},
		},
		Intervals: []engine.IntervalView{
			{Index: 0, Alpha: 0, Omega: 1, Role: fabric.PushColumn, Push: true, Length: 2.2, RestLength: 2.3, Strain: -0.04},
		},
		Series: []Point{
			{Tick: 1, Stage: "growing", MaxStrain: 0.5, Height: 1},
			{Tick: 2, Stage: "shaping", MaxStrain: 0.1, Height: 2},
		},
		Metrics: map[string]float64{"peak_strain": 0.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Code != "(L, 1)" {
		t.Errorf("expected code (L, 1), got %s", meta.Code)
	}
	if meta.Stage != "pretenst" {
		t.Errorf("expected stage pretenst, got %s", meta.Stage)
	}
	if meta.Joints != 2 || meta.Intervals != 1 {
		t.Errorf("expected counts 2/1, got %d/%d", meta.Joints, meta.Intervals)
	}
	if meta.Metrics["peak_strain"] != 0.5 {
		t.Errorf("expected peak_strain 0.5, got %f", meta.Metrics["peak_strain"])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save(testResult()); err != nil {
		t.Fatal(err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatal(err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Stage != "growing" || series[0].MaxStrain != 0.5 {
		t.Errorf("unexpected first point %+v", series[0])
	}
	if series[1].Height != 2 {
		t.Errorf("expected height 2, got %f", series[1].Height)
	}
}

func TestLoadGeometry(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatal(err)
	}

	joints, intervals, err := st.LoadGeometry(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(joints) != 2 || len(intervals) != 1 {
		t.Fatalf("expected 2 joints and 1 interval, got %d/%d", len(joints), len(intervals))
	}
	if joints[1].Location.Y != 2 {
		t.Errorf("expected joint 1 at height 2, got %f", joints[1].Location.Y)
	}
	iv := intervals[0]
	if iv.Role != fabric.PushColumn || !iv.Push {
		t.Errorf("role did not survive the round trip: %+v", iv)
	}
	if iv.Strain != -0.04 {
		t.Errorf("expected strain -0.04, got %f", iv.Strain)
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("run_0"); err == nil {
		t.Error("expected error for missing run")
	}
}
