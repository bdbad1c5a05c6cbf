package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/tenseg/internal/engine"
	"github.com/san-kum/tenseg/internal/fabric"
	"github.com/san-kum/tenseg/internal/storage"
)

func testGeometry() ([]engine.JointView, []engine.IntervalView, []engine.FaceView) {
	joints := []engine.JointView{
		{Index: 0, Location: fabric.Vec3{X: 1, Y: 0, Z: 0}},
		{Index: 1, Location: fabric.Vec3{X: 0, Y: 2, Z: 0}},
		{Index: 2, Location: fabric.Vec3{X: 0, Y: 0, Z: 1}},
	}
	intervals := []engine.IntervalView{
		{Index: 0, Alpha: 0, Omega: 1, Role: fabric.PushColumn, Push: true},
		{Index: 1, Alpha: 1, Omega: 2, Role: fabric.PullTriangle},
	}
	faces := []engine.FaceView{
		{Index: 0, Ends: [3]int{0, 1, 2}},
	}
	return joints, intervals, faces
}

func TestOBJRecords(t *testing.T) {
	joints, intervals, faces := testGeometry()
	obj := OBJ(joints, intervals, faces)

	lines := strings.Split(strings.TrimSpace(obj), "\n")
	vertices, pushLines, pullLines, faceLines := 0, 0, 0, 0
	group := ""
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "g "):
			group = strings.TrimPrefix(line, "g ")
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "l ") && group == "pushes":
			pushLines++
		case strings.HasPrefix(line, "l ") && group == "pulls":
			pullLines++
		case strings.HasPrefix(line, "f "):
			faceLines++
		}
	}
	if vertices != 3 {
		t.Errorf("expected 3 vertices, got %d", vertices)
	}
	if pushLines != 1 || pullLines != 1 {
		t.Errorf("expected 1 push and 1 pull line, got %d/%d", pushLines, pullLines)
	}
	if faceLines != 1 {
		t.Errorf("expected 1 face record, got %d", faceLines)
	}
}

func TestOBJOneBasedIndices(t *testing.T) {
	joints, intervals, faces := testGeometry()
	obj := OBJ(joints, intervals, faces)

	if !strings.Contains(obj, "l 1 2") {
		t.Error("expected push line l 1 2")
	}
	if !strings.Contains(obj, "f 1 2 3") {
		t.Error("expected face record f 1 2 3")
	}
	if strings.Contains(obj, "l 0 ") {
		t.Error("found a zero-based line record")
	}
}

func TestWriteOBJ(t *testing.T) {
	joints, intervals, faces := testGeometry()
	path := filepath.Join(t.TempDir(), "run.obj")

	if err := WriteOBJ(path, joints, intervals, faces); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != OBJ(joints, intervals, faces) {
		t.Error("file content differs from rendered object")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	joints, intervals, _ := testGeometry()
	result := &storage.Result{
		Code:      "(L, 1)",
		Stage:     "pretenst",
		Ticks:     42,
		Joints:    joints,
		Intervals: intervals,
		Metrics:   map[string]float64{"final_height": 2},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, result); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["code"] != "(L, 1)" {
		t.Errorf("expected code (L, 1), got %v", decoded["code"])
	}
	if len(decoded["joints"].([]any)) != 3 {
		t.Error("expected 3 joints in json")
	}
	first := decoded["intervals"].([]any)[0].(map[string]any)
	if first["role"] != "column-push" {
		t.Errorf("expected role column-push, got %v", first["role"])
	}
}
