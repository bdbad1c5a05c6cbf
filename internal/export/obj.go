package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/tenseg/internal/engine"
)

// OBJ renders a structure as a wavefront object: one vertex per joint,
// line records for intervals (pushes and pulls in separate groups) and
// face records for live growth faces. Indices are 1-based per the
// format.
func OBJ(joints []engine.JointView, intervals []engine.IntervalView, faces []engine.FaceView) string {
	var sb strings.Builder
	sb.WriteString("# tenseg structure\n")

	for _, j := range joints {
		fmt.Fprintf(&sb, "v %.6f %.6f %.6f\n", j.Location.X, j.Location.Y, j.Location.Z)
	}

	sb.WriteString("g pushes\n")
	for _, iv := range intervals {
		if iv.Push {
			fmt.Fprintf(&sb, "l %d %d\n", iv.Alpha+1, iv.Omega+1)
		}
	}
	sb.WriteString("g pulls\n")
	for _, iv := range intervals {
		if !iv.Push {
			fmt.Fprintf(&sb, "l %d %d\n", iv.Alpha+1, iv.Omega+1)
		}
	}

	if len(faces) > 0 {
		sb.WriteString("g faces\n")
		for _, fc := range faces {
			fmt.Fprintf(&sb, "f %d %d %d\n", fc.Ends[0]+1, fc.Ends[1]+1, fc.Ends[2]+1)
		}
	}
	return sb.String()
}

// WriteOBJ saves the structure to an .obj file.
func WriteOBJ(path string, joints []engine.JointView, intervals []engine.IntervalView, faces []engine.FaceView) error {
	return os.WriteFile(path, []byte(OBJ(joints, intervals, faces)), 0644)
}
