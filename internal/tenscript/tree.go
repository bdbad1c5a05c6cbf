package tenscript

import "fmt"

// Spin selects the chirality of the seed twist.
type Spin int

const (
	SpinLeft Spin = iota
	SpinRight
	// SpinLeftRight seeds left; subsequent twists alternate naturally
	// because growth always takes the opposite chirality of its base.
	SpinLeftRight
)

func (s Spin) String() string {
	switch s {
	case SpinLeft:
		return "L"
	case SpinRight:
		return "R"
	default:
		return "LR"
	}
}

// Dir names one face of a twist. Uppercase directions address the top
// face, lowercase the bottom face; the letter within each case selects a
// ring rotation, so growth in B continues from the same face as A but
// rotated one ring position.
type Dir int

const (
	DirA Dir = iota
	DirB
	DirC
	Dira
	Dirb
	Dirc
	dirCount
)

var dirRune = [dirCount]rune{'A', 'B', 'C', 'a', 'b', 'c'}

// Top reports whether the direction addresses the twist's top face.
func (d Dir) Top() bool { return d < Dira }

// Rotation is the ring rotation the direction applies to its face.
func (d Dir) Rotation() int { return int(d) % 3 }

func (d Dir) String() string {
	if d < 0 || d >= dirCount {
		return fmt.Sprintf("dir(%d)", int(d))
	}
	return string(dirRune[d])
}

func parseDir(r rune) (Dir, bool) {
	for d := Dir(0); d < dirCount; d++ {
		if dirRune[d] == r {
			return d, true
		}
	}
	return 0, false
}

// Node is one growth step of the grammar: how many twists to grow
// forward, at what scale, and what to do afterwards per direction.
// Nodes are never mutated after parsing.
type Node struct {
	// Forward is the number of twists grown before branching.
	Forward int
	// Scale is a percentage applied to everything grown from this node,
	// compounding down the tree. 100 when unspecified.
	Scale float64
	// Branches are subtrees continued from the named faces.
	Branches map[Dir]*Node
	// Marks tag the named faces for later collation.
	Marks map[Dir]int
}

// Tree is a parsed tenscript program.
type Tree struct {
	Spin Spin
	Root *Node
}
