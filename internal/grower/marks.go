package grower

import (
	"sort"

	"github.com/san-kum/tenseg/internal/fabric"
)

// MarkGroup is the set of live faces sharing one mark tag.
type MarkGroup struct {
	Tag   int
	Faces []int
}

// Collate groups live marked faces by tag. The result is fully ordered
// (groups by tag, faces by index), so collating an unchanged face set
// twice yields identical groupings.
func Collate(fab *fabric.Fabric) []MarkGroup {
	byTag := make(map[int][]int)
	for i, fc := range fab.Faces() {
		if fc.Removed || fc.Mark == 0 {
			continue
		}
		byTag[fc.Mark] = append(byTag[fc.Mark], i)
	}
	tags := make([]int, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	groups := make([]MarkGroup, 0, len(tags))
	for _, tag := range tags {
		faces := byTag[tag]
		sort.Ints(faces)
		groups = append(groups, MarkGroup{Tag: tag, Faces: faces})
	}
	return groups
}
