package tenscript_test

import (
	"errors"
	"testing"

	"github.com/san-kum/tenseg/internal/tenscript"
)

func TestParseForwardOnly(t *testing.T) {
	tree, err := tenscript.Parse("(3)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tree.Root.Forward != 3 {
		t.Errorf("forward = %d, want 3", tree.Root.Forward)
	}
	if tree.Spin != tenscript.SpinLeft {
		t.Errorf("default spin = %v, want L", tree.Spin)
	}
	if tree.Root.Scale != 100 {
		t.Errorf("default scale = %f, want 100", tree.Root.Scale)
	}
}

func TestParseSpin(t *testing.T) {
	tests := []struct {
		code string
		spin tenscript.Spin
	}{
		{"(L, 2)", tenscript.SpinLeft},
		{"(R, 2)", tenscript.SpinRight},
		{"(LR, 2)", tenscript.SpinLeftRight},
	}
	for _, tt := range tests {
		tree, err := tenscript.Parse(tt.code)
		if err != nil {
			t.Fatalf("%s: %v", tt.code, err)
		}
		if tree.Spin != tt.spin {
			t.Errorf("%s: spin = %v, want %v", tt.code, tree.Spin, tt.spin)
		}
	}
}

func TestParseBranchesAndMarks(t *testing.T) {
	tree, err := tenscript.Parse("(L, 2, S90, A(1, MA7), b(3))")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root := tree.Root
	if root.Forward != 2 || root.Scale != 90 {
		t.Errorf("root = forward %d scale %f", root.Forward, root.Scale)
	}
	a, ok := root.Branches[tenscript.DirA]
	if !ok {
		t.Fatal("branch A missing")
	}
	if a.Forward != 1 {
		t.Errorf("A forward = %d, want 1", a.Forward)
	}
	if a.Marks[tenscript.DirA] != 7 {
		t.Errorf("mark on A = %d, want 7", a.Marks[tenscript.DirA])
	}
	b, ok := root.Branches[tenscript.Dirb]
	if !ok {
		t.Fatal("branch b missing")
	}
	if b.Forward != 3 {
		t.Errorf("b forward = %d, want 3", b.Forward)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty input", ""},
		{"unbalanced open", "(2"},
		{"unbalanced close", "(2))"},
		{"unknown rune", "(2, X(1))"},
		{"omni direction", "(2, D(1))"},
		{"omni mark", "(2, Md3)"},
		{"missing comma", "(2 A(1))"},
		{"duplicate forward", "(2, 3)"},
		{"duplicate branch", "(1, A(1), A(2))"},
		{"duplicate mark", "(1, MA1, MA2)"},
		{"zero mark tag", "(1, MA0)"},
		{"zero scale", "(1, S0)"},
		{"spin in subtree", "(1, A(L, 1))"},
		{"duplicate spin", "(L, R, 1)"},
		{"bare direction", "(1, A)"},
		{"mark without tag", "(1, MA)"},
		{"scale without digits", "(1, S)"},
		{"trailing input", "(1) x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tenscript.Parse(tt.code)
			if err == nil {
				t.Fatalf("%q parsed without error", tt.code)
			}
			if !errors.Is(err, tenscript.ErrSyntax) {
				t.Errorf("%q: error %v does not wrap ErrSyntax", tt.code, err)
			}
		})
	}
}

func TestDirSemantics(t *testing.T) {
	if !tenscript.DirA.Top() || tenscript.Dira.Top() {
		t.Error("case does not select face level")
	}
	rotations := map[tenscript.Dir]int{
		tenscript.DirA: 0, tenscript.DirB: 1, tenscript.DirC: 2,
		tenscript.Dira: 0, tenscript.Dirb: 1, tenscript.Dirc: 2,
	}
	for d, want := range rotations {
		if d.Rotation() != want {
			t.Errorf("%s rotation = %d, want %d", d, d.Rotation(), want)
		}
	}
}

func TestParseSharesNothingMutable(t *testing.T) {
	tree, err := tenscript.Parse("(1, A(2))")
	if err != nil {
		t.Fatal(err)
	}
	again, err := tenscript.Parse("(1, A(2))")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Root == again.Root {
		t.Error("separate parses share nodes")
	}
}
