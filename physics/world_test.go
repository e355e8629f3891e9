package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestAddTileLayerMergesSolids(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		tiles  []int
		expect int
	}{
		{"empty", 2, 2, []int{0, 0, 0, 0}, 0},
		{"full_block", 2, 2, []int{1, 1, 1, 1}, 1},
		{"l_shape", 2, 2, []int{1, 1, 1, 0}, 2},
		{"floor_with_hazard", 3, 3, []int{0, 0, 0, 0, 0, 2, 1, 1, 1}, 1},
		{"wrong_size", 2, 2, []int{1, 1, 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			if got := w.AddTileLayer(tc.tiles, tc.w, tc.h, 1); got != tc.expect {
				t.Fatalf("expected %d boxes, got %d", tc.expect, got)
			}
		})
	}
}

func floorWorld() *World {
	w := NewWorld()
	// row 2 is the floor, occupying y in [0,1]; hazard at col 2 row 1
	w.AddTileLayer([]int{
		0, 0, 0,
		0, 0, 2,
		1, 1, 1,
	}, 3, 3, 1)
	return w
}

func TestBoxCast(t *testing.T) {
	w := floorWorld()
	cases := []struct {
		name   string
		bounds cp.BB
		dir    cp.Vector
		dist   float64
		want   bool
	}{
		{"resting_on_floor", cp.BB{L: 0.2, B: 1, R: 1, T: 2}, cp.Vector{Y: -1}, 0.05, true},
		{"hovering_within_probe", cp.BB{L: 0.2, B: 1.03, R: 1, T: 2}, cp.Vector{Y: -1}, 0.05, true},
		{"hovering_beyond_probe", cp.BB{L: 0.2, B: 1.2, R: 1, T: 2}, cp.Vector{Y: -1}, 0.05, false},
		{"nothing_above", cp.BB{L: 0.2, B: 1, R: 1, T: 2}, cp.Vector{Y: 1}, 0.05, false},
		{"sensor_is_not_a_wall", cp.BB{L: 1, B: 1, R: 1.9, T: 2}, cp.Vector{X: 1}, 0.3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.BoxCast(tc.bounds, tc.dir, tc.dist); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBoxCastSideWall(t *testing.T) {
	w := NewWorld()
	w.AddSolid(cp.BB{L: 5, B: 0, R: 6, T: 10})
	bounds := cp.BB{L: 4, B: 1, R: 4.8, T: 2.6}
	if !w.BoxCast(bounds, cp.Vector{X: 1}, 0.3) {
		t.Fatalf("expected wall hit to the right")
	}
	if w.BoxCast(bounds, cp.Vector{X: -1}, 0.3) {
		t.Fatalf("expected no hit to the left")
	}
	touching := cp.BB{L: 4.2, B: 1, R: 5, T: 2.6}
	if w.BoxCast(touching, cp.Vector{Y: -1}, 0.05) {
		t.Fatalf("side contact must not count as ground")
	}
}

func TestBoxCastIgnoresBodies(t *testing.T) {
	w := NewWorld()
	w.NewBody(cp.Vector{X: 0, Y: 0}, 1, 1)
	if w.BoxCast(cp.BB{L: -0.5, B: 0.5, R: 0.5, T: 1.5}, cp.Vector{Y: -1}, 0.1) {
		t.Fatalf("probe must ignore dynamic bodies")
	}
}

func TestOverlaps(t *testing.T) {
	w := floorWorld()
	got := w.Overlaps(cp.BB{L: 1.95, B: 1.2, R: 2.5, T: 1.8})
	if len(got) != 1 {
		t.Fatalf("expected one sensor overlap, got %v", got)
	}
	if h, ok := got[0].(Hazard); !ok || h.Col != 2 || h.Row != 1 {
		t.Fatalf("unexpected sensor data %#v", got[0])
	}
	if got := w.Overlaps(cp.BB{L: 0, B: 1.2, R: 0.5, T: 1.8}); len(got) != 0 {
		t.Fatalf("expected no overlaps, got %v", got)
	}
}

func TestBodyRestsOnFloor(t *testing.T) {
	w := floorWorld()
	b := w.NewBody(cp.Vector{X: 1.5, Y: 1.9}, 0.8, 1.6)
	for i := 0; i < 60; i++ {
		b.SetVelocity(cp.Vector{X: 0, Y: -1.5})
		w.Step(1.0 / 60)
	}
	bounds := b.Bounds()
	if math.Abs(bounds.B-1) > 0.15 {
		t.Fatalf("expected body resting on the floor, bottom at %v", bounds.B)
	}
	if !w.BoxCast(bounds, cp.Vector{Y: -1}, 0.05) {
		t.Fatalf("expected ground probe to hit while resting")
	}
}

func TestTeleport(t *testing.T) {
	w := NewWorld()
	b := w.NewBody(cp.Vector{X: 0, Y: 0}, 1, 2)
	b.SetVelocity(cp.Vector{X: 3, Y: 4})
	b.Teleport(cp.Vector{X: 10, Y: 5})
	if b.Position() != (cp.Vector{X: 10, Y: 5}) || b.Velocity() != (cp.Vector{}) {
		t.Fatalf("teleport should move and stop the body, got pos %v vel %v", b.Position(), b.Velocity())
	}
	if bb := b.Bounds(); bb.L != 9.5 || bb.T != 6 {
		t.Fatalf("unexpected bounds %v", bb)
	}
}

func TestSeparation(t *testing.T) {
	solid := cp.BB{L: 0, B: 0, R: 10, T: 1}
	cases := []struct {
		name string
		body cp.BB
		want cp.Vector
	}{
		{"sunk_into_floor", cp.BB{L: 2, B: 0.7, R: 2.8, T: 2.3}, cp.Vector{Y: 0.3}},
		{"touching_floor", cp.BB{L: 2, B: 1, R: 2.8, T: 2.6}, cp.Vector{}},
		{"apart", cp.BB{L: 2, B: 3, R: 2.8, T: 4.6}, cp.Vector{}},
		{"pressed_into_left_end", cp.BB{L: -0.6, B: 0.2, R: 0.2, T: 0.8}, cp.Vector{X: -0.2}},
		{"under_the_solid", cp.BB{L: 2, B: -1.5, R: 2.8, T: 0.1}, cp.Vector{Y: -0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := separation(tc.body, solid)
			if got.Distance(tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStepKeepsBodiesOutOfSolids(t *testing.T) {
	cases := []struct {
		name  string
		push  cp.Vector
		check func(bb cp.BB) bool
	}{
		{"grounding_velocity", cp.Vector{Y: -1.5}, func(bb cp.BB) bool { return math.Abs(bb.B-1) < 1e-6 }},
		{"walking_into_wall", cp.Vector{X: 14, Y: -1.5}, func(bb cp.BB) bool { return bb.R <= 5+1e-6 && math.Abs(bb.B-1) < 1e-6 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			w.AddSolid(cp.BB{L: -10, B: 0, R: 10, T: 1})
			w.AddSolid(cp.BB{L: 5, B: 0, R: 6, T: 10})
			b := w.NewBody(cp.Vector{X: 3, Y: 1.8}, 0.8, 1.6)
			for i := 0; i < 120; i++ {
				b.SetVelocity(tc.push)
				w.Step(1.0 / 60)
			}
			bounds := b.Bounds()
			if !tc.check(bounds) {
				t.Fatalf("body sank into a solid: %v", bounds)
			}
			if !w.BoxCast(bounds, cp.Vector{Y: -1}, 0.05) {
				t.Fatalf("expected the ground probe to hit")
			}
			if w.BoxCast(bounds, cp.Vector{X: -1}, 0.3) {
				t.Fatalf("the floor must not read as a wall")
			}
		})
	}
}
