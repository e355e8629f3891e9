package ecs

import (
	"math"
	"testing"

	"github.com/milk9111/orbhop/ecs/component"
)

type countingFrame struct{ n int }

func (c *countingFrame) Update(*World) { c.n++ }

type recordingFixed struct{ dts []float64 }

func (r *recordingFixed) FixedUpdate(_ *World, dt float64) { r.dts = append(r.dts, dt) }

func TestSchedulerFixedSteps(t *testing.T) {
	cases := []struct {
		name      string
		frames    []float64
		wantSteps int
	}{
		{"exact_frames", []float64{0.02, 0.02, 0.02}, 3},
		{"accumulates_short_frames", []float64{0.01, 0.01, 0.01, 0.01}, 2},
		{"long_frame_runs_several", []float64{0.065}, 3},
		{"stall_is_capped", []float64{1}, DefaultMaxSteps},
		{"negative_frame_ignored", []float64{-1, 0.02}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			s := NewScheduler(0.02)
			frame := &countingFrame{}
			fixed := &recordingFixed{}
			s.AddFrame(frame)
			s.AddFixed(fixed)

			total := 0
			for _, dt := range tc.frames {
				total += s.Update(w, dt+1e-12)
			}
			if total != tc.wantSteps || len(fixed.dts) != tc.wantSteps {
				t.Fatalf("expected %d steps, got %d (%d recorded)", tc.wantSteps, total, len(fixed.dts))
			}
			if frame.n != len(tc.frames) {
				t.Fatalf("expected %d frame updates, got %d", len(tc.frames), frame.n)
			}
			for _, dt := range fixed.dts {
				if dt != 0.02 {
					t.Fatalf("fixed systems must see the fixed delta, got %v", dt)
				}
			}
			if s.Steps() != uint64(tc.wantSteps) {
				t.Fatalf("step counter mismatch: %d", s.Steps())
			}
		})
	}
}

func TestSchedulerAlpha(t *testing.T) {
	s := NewScheduler(0.02)
	s.Update(NewWorld(), 0.03)
	if math.Abs(s.Alpha()-0.5) > 1e-9 {
		t.Fatalf("expected alpha 0.5, got %v", s.Alpha())
	}
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Push("a")
	q.Push(nil)
	q.Push("b")
	if q.Len() != 2 {
		t.Fatalf("nil events must be dropped, got %d", q.Len())
	}
	q.SetLimit(1)
	got := q.Drain()
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only the newest event, got %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("drain must clear the queue")
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)

	reused := CreateEntity(w)
	if reused.id() != e.id() || reused == e {
		t.Fatalf("expected id reuse with a new generation, got %v and %v", e, reused)
	}
	if Has(w, reused, h.Kind()) {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, e, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
	if _, _, ok := First(w, h.Kind()); ok {
		t.Fatalf("expected no entity with the component")
	}
}

func TestForEach2(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("two"))

	var got []Entity
	ForEach2(w, ka, kb, func(e Entity, n *int, s *string) {
		*n *= 10
		got = append(got, e)
	})
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected only e2, got %v", got)
	}
	if v, _ := Get(w, e2, ka); *v != 20 {
		t.Fatalf("expected in-place update, got %d", *v)
	}
}
