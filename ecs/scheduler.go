package ecs

// System runs once per rendered frame.
type System interface {
	Update(w *World)
}

// FixedSystem runs once per fixed simulation step.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// DefaultMaxSteps bounds the fixed steps run for one frame so a long stall
// does not snowball.
const DefaultMaxSteps = 8

// Scheduler drives the two-rate loop: frame systems once per Update, then
// as many fixed steps as the accumulated frame time allows.
type Scheduler struct {
	frame    []System
	fixed    []FixedSystem
	step     float64
	acc      float64
	maxSteps int
	steps    uint64
}

func NewScheduler(step float64) *Scheduler {
	if step <= 0 {
		step = 1.0 / 60.0
	}
	return &Scheduler{step: step, maxSteps: DefaultMaxSteps}
}

func (s *Scheduler) AddFrame(system System) {
	if s == nil || system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if s == nil || system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) SetMaxSteps(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.maxSteps = n
}

// Update runs the frame systems, then the fixed steps covered by frameDt.
// It returns the number of fixed steps run. Time beyond maxSteps is dropped.
func (s *Scheduler) Update(w *World, frameDt float64) int {
	if s == nil {
		return 0
	}
	for _, system := range s.frame {
		system.Update(w)
	}
	if frameDt > 0 {
		s.acc += frameDt
	}
	n := 0
	for s.acc >= s.step && n < s.maxSteps {
		s.Step(w)
		s.acc -= s.step
		n++
	}
	if n == s.maxSteps && s.acc >= s.step {
		s.acc = 0
	}
	return n
}

// Step runs exactly one fixed step.
func (s *Scheduler) Step(w *World) {
	if s == nil {
		return
	}
	for _, system := range s.fixed {
		system.FixedUpdate(w, s.step)
	}
	s.steps++
}

// FixedDelta is the fixed step length in seconds.
func (s *Scheduler) FixedDelta() float64 {
	if s == nil {
		return 0
	}
	return s.step
}

// Steps is the number of fixed steps run so far.
func (s *Scheduler) Steps() uint64 {
	if s == nil {
		return 0
	}
	return s.steps
}

// Alpha is the fraction of a step left in the accumulator, for render
// interpolation.
func (s *Scheduler) Alpha() float64 {
	if s == nil || s.step <= 0 {
		return 0
	}
	return s.acc / s.step
}
