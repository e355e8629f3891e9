package main

import (
	"testing"

	"go.uber.org/zap"
)

func TestRunScripts(t *testing.T) {
	cases := []struct {
		name   string
		cfg    config
		moved  bool
		minJmp int
	}{
		{"idle", config{level: "meadow", script: "idle", frames: 120, dt: 1.0 / 60, step: 1.0 / 60}, false, 0},
		{"demo", config{level: "meadow", script: "demo", frames: 300, dt: 1.0 / 60, step: 1.0 / 60}, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := run(tc.cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if res.scriptErr != nil {
				t.Fatalf("script error: %v", res.scriptErr)
			}
			if res.steps < uint64(tc.cfg.frames-1) {
				t.Fatalf("expected about one step per frame, got %d", res.steps)
			}
			if moved := res.x > 4; moved != tc.moved {
				t.Fatalf("expected moved=%v, x=%v", tc.moved, res.x)
			}
			if res.jumps < tc.minJmp {
				t.Fatalf("expected at least %d jumps, got %d", tc.minJmp, res.jumps)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	cases := []config{
		{level: "missing", script: "idle", frames: 1, dt: 1.0 / 60, step: 1.0 / 60},
		{level: "meadow", script: "missing", frames: 1, dt: 1.0 / 60, step: 1.0 / 60},
	}
	for _, cfg := range cases {
		if _, err := run(cfg, zap.NewNop()); err == nil {
			t.Fatalf("expected an error for %+v", cfg)
		}
	}
}
