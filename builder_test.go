// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "testing"

type linearConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Iters int     `mapstructure:"iters"`
}

type linearActor struct {
	linearConfig
	fakeActor
}

func TestSpec_BuildDecodesParamsIntoConfig(t *testing.T) {
	spec, err := NewSpec(func(cfg linearConfig) (Actor, error) {
		return &linearActor{linearConfig: cfg}, nil
	}, true, map[string]interface{}{"rate": 0.1, "iters": 5})
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	actor, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	la, ok := actor.(*linearActor)
	if !ok {
		t.Fatalf("expected *linearActor, got %T", actor)
	}
	if la.Rate != 0.1 || la.Iters != 5 {
		t.Fatalf("expected decoded config {0.1 5}, got %+v", la.linearConfig)
	}
}

func TestSpec_NewSpecDefensivelyCopiesParams(t *testing.T) {
	original := map[string]interface{}{"rate": 0.5}
	spec, err := NewSpec(func(cfg linearConfig) (Actor, error) {
		return &linearActor{linearConfig: cfg}, nil
	}, true, original)
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	original["rate"] = 99.0

	actor, err := spec.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if actor.(*linearActor).Rate != 0.5 {
		t.Fatalf("expected a mutation of the caller's map to leave the Spec's snapshot untouched")
	}
}

func TestSpec_ParamsReturnsDefensiveCopy(t *testing.T) {
	spec, err := NewSpec(func(cfg linearConfig) (Actor, error) {
		return &linearActor{linearConfig: cfg}, nil
	}, true, map[string]interface{}{"rate": 0.2})
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	params, err := spec.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	params["rate"] = 100.0

	again, err := spec.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if again["rate"] != 0.2 {
		t.Fatalf("expected mutating a returned Params snapshot to leave the Spec unaffected")
	}
}

func TestSpec_WithParamsReturnsNewSpecWithReplacedParams(t *testing.T) {
	spec, err := NewSpec(func(cfg linearConfig) (Actor, error) {
		return &linearActor{linearConfig: cfg}, nil
	}, true, map[string]interface{}{"rate": 0.2, "iters": 1})
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	replaced, err := spec.WithParams(map[string]interface{}{"rate": 0.9, "iters": 9})
	if err != nil {
		t.Fatalf("WithParams: %v", err)
	}

	original, err := spec.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if original["rate"] != 0.2 {
		t.Fatalf("expected the original Spec's params to be unaffected by WithParams")
	}

	actor, err := replaced.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if actor.(*linearActor).Rate != 0.9 {
		t.Fatalf("expected the replaced Spec to build with the new params")
	}
}
