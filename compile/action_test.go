// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import "testing"

func TestTrainAction_RequiresExactlyTwoArguments(t *testing.T) {
	a := &fakeActor{}
	if _, err := trainAction{}.Perform(a, "features"); err == nil {
		t.Fatalf("expected an error for a single argument")
	}
	if _, err := trainAction{}.Perform(a, "f", "l", "extra"); err == nil {
		t.Fatalf("expected an error for three arguments")
	}
}

func TestPresetAction_RequiresALeadingArgument(t *testing.T) {
	p := &presetAction{label: "setstate", inner: applyAction{}, set: setState}
	if _, err := p.Perform(&fakeActor{}); err == nil {
		t.Fatalf("expected an error when no preset argument is given")
	}
}

func TestSetState_PreservesParamsAcrossSetState(t *testing.T) {
	a := &fakeActor{params: map[string]interface{}{"k": "v"}}
	if err := setState(a, "blob"); err != nil {
		t.Fatalf("setState: %v", err)
	}
	if a.state != "blob" {
		t.Fatalf("expected state to be installed, got %v", a.state)
	}
	if a.params["k"] != "v" {
		t.Fatalf("expected hyperparameters to survive a state load, got %v", a.params)
	}
}

func TestSetParams_RejectsWrongType(t *testing.T) {
	a := &fakeActor{}
	if err := setParams(a, 42); err == nil {
		t.Fatalf("expected an error for a non-map value")
	}
}

func TestSetParams_InstallsMap(t *testing.T) {
	a := &fakeActor{}
	want := map[string]interface{}{"alpha": 0.5}
	if err := setParams(a, want); err != nil {
		t.Fatalf("setParams: %v", err)
	}
	if a.params["alpha"] != 0.5 {
		t.Fatalf("expected params installed, got %v", a.params)
	}
}
