// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "testing"

func TestWorker_TrainRejectsStatelessBuilder(t *testing.T) {
	features := NewWorker(&fakeBuilder{}, 0, 1)
	labels := NewWorker(&fakeBuilder{}, 0, 1)
	w := NewWorker(&fakeBuilder{stateful: false}, 1, 1)

	if err := w.Train(features.Output(0), labels.Output(0)); err == nil {
		t.Fatalf("expected Train on a stateless builder to be rejected")
	}
}

func TestWorker_TrainRejectsSecondTrainedForkInGroup(t *testing.T) {
	features := NewWorker(&fakeBuilder{}, 0, 1)
	labels := NewWorker(&fakeBuilder{}, 0, 1)

	root := NewWorker(&fakeBuilder{stateful: true}, 1, 1)
	if err := root.Train(features.Output(0), labels.Output(0)); err != nil {
		t.Fatalf("Train: %v", err)
	}

	fork := root.Fork()
	if err := fork.Train(features.Output(0), labels.Output(0)); err == nil {
		t.Fatalf("expected a second trained fork in the same group to be rejected")
	}
}

func TestWorker_DerivedReportsSiblingTrainedState(t *testing.T) {
	features := NewWorker(&fakeBuilder{}, 0, 1)
	labels := NewWorker(&fakeBuilder{}, 0, 1)

	root := NewWorker(&fakeBuilder{stateful: true}, 1, 1)
	fork := root.Fork()

	if root.Derived() || fork.Derived() {
		t.Fatalf("neither fork should be derived before training")
	}

	if err := root.Train(features.Output(0), labels.Output(0)); err != nil {
		t.Fatalf("Train: %v", err)
	}

	if root.Derived() {
		t.Fatalf("the trained fork itself should not be reported as derived")
	}
	if !fork.Derived() {
		t.Fatalf("the untrained sibling fork should be derived once the group has a trained fork")
	}
}

func TestWorker_ForkSharesGroupNotIdentity(t *testing.T) {
	root := NewWorker(&fakeBuilder{stateful: true}, 1, 1)
	fork := root.Fork()

	if root.UID() == fork.UID() {
		t.Fatalf("expected independent uids")
	}
	if root.Group().GID() != fork.Group().GID() {
		t.Fatalf("expected a shared group identity")
	}
	if len(root.Group().Forks()) != 2 {
		t.Fatalf("expected the group to track both forks, got %d", len(root.Group().Forks()))
	}
}

func TestFGen_FirstCallAllocatesSubsequentCallsFork(t *testing.T) {
	gen := FGen(&fakeBuilder{stateful: true}, 1, 1)

	first := gen()
	second := gen()

	if first.UID() == second.UID() {
		t.Fatalf("expected distinct uids across generated workers")
	}
	if first.Group().GID() != second.Group().GID() {
		t.Fatalf("expected generated workers to share one group")
	}
}
