// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "testing"

func TestOutputPort_RejectsSelfSubscription(t *testing.T) {
	w := NewWorker(&fakeBuilder{}, 1, 1)
	if err := w.Output(0).Publish(w, ApplyPort(0)); err == nil {
		t.Fatalf("expected a self subscription to be rejected")
	}
}

func TestOutputPort_RejectsDoubleSubscription(t *testing.T) {
	src := NewWorker(&fakeBuilder{}, 0, 1)
	dst := NewWorker(&fakeBuilder{}, 1, 1)

	if err := src.Output(0).Publish(dst, ApplyPort(0)); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
	if err := src.Output(0).Publish(dst, ApplyPort(0)); err == nil {
		t.Fatalf("expected a second subscription at the same port to be rejected")
	}
}

func TestRegistry_RejectsApplyTrainMix(t *testing.T) {
	features := NewWorker(&fakeBuilder{}, 0, 1)
	labels := NewWorker(&fakeBuilder{}, 0, 1)
	other := NewWorker(&fakeBuilder{}, 0, 1)

	stateful := NewWorker(&fakeBuilder{stateful: true}, 1, 1)
	if err := stateful.Train(features.Output(0), labels.Output(0)); err != nil {
		t.Fatalf("Train: %v", err)
	}

	if err := other.Output(0).Publish(stateful, ApplyPort(0)); err == nil {
		t.Fatalf("expected an Apply subscription on an already-trained node to be rejected")
	}
}

func TestRegistry_RejectsTrainOnApplySubscribedNode(t *testing.T) {
	src := NewWorker(&fakeBuilder{}, 0, 1)
	features := NewWorker(&fakeBuilder{}, 0, 1)
	labels := NewWorker(&fakeBuilder{}, 0, 1)

	stateful := NewWorker(&fakeBuilder{stateful: true}, 1, 1)
	if err := src.Output(0).Publish(stateful, ApplyPort(0)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if err := stateful.Train(features.Output(0), labels.Output(0)); err == nil {
		t.Fatalf("expected Train to reject a node that already has an apply subscription")
	}
}

func TestOutputPort_SubscribeIsSugar(t *testing.T) {
	src := NewWorker(&fakeBuilder{}, 0, 1)
	dst := NewWorker(&fakeBuilder{}, 1, 1)

	if err := dst.Output(0).Subscribe(src.Output(0)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	subs := src.Output(0).Subscriptions()
	if len(subs) != 1 || subs[0].Node != dst || subs[0].Port != ApplyPort(0) {
		t.Fatalf("expected dst subscribed at apply[0], got %v", subs)
	}
}
