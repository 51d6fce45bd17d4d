// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package op

import "github.com/tessera-labs/flow"

// LabelExtractor splits the upstream train-path output into separate
// train (features) and label outputs, using a 2-output builder whose
// output 0 is the features it passes through and output 1 is the
// extracted labels. Grounded on forml's lib/flow/operator/generic/
// simple.py Labeler, generalized from its pandas ndframe label-split
// actor into a plain 1-in/2-out Builder contract.
type LabelExtractor struct {
	builder flow.Builder
}

var _ flow.Operator = (*LabelExtractor)(nil)

// NewLabelExtractor returns a LabelExtractor wrapping builder, which
// must produce an Actor with Apply returning a 2-element sequence:
// features at index 0, labels at index 1.
func NewLabelExtractor(builder flow.Builder) *LabelExtractor {
	return &LabelExtractor{builder: builder}
}

// Expand implements flow.Composable.
func (l *LabelExtractor) Expand() (*flow.Trunk, error) { return l.Compose(flow.Origin{}) }

// Compose implements flow.Composable. It allocates one 1-in/2-out
// Worker fed from scope's train-path tail for the train/label split,
// plus a fork of it fed from scope's apply-path tail so the apply
// segment also passes through the same actor's first (features)
// output - unlike forml's Labeler, whose apply path bypasses the
// splitter entirely on the assumption that served data already carries
// no label column. Forking per mode here instead follows the same
// per-mode fork pattern Mapper uses, so a caller need not assume
// the apply-time input is pre-stripped of labels.
func (l *LabelExtractor) Compose(scope flow.Composable) (*flow.Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}

	applier := flow.NewWorker(l.builder, 1, 2)
	applyFork := applier.Fork()

	applyFuture := flow.NewFuture(1)
	trainFuture := flow.NewFuture(1)
	labelFuture := flow.NewFuture(1)

	if err := applyFuture.Output(0).Subscribe(applyFork.Output(0)); err != nil {
		return nil, err
	}
	if err := trainFuture.Output(0).Subscribe(applier.Output(0)); err != nil {
		return nil, err
	}
	if err := labelFuture.Output(0).Subscribe(applier.Output(1)); err != nil {
		return nil, err
	}
	if err := applyFork.Output(0).Subscribe(left.Apply.Tail.Output(0)); err != nil {
		return nil, err
	}
	if err := applier.Output(0).Subscribe(left.Train.Tail.Output(0)); err != nil {
		return nil, err
	}

	apply := &flow.Segment{Head: left.Apply.Head, Tail: applyFuture}
	train := &flow.Segment{Head: left.Train.Head, Tail: trainFuture}
	label := &flow.Segment{Head: left.Train.Head, Tail: labelFuture}
	return left.Use(apply, train, label), nil
}
