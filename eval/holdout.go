// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package eval composes the true/predicted outcome ports a holdout
// evaluation needs from a pipeline and a historical features/labels
// source, without executing or scoring anything itself - grounded on
// original_source's forml/evaluation/_method.py CrossVal/HoldOut and
// forml/evaluation/_api.py's Method/Outcome contracts. Actual metric
// computation (forml's evaluation.Metric) is out of scope per spec.md
// §1 ("Non-goals: model semantics, numerical correctness... of any
// runner"): this package only wires the DAG ports a metric would read.
package eval

import (
	"fmt"

	"github.com/tessera-labs/flow"
)

// Outcome pairs a held-out fold's true labels with the pipeline's
// predictions on the matching held-out features - both as output-port
// handles a later, out-of-scope Metric collaborator would subscribe
// from. Grounded on _api.py's Outcome namedtuple (true, pred).
type Outcome struct {
	Truth      *flow.OutputPort
	Prediction *flow.OutputPort
}

// HoldoutScore withholds part of a historical features/labels dataset
// for scoring instead of training, by training one instance of a
// splitter Builder on the whole dataset and then reading the
// train/test partition it assigns back out through two forks sharing
// its fitted state. Grounded on _method.py's HoldOut, implemented (like
// HoldOut itself) as the nsplits=1 case of CrossVal: a splitter with
// output 0 carrying the retained training partition and output 1 the
// held-out scoring partition.
type HoldoutScore struct {
	splitter flow.Builder
}

// NewHoldoutScore returns a HoldoutScore driven by splitter, which must
// be stateful (the split assignment is fitted state, per CrossVal's own
// `splitter.train(features, labels)`) and declare input arity 1 /
// output arity 2.
func NewHoldoutScore(splitter flow.Builder) (*HoldoutScore, error) {
	if !splitter.Stateful() {
		return nil, fmt.Errorf("eval: holdout splitter builder must be stateful")
	}
	return &HoldoutScore{splitter: splitter}, nil
}

// Evaluate fits the splitter on features/labels, expands a fresh
// instance of pipeline against the retained training partition, and
// returns the Outcome pairing the held-out partition's true labels with
// the pipeline's predictions on the held-out features.
//
// Unlike Compose/ComposeTrunks, Evaluate deliberately never reassembles
// a flow.Composition for the fold: the held-out features/labels enter
// through the pipeline's own Origin-default apply/train/label Futures
// (see Trunk), and spec.md §9's own open question about the apply/label
// validator being partially disabled reflects exactly this kind of
// post-collapse segment - reconstructing a single traversable Apply
// Head for it would require resolving reachability through a node whose
// other output feeds an unrelated branch, which the segment model does
// not give a sound general answer for. Evaluate sidesteps the question
// entirely by reading the fold's fixed Tail node references directly,
// which never requires traversal. See DESIGN.md.
func (h *HoldoutScore) Evaluate(pipeline flow.Composable, features, labels *flow.OutputPort) (*Outcome, error) {
	splitter := flow.NewWorker(h.splitter, 1, 2)
	if err := splitter.Train(features, labels); err != nil {
		return nil, err
	}

	featuresFork := splitter.Fork()
	if err := features.Publish(featuresFork, flow.ApplyPort(0)); err != nil {
		return nil, err
	}

	labelsFork := splitter.Fork()
	if err := labels.Publish(labelsFork, flow.ApplyPort(0)); err != nil {
		return nil, err
	}

	fold, err := pipeline.Expand()
	if err != nil {
		return nil, err
	}

	if err := fold.Train.Head.Output(0).Subscribe(featuresFork.Output(0)); err != nil {
		return nil, err
	}
	if err := fold.Label.Head.Output(0).Subscribe(labelsFork.Output(0)); err != nil {
		return nil, err
	}
	if err := fold.Apply.Head.Output(0).Subscribe(featuresFork.Output(1)); err != nil {
		return nil, err
	}

	return &Outcome{Truth: labelsFork.Output(1), Prediction: fold.Apply.Tail.Output(0)}, nil
}
