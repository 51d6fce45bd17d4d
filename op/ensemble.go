// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package op

import (
	"fmt"

	"github.com/tessera-labs/flow"
)

// trunkScope adapts an already-materialized *flow.Trunk into a
// flow.Composable, so it can be passed as the scope argument to a base
// pipeline's Compose - the Go analogue of handing each base an already-
// expanded upstream track to subscribe against, as ensemble.py's
// `basetrack.train.subscribe(pretrack.train.publisher)` does explicitly
// rather than through the Composable chain.
type trunkScope struct{ trunk *flow.Trunk }

func (t trunkScope) Expand() (*flow.Trunk, error)                { return t.trunk, nil }
func (t trunkScope) Compose(flow.Composable) (*flow.Trunk, error) { return t.trunk, nil }

var _ flow.Composable = trunkScope{}

// Ensemble stacks the apply-path output of each of its base pipelines
// through one instance of a merging Builder, with an independent forked
// copy of the merger feeding the group's own apply path. Grounded on
// forml's lib/flow/operator/folding/ensemble.py FullStacker: its nested
// per-fold cross-validation splitting (model_selection.BaseCrossValidator
// over pandas frames) is a numeric/data-format concern spec.md puts out
// of scope (see DESIGN.md); what is kept is FullStacker's ensembling
// shape - one "trained" stacker Worker wired from each base's train-path
// tail and one forked "applied" stacker Worker wired from each base's
// apply-path tail, both produced via Worker.Fork and composed back into
// the trunk with Use the same way FullStacker.Builder.build does.
type Ensemble struct {
	bases  []flow.Composable
	merger flow.Builder
}

var _ flow.Operator = (*Ensemble)(nil)

// NewEnsemble returns an Ensemble stacking len(bases) base pipelines
// through one instance of merger, a stateless Builder with input arity
// len(bases) (e.g. a concat/average actor).
func NewEnsemble(bases []flow.Composable, merger flow.Builder) (*Ensemble, error) {
	if len(bases) == 0 {
		return nil, fmt.Errorf("ensemble: no base pipelines supplied")
	}
	if merger.Stateful() {
		return nil, fmt.Errorf("ensemble: merger builder must be stateless")
	}
	return &Ensemble{bases: bases, merger: merger}, nil
}

// Expand implements flow.Composable.
func (e *Ensemble) Expand() (*flow.Trunk, error) { return e.Compose(flow.Origin{}) }

// Compose implements flow.Composable: every base is independently
// composed against scope's already-expanded trunk (so all bases branch
// off the same upstream data), then each base's train-path and
// apply-path tails are wired into the matching input position of
// "trained" and its fork "applied" respectively. The label path is left
// untouched.
func (e *Ensemble) Compose(scope flow.Composable) (*flow.Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}

	trained := flow.NewWorker(e.merger, len(e.bases), 1)
	applied := trained.Fork()

	for i, base := range e.bases {
		baseTrunk, err := base.Compose(trunkScope{left})
		if err != nil {
			return nil, err
		}
		if err := baseTrunk.Train.Tail.Output(0).Publish(trained, flow.ApplyPort(i)); err != nil {
			return nil, err
		}
		if err := baseTrunk.Apply.Tail.Output(0).Publish(applied, flow.ApplyPort(i)); err != nil {
			return nil, err
		}
	}

	apply := &flow.Segment{Head: left.Apply.Head, Tail: applied}
	train := &flow.Segment{Head: left.Train.Head, Tail: trained}
	return left.Use(apply, train, nil), nil
}
