// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package op collects supplemental built-in Operators that exercise the
// core composition algebra the way forml's lib/flow/operator package
// does, generalized over plain Go types instead of pandas frames.
package op

import "github.com/tessera-labs/flow"

// segmentOf wraps a freshly-allocated, not-yet-subscribed node n (szin
// <= 1, szout <= 1) as a trivial one-node Segment without invoking
// traversal - safe because n has no outgoing subscriptions yet.
func segmentOf(n flow.Node) *flow.Segment {
	return &flow.Segment{Head: n, Tail: n}
}

// Mapper is a generic single-actor 1:1 operator: it forks one Worker
// from builder into the apply path, and - when builder is stateful - a
// second fork trained against the upstream Train/Label publishers.
// Grounded on forml's lib/flow/operator/generic/simple.py Base/Mapper.
type Mapper struct {
	builder flow.Builder
}

var _ flow.Operator = (*Mapper)(nil)

// NewMapper returns a Mapper wrapping builder.
func NewMapper(builder flow.Builder) *Mapper {
	return &Mapper{builder: builder}
}

// Expand implements flow.Composable.
func (m *Mapper) Expand() (*flow.Trunk, error) { return m.Compose(flow.Origin{}) }

// Compose implements flow.Composable: extends scope's apply segment with
// one fork of m's Worker, and - when builder is stateful - repositions
// the train segment's tail directly onto a second, trained fork of the
// same Worker (rather than a third untrained fork, as forml's Mapper.apply
// does - our Segment.Each only descends into Train/Label subscribers
// from a segment's literal tail, so the trained fork must occupy that
// position for the compiler to ever discover it; see DESIGN.md). The
// label segment is left untouched - Mapper never consumes or produces
// labels itself.
func (m *Mapper) Compose(scope flow.Composable) (*flow.Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}

	applier := flow.NewWorker(m.builder, 1, 1)
	trunk, err := left.ExtendWith(segmentOf(applier), nil, nil)
	if err != nil {
		return nil, err
	}

	if !m.builder.Stateful() {
		return trunk, nil
	}

	trainer := applier.Fork()
	if err := trainer.Train(left.Train.Tail.Output(0), left.Label.Tail.Output(0)); err != nil {
		return nil, err
	}
	train := &flow.Segment{Head: left.Train.Head, Tail: trainer}
	return trunk.Use(nil, train, nil), nil
}
