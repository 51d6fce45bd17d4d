// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package op

import (
	"fmt"

	"github.com/tessera-labs/flow"
)

// Cast is a stateless 1:1 adapter operator: it installs up to one
// Worker per mode (apply/train/label), any left nil passing that mode
// through unchanged. Grounded on forml's cast.py/generic.Adapter
// pattern, whose compose expands the upstream trunk and extends each
// configured mode with its own Worker built from a per-mode Spec.
type Cast struct {
	apply, train, label flow.Builder
}

var _ flow.Operator = (*Cast)(nil)

// NewCast returns a Cast installing apply/train/label independently;
// any of the three may be nil. Every non-nil Builder must be stateless -
// generic.Adapter rejects a stateful actor for any mode.
func NewCast(apply, train, label flow.Builder) (*Cast, error) {
	for name, b := range map[string]flow.Builder{"apply": apply, "train": train, "label": label} {
		if b != nil && b.Stateful() {
			return nil, fmt.Errorf("cast: %s builder must be stateless", name)
		}
	}
	return &Cast{apply: apply, train: train, label: label}, nil
}

// Expand implements flow.Composable.
func (c *Cast) Expand() (*flow.Trunk, error) { return c.Compose(flow.Origin{}) }

// Compose implements flow.Composable.
func (c *Cast) Compose(scope flow.Composable) (*flow.Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}

	var apply, train, label *flow.Segment
	if c.apply != nil {
		apply = segmentOf(flow.NewWorker(c.apply, 1, 1))
	}
	if c.train != nil {
		train = segmentOf(flow.NewWorker(c.train, 1, 1))
	}
	if c.label != nil {
		label = segmentOf(flow.NewWorker(c.label, 1, 1))
	}

	return left.ExtendWith(apply, train, label)
}
