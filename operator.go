// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "sync"

// Composable is anything that can sit on either side of Then: an
// Operator (composes user logic against a scope) or a Compound (a
// left-nested chain of two Composables). Grounded on topology.py's
// Composable/Origin/Operator/Compound hierarchy.
type Composable interface {
	// Compose builds a Trunk by extending scope's fully-expanded trunk
	// with this Composable's own contribution.
	Compose(scope Composable) (*Trunk, error)

	// Expand is the convenience form that composes against an empty
	// Origin.
	Expand() (*Trunk, error)
}

// Operator is a user-facing composable unit: implementations typically
// expand scope, allocate one or more Workers from a Builder, wire them
// to scope's trunk, and return a trunk extended with the new Workers.
type Operator interface {
	Composable
}

// Origin is the empty Composable every expansion chain ultimately
// composes against: its trunk is three single-Future segments.
type Origin struct{}

// Compose implements Composable: Origin ignores scope and returns a
// fresh, unconnected trunk.
func (Origin) Compose(Composable) (*Trunk, error) { return emptyTrunk(), nil }

// Expand implements Composable.
func (o Origin) Expand() (*Trunk, error) { return o.Compose(Origin{}) }

func emptyTrunk() *Trunk {
	return &Trunk{
		Apply: singleFutureSegment(),
		Train: singleFutureSegment(),
		Label: singleFutureSegment(),
	}
}

func singleFutureSegment() *Segment {
	f := NewFuture(1)
	return &Segment{Head: f, Tail: f}
}

// linearity enforces that a given Composable term is consumed by at most
// one Then call - the design notes' "move" semantics, approximating
// topology.py's weak-valued linearity registry with a plain guarded map.
// Unlike a weak map this holds a strong reference to every composed term
// for the process lifetime; composition graphs are small and short-lived
// in practice, so this trades a little memory for not depending on a
// weak-reference facility that the target Go version lacks.
var linearity = struct {
	mu   sync.Mutex
	used map[Composable]bool
}{used: make(map[Composable]bool)}

func consume(c Composable) error {
	linearity.mu.Lock()
	defer linearity.mu.Unlock()

	if linearity.used[c] {
		return topologyErrorf("composable already consumed by a previous >> composition")
	}
	linearity.used[c] = true
	return nil
}

// Compound is the left-nested `>>` composition of two Composables.
// Grounded on topology.py's Compound.
type Compound struct {
	left, right Composable
}

var _ Composable = (*Compound)(nil)

// Then returns left >> right as a Compound, after checking that neither
// operand has already been consumed by a previous composition.
func Then(left, right Composable) (*Compound, error) {
	if err := consume(left); err != nil {
		return nil, err
	}
	if err := consume(right); err != nil {
		return nil, err
	}
	return &Compound{left: left, right: right}, nil
}

// Expand returns right.Compose(left).
func (c *Compound) Expand() (*Trunk, error) { return c.right.Compose(c.left) }

// Compose extends scope.Expand() by c.Expand() on all three segments.
func (c *Compound) Compose(scope Composable) (*Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}
	right, err := c.Expand()
	if err != nil {
		return nil, err
	}
	return left.ExtendWith(right.Apply, right.Train, right.Label)
}
