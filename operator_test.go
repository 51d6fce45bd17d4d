// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "testing"

// simpleOperator extends scope's apply segment with one fresh Worker
// fork from builder, leaving train and label untouched - just enough of
// an Operator to exercise Then/Compound without pulling in the op
// package (which itself depends on this package).
type simpleOperator struct {
	builder Builder
}

func (s *simpleOperator) Expand() (*Trunk, error) { return s.Compose(Origin{}) }

func (s *simpleOperator) Compose(scope Composable) (*Trunk, error) {
	left, err := scope.Expand()
	if err != nil {
		return nil, err
	}
	w := NewWorker(s.builder, 1, 1)
	return left.ExtendWith(&Segment{Head: w, Tail: w}, nil, nil)
}

var _ Composable = (*simpleOperator)(nil)

func TestThen_RejectsReusingAConsumedComposable(t *testing.T) {
	a := &simpleOperator{builder: &fakeBuilder{}}
	b := &simpleOperator{builder: &fakeBuilder{}}

	if _, err := Then(a, b); err != nil {
		t.Fatalf("Then: %v", err)
	}
	if _, err := Then(a, b); err == nil {
		t.Fatalf("expected reusing an already-composed operand to be rejected")
	}
}

func TestCompound_ExpandChainsBothSides(t *testing.T) {
	left := &simpleOperator{builder: &fakeBuilder{}}
	right := &simpleOperator{builder: &fakeBuilder{}}

	chain, err := Then(left, right)
	if err != nil {
		t.Fatalf("Then: %v", err)
	}

	trunk, err := chain.Expand()
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	count := 0
	err = trunk.Apply.Each(func(n Node) error {
		if _, ok := n.(*Worker); ok {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 workers visited on the apply path, got %d", count)
	}
}
