// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

// Trunk is a triple of segments (apply, train, label). An unspecified
// segment defaults to a single Future node. Grounded on
// assembly.py/pipeline's Trunk namedtuple.
type Trunk struct {
	Apply *Segment
	Train *Segment
	Label *Segment
}

// NewTrunk builds a Trunk, substituting a single-Future segment for any
// nil argument.
func NewTrunk(apply, train, label *Segment) *Trunk {
	if apply == nil {
		apply = singleFutureSegment()
	}
	if train == nil {
		train = singleFutureSegment()
	}
	if label == nil {
		label = singleFutureSegment()
	}
	return &Trunk{Apply: apply, Train: train, Label: label}
}

// ExtendWith appends to each non-nil segment's tail, leaving any nil
// argument's branch untouched.
func (t *Trunk) ExtendWith(apply, train, label *Segment) (*Trunk, error) {
	out := &Trunk{Apply: t.Apply, Train: t.Train, Label: t.Label}

	if apply != nil {
		seg, err := t.Apply.Extend(apply)
		if err != nil {
			return nil, err
		}
		out.Apply = seg
	}
	if train != nil {
		seg, err := t.Train.Extend(train)
		if err != nil {
			return nil, err
		}
		out.Train = seg
	}
	if label != nil {
		seg, err := t.Label.Extend(label)
		if err != nil {
			return nil, err
		}
		out.Label = seg
	}
	return out, nil
}

// Use replaces whole segments, leaving any nil argument's branch
// untouched.
func (t *Trunk) Use(apply, train, label *Segment) *Trunk {
	out := &Trunk{Apply: t.Apply, Train: t.Train, Label: t.Label}
	if apply != nil {
		out.Apply = apply
	}
	if train != nil {
		out.Train = train
	}
	if label != nil {
		out.Label = label
	}
	return out
}

// Expand fully materializes the trunk by re-resolving each segment's
// tail from its head with NewSegment.
func (t *Trunk) Expand() (*Trunk, error) {
	apply, err := NewSegment(t.Apply.Head, nil)
	if err != nil {
		return nil, err
	}
	train, err := NewSegment(t.Train.Head, nil)
	if err != nil {
		return nil, err
	}
	label, err := NewSegment(t.Label.Head, nil)
	if err != nil {
		return nil, err
	}
	return &Trunk{Apply: apply, Train: train, Label: label}, nil
}
