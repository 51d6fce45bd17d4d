// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

// Traversal walks a segment's apply graph, accumulating a members set
// used to detect cycles. Grounded on span.py's Traversal namedtuple
// (pivot, members) and its directs/mappers/tail/each/copy methods.
type Traversal struct {
	members map[Node]struct{}
}

func newTraversal(pivot Node) *Traversal {
	return &Traversal{members: map[Node]struct{}{pivot: {}}}
}

// directs iterates the immediate subscribers of pivot (and of any extras
// - typically futures that subscribed via proxy), optionally filtered by
// mask. Revisiting a member is a cyclic-graph error.
func (t *Traversal) directs(pivot Node, extras []Node, mask func(Subscription) bool) ([]Node, error) {
	var next []Node
	pivots := append([]Node{pivot}, extras...)
	for _, p := range pivots {
		for i := 0; i < p.SzOut(); i++ {
			for _, sub := range p.Output(i).Subscriptions() {
				if mask != nil && !mask(sub) {
					continue
				}
				if _, seen := t.members[sub.Node]; seen {
					return nil, topologyErrorf("cyclic flow: node %s revisited from %s", sub.Node, pivot)
				}
				t.members[sub.Node] = struct{}{}
				next = append(next, sub.Node)
			}
		}
	}
	return next, nil
}

// mappers is directs restricted to non-trained workers: data-flow edges
// only.
func (t *Traversal) mappers(pivot Node, extras []Node) ([]Node, error) {
	return t.directs(pivot, extras, func(s Subscription) bool { return !s.Node.Trained() })
}

// tail recursively descends along mappers to the unique leaf starting at
// pivot. If expected is non-nil, descent stops as soon as it is reached;
// failing to reach it, or finding more than one candidate leaf with no
// expectation, is an ambiguous-tail error.
func (t *Traversal) tail(pivot Node, expected Node) (Node, error) {
	current := pivot
	for {
		next, err := t.mappers(current, nil)
		if err != nil {
			return nil, err
		}
		if expected != nil {
			for _, n := range next {
				if n == expected || nodesShapeEqual(n, expected) {
					return expected, nil
				}
			}
		}
		switch len(next) {
		case 0:
			if expected != nil {
				return nil, topologyErrorf("expected tail %s not reachable from %s", expected, pivot)
			}
			return current, nil
		case 1:
			current = next[0]
		default:
			return nil, topologyErrorf("ambiguous tail: multiple leaves reachable from %s", pivot)
		}
	}
}

// each depth-first visits every unique node from pivot down to tail,
// invoking visit on each - tail itself is skipped unless it is a Worker -
// then continues through any Train/Label subscribers reachable from
// tail.
func (t *Traversal) each(pivot, tail Node, visit func(Node) error) error {
	if pivot != tail {
		if err := visit(pivot); err != nil {
			return err
		}
		// A trained tail is reached over a Train/Label edge rather than a
		// mapper edge; admit it (once) alongside the mappers.
		tailAdmitted := false
		next, err := t.directs(pivot, nil, func(s Subscription) bool {
			if s.Node != tail || !s.Node.Trained() {
				return !s.Node.Trained()
			}
			admit := !tailAdmitted
			tailAdmitted = true
			return admit
		})
		if err != nil {
			return err
		}
		for _, n := range next {
			if err := t.each(n, tail, visit); err != nil {
				return err
			}
		}
		return nil
	}

	if _, ok := pivot.(*Worker); ok {
		if err := visit(pivot); err != nil {
			return err
		}
	}
	trained, err := t.directs(pivot, nil, func(s Subscription) bool { return s.Node.Trained() })
	if err != nil {
		return err
	}
	for _, n := range trained {
		if err := t.each(n, n, visit); err != nil {
			return err
		}
	}
	return nil
}

// copy produces a fresh topological copy of the apply path between
// pivot and tail: every visited node is forked (a Worker keeps its
// group, a Future becomes a fresh Future), then every subscription whose
// both ends are members is re-established on the copies. Non-member
// subscriptions (side branches, trained sinks) are dropped.
func (t *Traversal) copy(pivot, tail Node) (Node, Node, error) {
	members := map[Node]struct{}{pivot: {}}
	scan := newTraversal(pivot)
	scan.members = members
	if _, err := collectMembers(scan, pivot, tail); err != nil {
		return nil, nil, err
	}

	clones := make(map[Node]Node, len(members))
	for n := range members {
		switch v := n.(type) {
		case *Worker:
			clones[n] = v.Fork()
		case *Future:
			clones[n] = NewFuture(v.SzIn())
		default:
			return nil, nil, topologyErrorf("copy: unsupported node kind for %s", n)
		}
	}

	for n := range members {
		clone := clones[n]
		for i := 0; i < n.SzOut(); i++ {
			for _, sub := range n.Output(i).Subscriptions() {
				target, ok := clones[sub.Node]
				if !ok {
					continue
				}
				if err := clone.Output(i).Publish(target, sub.Port); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return clones[pivot], clones[tail], nil
}

// collectMembers walks from pivot to tail along mappers, recording every
// visited node (inclusive of both ends) into scan.members.
func collectMembers(scan *Traversal, pivot, tail Node) ([]Node, error) {
	var all []Node
	current := pivot
	for current != tail {
		next, err := scan.mappers(current, nil)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return nil, topologyErrorf("copy: tail %s not reachable from %s", tail, pivot)
		}
		all = append(all, next...)
		current = next[0]
	}
	return all, nil
}

// Segment is a single-entry/single-exit sub-DAG view: head.SzIn() <= 1,
// tail.SzOut() <= 1, and tail is reachable from head by following only
// Apply edges. Grounded on span.py's Path/Segment wrapper.
type Segment struct {
	Head Node
	Tail Node
}

// NewSegment constructs a Segment, discovering the tail by downstream
// traversal if expected is nil. Rejects a head with SzIn() > 1 or a
// discovered tail with SzOut() > 1.
func NewSegment(head Node, expected Node) (*Segment, error) {
	if head.SzIn() > 1 {
		return nil, topologyErrorf("segment head %s has szin > 1", head)
	}
	tail, err := newTraversal(head).tail(head, expected)
	if err != nil {
		return nil, err
	}
	if tail.SzOut() > 1 {
		return nil, topologyErrorf("segment tail %s has szout > 1", tail)
	}
	return &Segment{Head: head, Tail: tail}, nil
}

// Follows reports whether s.Head lies anywhere on other's apply path.
func (s *Segment) Follows(other *Segment) bool {
	found := false
	_ = newTraversal(other.Head).each(other.Head, other.Tail, func(n Node) error {
		if n == s.Head {
			found = true
		}
		return nil
	})
	return found || other.Head == s.Head
}

// Root reduces a set of related segments to the unique one that all
// others follow. Unrelated segments are a topology error.
func Root(paths ...*Segment) (*Segment, error) {
	if len(paths) == 0 {
		return nil, topologyErrorf("root: no segments supplied")
	}
	root := paths[0]
	for _, p := range paths[1:] {
		switch {
		case p.Follows(root):
			// root unchanged
		case root.Follows(p):
			root = p
		default:
			return nil, topologyErrorf("root: unrelated segments %s and %s", root.Head, p.Head)
		}
	}
	for _, p := range paths {
		if p != root && !p.Follows(root) {
			return nil, topologyErrorf("root: unrelated segments %s and %s", root.Head, p.Head)
		}
	}
	return root, nil
}

// Extend either appends right by subscribing its head to s's tail, or -
// when right is nil - retraces from s.Head to discover a new tail.
func (s *Segment) Extend(right *Segment) (*Segment, error) {
	if right == nil {
		return NewSegment(s.Head, nil)
	}
	if err := right.Head.Output(0).Subscribe(s.Tail.Output(0)); err != nil {
		return nil, err
	}
	return &Segment{Head: s.Head, Tail: right.Tail}, nil
}

// Copy makes a deep topological duplicate of s.
func (s *Segment) Copy() (*Segment, error) {
	head, tail, err := newTraversal(s.Head).copy(s.Head, s.Tail)
	if err != nil {
		return nil, err
	}
	return &Segment{Head: head, Tail: tail}, nil
}

// Each visits every node from s.Head to s.Tail, invoking visit on each.
func (s *Segment) Each(visit func(Node) error) error {
	return newTraversal(s.Head).each(s.Head, s.Tail, visit)
}
