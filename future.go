// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "sync"

// Future is an arity-preserving placeholder Node: it carries no actor,
// records proxied subscribers, and republishes a publisher to every
// subscriber recorded on the matching output position once that
// publisher registers. Futures must be removed (collapsed) before
// execution; their purpose is to defer binding during composition.
// Grounded on node.py's Future, whose PubSub override implements the
// same register/sync collapse mechanism.
type Future struct {
	base

	mu         sync.Mutex
	publishers map[int]*OutputPort // input position -> registered publisher
}

var _ Node = (*Future)(nil)

// NewFuture allocates an arity-preserving Future with szin == szout ==
// width input/output positions.
func NewFuture(width int, opts ...NodeOption) *Future {
	o := collectOptions(opts)
	f := &Future{publishers: make(map[int]*OutputPort)}
	f.base = newBase(f, width, width, o.registry)
	return f
}

// Trained implements Node. A Future is never itself a trained node: it
// has no Train/Label subscriptions of its own (invariant 6 forbids
// Futures as subscribers of train/label ports).
func (f *Future) Trained() bool { return false }

func (f *Future) String() string { return "future(" + f.uid.String() + ")" }

// registerPublisher records pub as the publisher feeding input position
// port (always an ApplyPort for a Future: invariant 6 forbids Train/
// Label subscriptions on a Future) and immediately collapses any output
// subscriptions already recorded at the matching index.
func (f *Future) registerPublisher(pub *OutputPort, port Port) error {
	ap, ok := port.(ApplyPort)
	if !ok {
		return topologyErrorf("future %s cannot be subscribed at %s", f, port)
	}
	i := int(ap)

	f.mu.Lock()
	if _, exists := f.publishers[i]; exists {
		f.mu.Unlock()
		return topologyErrorf("future %s already has a publisher registered at %s", f, port)
	}
	f.publishers[i] = pub
	f.mu.Unlock()

	return f.collapse(i)
}

// onSubscriberAdded is invoked by OutputPort.republishDirect right after
// it records sub on one of f's own output positions. If a publisher is
// already registered at that index, the new subscription is collapsed
// immediately instead of staying recorded against the future.
func (f *Future) onSubscriberAdded(index int) error {
	return f.collapse(index)
}

// collapse forwards the publisher registered at index (if any) directly
// to every subscription currently recorded on output index, then clears
// that output position - it becomes a transparent pass-through.
func (f *Future) collapse(index int) error {
	f.mu.Lock()
	pub, ok := f.publishers[index]
	f.mu.Unlock()
	if !ok {
		return nil
	}

	out := f.Output(index)
	for _, sub := range out.Subscriptions() {
		// Release the subscriber's registry entry for this port first so
		// the direct republish is not rejected as a double subscription.
		sub.Node.registry().unsubscribe(sub.Node, sub.Port)
		if err := pub.republishDirect(sub); err != nil {
			return err
		}
		out.removeSubscriber(sub.Node, sub.Port)
	}
	return nil
}

// Collapsed reports whether no output position of f still holds a
// subscriber - every recorded subscriber has been forwarded to a real
// publisher, so the future is a pure pass-through invisible to later
// traversals. A subscriber waiting at a position with no registered
// publisher keeps the future uncollapsed.
func (f *Future) Collapsed() bool {
	for i := 0; i < f.SzOut(); i++ {
		if len(f.Output(i).Subscriptions()) > 0 {
			return false
		}
	}
	return true
}

// nodesShapeEqual implements the cross-variant equality used by the
// compiler's tail-replacement logic: a Future is equal to any node of
// the same shape whose outputs have matching ordered subscription sets.
func nodesShapeEqual(a, b Node) bool {
	if a.SzIn() != b.SzIn() || a.SzOut() != b.SzOut() {
		return false
	}
	for i := 0; i < a.SzOut(); i++ {
		as, bs := a.Output(i).Subscriptions(), b.Output(i).Subscriptions()
		if len(as) != len(bs) {
			return false
		}
		for j := range as {
			if as[j] != bs[j] {
				return false
			}
		}
	}
	return true
}
