// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Node is a graph vertex: a unique identity, an input arity, and an
// ordered-subscription output-port vector. Worker and Future are its two
// variants, grounded on node.py's Atomic base and its Worker/Future
// subclasses.
type Node interface {
	fmt.Stringer

	// UID is this node's unique identity.
	UID() uuid.UUID

	// SzIn is the input arity.
	SzIn() int

	// SzOut is the output-port vector width.
	SzOut() int

	// Output returns the i-th output port handle.
	Output(i int) *OutputPort

	// Trained reports whether any input port is Train or Label.
	Trained() bool

	registry() *Registry
	hasOutgoing() bool
}

// OutputPort is one output position of a Node: it owns an ordered set of
// outgoing Subscriptions and implements PubSub over them.
type OutputPort struct {
	mu    sync.Mutex
	owner Node
	index int
	subs  []Subscription
}

var _ PubSub = (*OutputPort)(nil)

// Publish implements Publishable.
func (o *OutputPort) Publish(subscriber Node, port Port) error {
	return o.Republish(Subscription{Node: subscriber, Port: port})
}

// Republish implements Publishable. Publishing into a Future subscriber
// is redirected to the future's proxy table instead of being recorded
// directly - the future will forward it once it collapses.
func (o *OutputPort) Republish(sub Subscription) error {
	if sub.Node == o.owner {
		return topologyErrorf("node %s cannot subscribe to itself", sub.Node)
	}

	if future, ok := sub.Node.(*Future); ok {
		return future.registerPublisher(o, sub.Port)
	}
	return o.republishDirect(sub)
}

// republishDirect performs the common, invariant-checked publish path
// shared by direct subscriptions and future collapse.
func (o *OutputPort) republishDirect(sub Subscription) error {
	reg := sub.Node.registry()
	if err := reg.subscribe(sub.Node, sub.Port, sub.Node.hasOutgoing); err != nil {
		return err
	}

	o.mu.Lock()
	o.subs = append(o.subs, sub)
	o.mu.Unlock()

	if future, ok := o.owner.(*Future); ok {
		return future.onSubscriberAdded(o.index)
	}
	return nil
}

// Subscribe implements Subscriptable: equivalent to publisher publishing
// Apply(o.index) of o's owner.
func (o *OutputPort) Subscribe(publisher *OutputPort) error {
	return publisher.Publish(o.owner, ApplyPort(o.index))
}

// Subscriptions returns the ordered set of outgoing Subscriptions
// currently recorded on this output port.
func (o *OutputPort) Subscriptions() []Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Subscription, len(o.subs))
	copy(out, o.subs)
	return out
}

func (o *OutputPort) removeSubscriber(node Node, port Port) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subs {
		if s.Node == node && s.Port == port {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// base holds the fields and registry plumbing common to Worker and
// Future, mirroring node.py's Atomic.
type base struct {
	uid     uuid.UUID
	szin    int
	outputs []*OutputPort
	reg     *Registry
}

func newBase(owner Node, szin, szout int, reg *Registry) base {
	if reg == nil {
		reg = defaultRegistry
	}
	b := base{uid: uuid.New(), szin: szin, reg: reg}
	b.outputs = make([]*OutputPort, szout)
	for i := range b.outputs {
		b.outputs[i] = &OutputPort{owner: owner, index: i}
	}
	return b
}

func (b *base) UID() uuid.UUID       { return b.uid }
func (b *base) SzIn() int            { return b.szin }
func (b *base) SzOut() int           { return len(b.outputs) }
func (b *base) Output(i int) *OutputPort { return b.outputs[i] }
func (b *base) registry() *Registry  { return b.reg }

func (b *base) hasOutgoing() bool {
	for _, o := range b.outputs {
		if len(o.Subscriptions()) > 0 {
			return true
		}
	}
	return false
}

// NodeOption configures a Worker or Future at construction time.
type NodeOption func(*nodeOptions)

type nodeOptions struct {
	registry *Registry
}

// WithRegistry confines a node's subscription bookkeeping to reg instead
// of the package-wide default registry, for isolated or concurrent graph
// construction contexts (see Registry).
func WithRegistry(reg *Registry) NodeOption {
	return func(o *nodeOptions) { o.registry = reg }
}

func collectOptions(opts []NodeOption) nodeOptions {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
