// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"sync"

	"github.com/google/uuid"
)

// Group is the set of Worker forks sharing one Builder and hence one
// actor's state at runtime. Every fork holds the same *Group pointer, so
// the garbage collector keeps it alive as long as any of its forks (no
// explicit reference count is kept). Grounded on node.py's Worker.Group
// inner class.
type Group struct {
	mu      sync.Mutex
	gid     uuid.UUID
	builder Builder
	forks   []*Worker
}

// GID is the group's stable identity.
func (g *Group) GID() uuid.UUID { return g.gid }

// Builder returns the Builder shared by every fork in this group.
func (g *Group) Builder() Builder { return g.builder }

// Forks returns a snapshot of the group's current membership.
func (g *Group) Forks() []*Worker {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*Worker, len(g.forks))
	copy(out, g.forks)
	return out
}

func (g *Group) add(w *Worker) {
	g.mu.Lock()
	g.forks = append(g.forks, w)
	g.mu.Unlock()
}

// trainedFork returns the fork in the group currently subscribed at
// Train/Label, or nil if none is.
func (g *Group) trainedFork() *Worker {
	for _, w := range g.Forks() {
		if w.Trained() {
			return w
		}
	}
	return nil
}

// Worker is a Node bound to a Builder plus a Group identity. Grounded on
// node.py's Worker class.
type Worker struct {
	base
	group *Group
}

var _ Node = (*Worker)(nil)

// NewWorker allocates a fresh Group from builder and returns its first
// Worker member, with input arity szin and output width szout.
func NewWorker(builder Builder, szin, szout int, opts ...NodeOption) *Worker {
	o := collectOptions(opts)
	w := &Worker{group: &Group{gid: uuid.New(), builder: builder}}
	w.base = newBase(w, szin, szout, o.registry)
	w.group.add(w)
	return w
}

// Fork returns a new Worker in the same Group as w: same builder and
// gid, independent uid and subscriptions.
func (w *Worker) Fork(opts ...NodeOption) *Worker {
	o := collectOptions(opts)
	reg := o.registry
	if reg == nil {
		reg = w.reg
	}
	fork := &Worker{group: w.group}
	fork.base = newBase(fork, w.SzIn(), w.SzOut(), reg)
	w.group.add(fork)
	return fork
}

// FGen returns a lazy generator producing an initial Worker from builder
// followed by indefinitely many forks of it, grounded on node.py's
// Worker.fgen classmethod.
func FGen(builder Builder, szin, szout int, opts ...NodeOption) func() *Worker {
	var root *Worker
	return func() *Worker {
		if root == nil {
			root = NewWorker(builder, szin, szout, opts...)
			return root
		}
		return root.Fork(opts...)
	}
}

// Trained implements Node: true iff any input port is Train or Label.
func (w *Worker) Trained() bool { return w.reg.trained(w) }

// Stateful delegates to the group's Builder.
func (w *Worker) Stateful() bool { return w.group.builder.Stateful() }

// Derived reports that w is stateful, not itself trained, but some
// sibling fork in its group is - i.e. w reads the group's trained state
// at runtime without having produced it.
func (w *Worker) Derived() bool {
	if !w.Stateful() || w.Trained() {
		return false
	}
	return w.group.trainedFork() != nil
}

// Group returns the Group shared by every fork with w's gid; its Forks
// method returns a snapshot of the current membership.
func (w *Worker) Group() *Group { return w.group }

// Input returns the set of ports currently subscribed on w.
func (w *Worker) Input() map[Port]struct{} { return w.reg.inputPorts(w) }

// Train subscribes Train from trainPub and Label from labelPub. It fails
// if w is stateless, if any fork in w's group is already trained, or if
// either publisher is itself trained.
func (w *Worker) Train(trainPub, labelPub *OutputPort) error {
	if !w.Stateful() {
		return topologyErrorf("node %s cannot be trained: builder is stateless", w)
	}
	if fork := w.group.trainedFork(); fork != nil {
		return topologyErrorf("group %s already has a trained fork %s", w.group.gid, fork)
	}
	if trainPub.owner.Trained() {
		return topologyErrorf("node %s cannot publish Train: its publisher %s is itself trained", w, trainPub.owner)
	}
	if labelPub.owner.Trained() {
		return topologyErrorf("node %s cannot publish Label: its publisher %s is itself trained", w, labelPub.owner)
	}
	if err := trainPub.Publish(w, Train); err != nil {
		return err
	}
	return labelPub.Publish(w, Label)
}

func (w *Worker) String() string {
	return "worker(" + w.uid.String() + ")"
}
