// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/google/uuid"

	"github.com/tessera-labs/flow"
)

// linkage records instruction dependency relations as ordered positional
// argument keys: an absolute layer filled in by the graph visitor (one
// slot per Worker output/input position) and a prefixed layer of
// preset (state/params) arguments that are read back in reverse so the
// last-prepended argument lands first. Grounded on compiler.py's
// Table.Linkage.
type linkage struct {
	absolute map[uuid.UUID][]uuid.UUID
	prefixed map[uuid.UUID][]uuid.UUID
}

func newLinkage() *linkage {
	return &linkage{
		absolute: make(map[uuid.UUID][]uuid.UUID),
		prefixed: make(map[uuid.UUID][]uuid.UUID),
	}
}

// insert stores argument as receiver's positional parameter at the
// given absolute index, extending the slot slice with holes
// (uuid.Nil) as needed. Re-using an already-filled slot is a link
// collision.
func (lk *linkage) insert(receiver, argument uuid.UUID, index int) error {
	if index < 0 {
		return flow.AssemblyErrorf("invalid positional index %d for %s", index, receiver)
	}
	args := lk.absolute[receiver]
	for len(args) <= index {
		args = append(args, uuid.Nil)
	}
	if args[index] != uuid.Nil {
		return flow.AssemblyErrorf("link collision for %s at position %d", receiver, index)
	}
	args[index] = argument
	lk.absolute[receiver] = args
	return nil
}

// insertSingle is insert at position 0 for single-argument instructions
// (Dumper, Getter), failing if the receiver already has more than one
// absolute argument.
func (lk *linkage) insertSingle(receiver, argument uuid.UUID) error {
	if len(lk.absolute[receiver]) > 1 {
		return flow.AssemblyErrorf("index required for multi-argument instruction %s", receiver)
	}
	return lk.insert(receiver, argument, 0)
}

// prepend appends argument to receiver's prefixed list; args returns
// prefixed entries in reverse order so the most recently prepended
// argument is read first.
func (lk *linkage) prepend(receiver, argument uuid.UUID) {
	lk.prefixed[receiver] = append(lk.prefixed[receiver], argument)
}

// update registers node as the absolute positional argument of every one
// of its subscribers. A single-output node is linked directly; a
// multi-output node is routed through one Getter instruction per output
// index, allocated via newGetter. Grounded on compiler.py's
// Table.Linkage.update.
func (lk *linkage) update(node flow.Node, newGetter func(index int) (uuid.UUID, error)) error {
	if node.SzOut() == 1 {
		for _, sub := range node.Output(0).Subscriptions() {
			if err := lk.insert(sub.Node.UID(), node.UID(), sub.Port.Index()); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < node.SzOut(); i++ {
		source, err := newGetter(i)
		if err != nil {
			return err
		}
		if err := lk.insertSingle(source, node.UID()); err != nil {
			return err
		}
		for _, sub := range node.Output(i).Subscriptions() {
			if err := lk.insert(sub.Node.UID(), source, sub.Port.Index()); err != nil {
				return err
			}
		}
	}
	return nil
}

// args returns receiver's dereferenced positional argument-key sequence:
// prefixed entries in reverse, then absolute entries in index order.
// Holes in the absolute layer are represented as uuid.Nil and surface as
// an assembly error when the final symbol table tries to dereference
// them.
func (lk *linkage) args(receiver uuid.UUID) []uuid.UUID {
	prefixed := lk.prefixed[receiver]
	absolute := lk.absolute[receiver]

	out := make([]uuid.UUID, 0, len(prefixed)+len(absolute))
	for i := len(prefixed) - 1; i >= 0; i-- {
		out = append(out, prefixed[i])
	}
	out = append(out, absolute...)
	return out
}

// leaves returns the set of receiver keys (keys with an absolute or
// prefixed argument entry) that are not themselves referenced as
// anyone's argument - i.e. nothing downstream consumes their result.
// Used to prune Getter stubs that end up unconsumed. Grounded on
// compiler.py's Table.Linkage.leaves.
func (lk *linkage) leaves() map[uuid.UUID]struct{} {
	parents := make(map[uuid.UUID]struct{})
	for _, args := range lk.absolute {
		for _, a := range args {
			if a != uuid.Nil {
				parents[a] = struct{}{}
			}
		}
	}
	for _, args := range lk.prefixed {
		for _, a := range args {
			if a != uuid.Nil {
				parents[a] = struct{}{}
			}
		}
	}

	children := make(map[uuid.UUID]struct{})
	for k := range lk.absolute {
		children[k] = struct{}{}
	}
	for k := range lk.prefixed {
		children[k] = struct{}{}
	}
	for p := range parents {
		delete(children, p)
	}
	return children
}
