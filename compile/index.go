// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/google/uuid"

	"github.com/tessera-labs/flow"
)

// index is a mapping of stored Instructions keyed by uuid.UUID; one
// Instruction may be reachable under several keys (aliasing a trained
// Worker's uid and its group's gid onto the same Train functor, for
// instance). Grounded on compiler.py's Table.Index.
type index struct {
	instructions map[uuid.UUID]Instruction
	keysOf       map[Instruction][]uuid.UUID
	order        []Instruction
	seen         map[Instruction]bool
}

func newIndex() *index {
	return &index{
		instructions: make(map[uuid.UUID]Instruction),
		keysOf:       make(map[Instruction][]uuid.UUID),
		seen:         make(map[Instruction]bool),
	}
}

func (x *index) contains(key uuid.UUID) bool {
	_, ok := x.instructions[key]
	return ok
}

func (x *index) get(key uuid.UUID) (Instruction, bool) {
	i, ok := x.instructions[key]
	return i, ok
}

// set stores instruction under key, generating a fresh key when key is
// the zero uuid.UUID. Storing under an already-occupied key is an
// assembly error (use reset to re-key an existing entry).
func (x *index) set(instruction Instruction, key uuid.UUID) (uuid.UUID, error) {
	if key == uuid.Nil {
		key = uuid.New()
	}
	if x.contains(key) {
		return uuid.Nil, flow.AssemblyErrorf("instruction collision at key %s", key)
	}
	x.instructions[key] = instruction
	x.keysOf[instruction] = append(x.keysOf[instruction], key)
	if !x.seen[instruction] {
		x.seen[instruction] = true
		x.order = append(x.order, instruction)
	}
	return key, nil
}

// reset re-registers the instruction currently stored under orig to a
// new key (fresh if newKey is the zero uuid.UUID), freeing orig for
// reuse. Used so a persistent group's Loader can keep its own key while
// the group's gid is freed for the trained functor's alias.
func (x *index) reset(orig uuid.UUID, newKey uuid.UUID) (uuid.UUID, error) {
	instruction, ok := x.instructions[orig]
	if !ok {
		return uuid.Nil, flow.AssemblyErrorf("reset: no instruction registered at key %s", orig)
	}
	delete(x.instructions, orig)
	x.keysOf[instruction] = removeKey(x.keysOf[instruction], orig)
	return x.set(instruction, newKey)
}

func removeKey(keys []uuid.UUID, key uuid.UUID) []uuid.UUID {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// group is one (instruction, keys) pairing, in first-registration order.
type group struct {
	instruction Instruction
	keys        []uuid.UUID
}

// groups iterates stored instructions grouped by identity, in the order
// each was first registered - the Go analogue of compiler.py's
// itertools.groupby(self._instructions.keys(), self._instructions.__getitem__).
func (x *index) groups() []group {
	out := make([]group, 0, len(x.order))
	for _, instr := range x.order {
		keys := x.keysOf[instr]
		if len(keys) == 0 {
			continue
		}
		out = append(out, group{instruction: instr, keys: keys})
	}
	return out
}
