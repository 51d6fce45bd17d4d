// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"context"

	"github.com/google/uuid"

	"github.com/tessera-labs/flow"
)

// Table is the dynamic builder of runtime Symbols: it visits every
// Worker of a validated Segment (via Add) and, once fully populated,
// drains into an ordered []Symbol with Symbols. Grounded on
// compiler.py's Table(span.Visitor).
type Table struct {
	store     flow.StateStore
	index     *index
	linkage   *linkage
	committer uuid.UUID // uuid.Nil until the first persistent trained node is added
}

// NewTable returns an empty Table compiling against store. store may be
// nil, meaning no state is ever considered persistent (every stateful
// node behaves as if this were its first run).
func NewTable(store flow.StateStore) *Table {
	return &Table{store: store, index: newIndex(), linkage: newLinkage()}
}

// Add lowers w into the table: one functor instruction (Apply or, for a
// trained node, Train), plus the Loader/Dumper/Committer/Getter wiring
// described in spec.md §4.5. Adding the same node twice is a node
// collision (an assembly error).
func (t *Table) Add(ctx context.Context, w *flow.Worker) error {
	_, span := startAddSpan(ctx, w.UID().String())
	defer span.End()

	if t.index.contains(w.UID()) {
		return flow.AssemblyErrorf("node %s already present in the symbol table", w)
	}

	functor := NewFunctor(w.Group().Builder(), applyAction{})
	aliases := []uuid.UUID{w.UID()}

	if w.Stateful() {
		state := w.Group().GID()

		persistent := false
		if t.store != nil {
			ok, err := t.store.Contains(state)
			if err != nil {
				return err
			}
			persistent = ok
		}

		if persistent && !t.index.contains(state) {
			if _, err := t.index.set(NewLoader(t.store, state), state); err != nil {
				return err
			}
		}

		if w.Trained() {
			functor = NewFunctor(w.Group().Builder(), trainAction{})
			aliases = append(aliases, state)

			if persistent {
				if t.committer == uuid.Nil {
					key, err := t.index.set(NewCommitter(t.store), uuid.Nil)
					if err != nil {
						return err
					}
					t.committer = key
				}

				dumperKey, err := t.index.set(NewDumper(t.store), uuid.Nil)
				if err != nil {
					return err
				}
				if err := t.linkage.insertSingle(dumperKey, w.UID()); err != nil {
					return err
				}

				offset, err := t.store.Offset(state)
				if err != nil {
					return err
				}
				if err := t.linkage.insert(t.committer, dumperKey, offset); err != nil {
					return err
				}

				// Re-register the loader under its own fresh key so the
				// gid alias is free for the trained functor below.
				newState, err := t.index.reset(state, uuid.Nil)
				if err != nil {
					return err
				}
				state = newState
			}
		}

		if persistent || w.Derived() {
			functor = functor.PresetState()
			t.linkage.prepend(w.UID(), state)
		}
	}

	for _, alias := range aliases {
		if _, err := t.index.set(functor, alias); err != nil {
			return err
		}
	}

	if !w.Trained() {
		if err := t.linkage.update(w, func(i int) (uuid.UUID, error) {
			return t.index.set(NewGetter(i), uuid.Nil)
		}); err != nil {
			return err
		}
	}

	return nil
}

// Symbols drains the table into an ordered sequence of Symbols, pruning
// any Getter that ended up a leaf (no subsequent consumer) and
// dereferencing every argument key. A missing argument, a merge
// collision across aliased keys, or a dangling reference is an
// AssemblyError: a compiler programming fault, never a user-composition
// mistake (those surface earlier, as TopologyErrors, at composition
// time). Grounded on compiler.py's Table.__iter__.
func (t *Table) Symbols(ctx context.Context) ([]Symbol, error) {
	stubs := make(map[Instruction]struct{})
	for leaf := range t.linkage.leaves() {
		instr, ok := t.index.get(leaf)
		if !ok {
			continue
		}
		if _, isGetter := instr.(*Getter); isGetter {
			stubs[instr] = struct{}{}
		}
	}

	var symbols []Symbol
	for _, grp := range t.index.groups() {
		if _, pruned := stubs[grp.instruction]; pruned {
			continue
		}

		argKeys, err := t.mergeArgs(grp.keys)
		if err != nil {
			return nil, err
		}

		args := make([]Instruction, len(argKeys))
		for i, k := range argKeys {
			instr, ok := t.index.get(k)
			if !ok {
				return nil, flow.AssemblyErrorf("argument mismatch for instruction %s", grp.instruction)
			}
			args[i] = instr
		}

		symbols = append(symbols, Symbol{Instruction: grp.instruction, Arguments: args})
	}

	recordSymbols(ctx, len(symbols))
	return symbols, nil
}

// mergeArgs merges the argument-key sequences registered under every
// alias of one instruction under the rule "at most one non-null value
// per position"; a position with two distinct non-null entries is a
// merge collision.
func (t *Table) mergeArgs(keys []uuid.UUID) ([]uuid.UUID, error) {
	var merged []uuid.UUID
	for _, k := range keys {
		seq := t.linkage.args(k)
		if merged == nil {
			merged = append([]uuid.UUID(nil), seq...)
			continue
		}

		width := len(merged)
		if len(seq) > width {
			width = len(seq)
		}
		out := make([]uuid.UUID, width)
		for i := 0; i < width; i++ {
			var a, b uuid.UUID
			if i < len(merged) {
				a = merged[i]
			}
			if i < len(seq) {
				b = seq[i]
			}
			switch {
			case a != uuid.Nil && b != uuid.Nil:
				return nil, flow.AssemblyErrorf("merge collision at position %d", i)
			case a != uuid.Nil:
				out[i] = a
			default:
				out[i] = b
			}
		}
		merged = out
	}

	for i, k := range merged {
		if k == uuid.Nil {
			return nil, flow.AssemblyErrorf("missing argument at position %d", i)
		}
	}
	return merged, nil
}

// Compile lowers every Worker reachable on seg (in traversal order) into
// table, skipping Future nodes transparently - the compiler never adds
// them, it just walks through them the same way Segment.Each does.
func Compile(ctx context.Context, seg *flow.Segment, store flow.StateStore) ([]Symbol, error) {
	table := NewTable(store)
	if err := seg.Each(func(n flow.Node) error {
		w, ok := n.(*flow.Worker)
		if !ok {
			return nil
		}
		return table.Add(ctx, w)
	}); err != nil {
		return nil, err
	}
	return table.Symbols(ctx)
}
