// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tessera-labs/flow"
)

// Loader is a StateStore-backed Instruction taking no arguments and
// returning the blob stored under key, or nil if the store has nothing
// for it yet. Grounded on target/system.py's Loader, whose execute
// catches forml.MissingError and logs a warning rather than failing -
// the "missing state at load" soft case of spec.md §7.
type Loader struct {
	store flow.StateStore
	key   uuid.UUID
}

var _ Instruction = (*Loader)(nil)

// NewLoader returns a Loader reading key from store.
func NewLoader(store flow.StateStore, key uuid.UUID) *Loader {
	return &Loader{store: store, key: key}
}

func (l *Loader) String() string { return "loader" }

func (l *Loader) Execute(args ...interface{}) (interface{}, error) {
	if len(args) != 0 {
		return nil, flow.AssemblyErrorf("loader takes no arguments, got %d", len(args))
	}

	blob, err := l.store.Load(l.key)
	if err != nil {
		if flow.IsMissingState(err) {
			logger.Warnf("no previous generations found for %s - defaults to no state", l.key)
			return nil, nil
		}
		return nil, err
	}
	return blob, nil
}

// Dumper is a StateStore-backed Instruction taking one state blob
// argument and returning its absolute state identifier. Grounded on
// target/system.py's Dumper.
type Dumper struct {
	store flow.StateStore
}

var _ Instruction = (*Dumper)(nil)

// NewDumper returns a Dumper writing through store.
func NewDumper(store flow.StateStore) *Dumper { return &Dumper{store: store} }

func (d *Dumper) String() string { return "dumper" }

func (d *Dumper) Execute(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, flow.AssemblyErrorf("dumper requires exactly 1 argument, got %d", len(args))
	}
	return d.store.Dump(args[0])
}

// Getter extracts the i-th element of a sequence argument. Grounded on
// target/system.py's Getter, used to fan out a multi-output Worker's
// single compiled functor result to each of its subscribers.
type Getter struct {
	index int
}

var _ Instruction = (*Getter)(nil)

// NewGetter returns a Getter for position index.
func NewGetter(index int) *Getter { return &Getter{index: index} }

func (g *Getter) String() string { return fmt.Sprintf("getter#%d", g.index) }

func (g *Getter) Execute(args ...interface{}) (interface{}, error) {
	if len(args) != 1 {
		return nil, flow.AssemblyErrorf("getter requires exactly 1 argument, got %d", len(args))
	}
	seq, ok := args[0].([]interface{})
	if !ok {
		return nil, flow.AssemblyErrorf("getter#%d argument is not a sequence: %T", g.index, args[0])
	}
	if g.index < 0 || g.index >= len(seq) {
		return nil, flow.AssemblyErrorf("getter#%d out of range for sequence of length %d", g.index, len(seq))
	}
	return seq[g.index], nil
}

// Committer atomically records a new generation from N state
// identifiers in the fixed order given by the segment's persistent-group
// ordering. Grounded on target/system.py's Committer.
type Committer struct {
	store flow.StateStore
}

var _ Instruction = (*Committer)(nil)

// NewCommitter returns a Committer writing through store.
func NewCommitter(store flow.StateStore) *Committer { return &Committer{store: store} }

func (c *Committer) String() string { return "committer" }

func (c *Committer) Execute(args ...interface{}) (interface{}, error) {
	ids := make([]uuid.UUID, len(args))
	for i, a := range args {
		id, ok := a.(uuid.UUID)
		if !ok {
			return nil, flow.AssemblyErrorf("committer argument %d is not a state id: %T", i, a)
		}
		ids[i] = id
	}
	return nil, c.store.Commit(ids)
}
