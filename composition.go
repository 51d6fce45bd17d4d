// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/google/uuid"
)

// Composition is the terminal, validated (apply, train) segment pair
// plus a canonical ordering of the persistent group identities: gids
// that hold state produced on the train path and are reachable on the
// apply path. Grounded on assembly.py's Composition / pipeline's
// __init__.py Composition namedtuple.
type Composition struct {
	Apply      *Segment
	Train      *Segment
	Persistent []uuid.UUID
}

// Compose expands root against an empty Origin and assembles the result
// into a Composition.
func Compose(root Composable) (*Composition, error) {
	ctx, span := startComposeSpan(context.Background(), "compose")
	defer span.End()

	trunk, err := root.Expand()
	if err != nil {
		return nil, err
	}
	return assemble(ctx, trunk)
}

// ComposeTrunks chains a sequence of trunks in order via ExtendWith and
// assembles the result, mirroring the source's ability to build a
// Composition directly from an already-materialized trunk sequence
// instead of a Composable expression tree.
func ComposeTrunks(trunks ...*Trunk) (*Composition, error) {
	ctx, span := startComposeSpan(context.Background(), "trunks")
	defer span.End()

	if len(trunks) == 0 {
		return nil, topologyErrorf("compose: no trunks supplied")
	}
	acc := trunks[0]
	for _, t := range trunks[1:] {
		next, err := acc.ExtendWith(t.Apply, t.Train, t.Label)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return assemble(ctx, acc)
}

func assemble(ctx context.Context, trunk *Trunk) (*Composition, error) {
	// Only the train segment is validated for leftover Futures here.
	// original_source's assembly.py comments out the equivalent
	// apply/label validator calls and leaves only the train check live;
	// this is preserved verbatim rather than "fixed" - see DESIGN.md.
	if err := validateNoFutures(ctx, trunk.Train); err != nil {
		return nil, err
	}

	persistent, err := persistentGroups(ctx, trunk.Apply)
	if err != nil {
		return nil, err
	}

	return &Composition{Apply: trunk.Apply, Train: trunk.Train, Persistent: persistent}, nil
}

func validateNoFutures(ctx context.Context, seg *Segment) error {
	return seg.Each(func(n Node) error {
		if _, ok := n.(*Future); ok {
			return topologyErrorf("future %s left in validated segment", n)
		}
		recordNode(ctx, n.UID().String())
		return nil
	})
}

// persistentGroups walks seg in traversal order, collecting the gid of
// every distinct derived Worker reached - these are the groups whose
// state was produced on the train path and must be carried across runs.
func persistentGroups(ctx context.Context, seg *Segment) ([]uuid.UUID, error) {
	var order []uuid.UUID
	seen := make(map[uuid.UUID]bool)

	err := seg.Each(func(n Node) error {
		recordNode(ctx, n.UID().String())
		w, ok := n.(*Worker)
		if !ok || !w.Derived() {
			return nil
		}
		gid := w.Group().GID()
		if !seen[gid] {
			seen[gid] = true
			order = append(order, gid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
