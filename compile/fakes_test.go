// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tessera-labs/flow"
)

// fakeActor is a minimal in-memory flow.Actor used across compile tests.
type fakeActor struct {
	built   int
	state   interface{}
	params  map[string]interface{}
	applied [][]interface{}
	trained int
}

func (a *fakeActor) Apply(features ...interface{}) (interface{}, error) {
	a.applied = append(a.applied, features)
	return features, nil
}

func (a *fakeActor) Train(features, labels interface{}) error {
	a.trained++
	a.state = fmt.Sprintf("state(%v,%v)#%d", features, labels, a.trained)
	return nil
}

func (a *fakeActor) GetParams() (map[string]interface{}, error) { return a.params, nil }

func (a *fakeActor) SetParams(params map[string]interface{}) error {
	a.params = params
	return nil
}

func (a *fakeActor) GetState() (interface{}, error) { return a.state, nil }

func (a *fakeActor) SetState(state interface{}) error {
	a.state = state
	return nil
}

// fakeBuilder builds fakeActors, counting how many it has produced so
// Functor's lazy-build-once caching can be asserted on.
type fakeBuilder struct {
	mu       sync.Mutex
	stateful bool
	built    []*fakeActor
}

func (b *fakeBuilder) Stateful() bool { return b.stateful }

func (b *fakeBuilder) Build() (flow.Actor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := &fakeActor{}
	b.built = append(b.built, a)
	return a, nil
}

// fakeStore is an in-memory flow.StateStore. Contains reports whether
// key is tracked as a persistent group for this store - not whether a
// generation has actually been committed yet (see flow.StateStore's
// Contains): a freshly configured store can answer
// Contains(gid)==true for every persistent group while Load(gid) still
// raises MissingState until the first Commit.
type fakeStore struct {
	mu         sync.Mutex
	tracked    map[uuid.UUID]bool
	blobs      map[uuid.UUID]interface{}
	offsets    map[uuid.UUID]int
	committed  [][]uuid.UUID
	dumpCalls  int
}

func newFakeStore(offsets map[uuid.UUID]int) *fakeStore {
	return &fakeStore{
		tracked: make(map[uuid.UUID]bool),
		blobs:   make(map[uuid.UUID]interface{}),
		offsets: offsets,
	}
}

func (s *fakeStore) track(key uuid.UUID) { s.tracked[key] = true }

func (s *fakeStore) Contains(key uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracked[key], nil
}

func (s *fakeStore) Load(key uuid.UUID) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, &flow.MissingState{Key: key}
	}
	return blob, nil
}

func (s *fakeStore) Dump(blob interface{}) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dumpCalls++
	id := uuid.New()
	s.blobs[id] = blob
	return id, nil
}

func (s *fakeStore) Offset(gid uuid.UUID) (int, error) {
	off, ok := s.offsets[gid]
	if !ok {
		return 0, fmt.Errorf("no offset configured for %s", gid)
	}
	return off, nil
}

func (s *fakeStore) Commit(stateIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = append(s.committed, stateIDs)
	return nil
}

var _ flow.Actor = (*fakeActor)(nil)
var _ flow.Builder = (*fakeBuilder)(nil)
var _ flow.StateStore = (*fakeStore)(nil)
