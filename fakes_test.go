// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

// fakeActor is a minimal Actor used across root package tests; none of
// these tests execute a composed graph, so it only needs to satisfy the
// interface.
type fakeActor struct{}

func (fakeActor) Apply(features ...interface{}) (interface{}, error) { return features, nil }
func (fakeActor) Train(features, labels interface{}) error           { return nil }
func (fakeActor) GetParams() (map[string]interface{}, error)         { return nil, nil }
func (fakeActor) SetParams(map[string]interface{}) error             { return nil }
func (fakeActor) GetState() (interface{}, error)                     { return nil, nil }
func (fakeActor) SetState(interface{}) error                         { return nil }

// fakeBuilder is a minimal Builder used across root package tests.
type fakeBuilder struct {
	stateful bool
}

func (b *fakeBuilder) Stateful() bool        { return b.stateful }
func (b *fakeBuilder) Build() (Actor, error) { return fakeActor{}, nil }

var _ Actor = fakeActor{}
var _ Builder = (*fakeBuilder)(nil)
