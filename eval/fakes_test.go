// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package eval

import "github.com/tessera-labs/flow"

// fakeActor is a minimal flow.Actor used across eval package tests; it
// never executes (composition never runs user code), it only needs to
// exist to satisfy flow.Builder.Build's return type.
type fakeActor struct{}

func (fakeActor) Apply(features ...interface{}) (interface{}, error) { return features, nil }
func (fakeActor) Train(features, labels interface{}) error           { return nil }
func (fakeActor) GetParams() (map[string]interface{}, error)         { return nil, nil }
func (fakeActor) SetParams(map[string]interface{}) error             { return nil }
func (fakeActor) GetState() (interface{}, error)                     { return nil, nil }
func (fakeActor) SetState(interface{}) error                         { return nil }

// fakeBuilder is a minimal flow.Builder used across eval package tests.
type fakeBuilder struct {
	stateful bool
}

func (b *fakeBuilder) Stateful() bool             { return b.stateful }
func (b *fakeBuilder) Build() (flow.Actor, error) { return fakeActor{}, nil }

var _ flow.Actor = fakeActor{}
var _ flow.Builder = (*fakeBuilder)(nil)
