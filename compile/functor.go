// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"sync"

	"github.com/tessera-labs/flow"
)

// Functor is the Instruction that owns a lazily-instantiated Actor and
// delegates to one of its methods via an Action. Grounded on
// target/user.py's Functor namedtuple: "Functor object must be
// serializable" there maps here to identity-keyed aliasing (see
// Index.set) rather than structural equality, since Go interface values
// backed by distinct *Functor pointers are never == to one another even
// if they wrap the same Builder/Action pair.
type Functor struct {
	builder flow.Builder
	action  Action

	mu    sync.Mutex
	actor flow.Actor
}

var _ Instruction = (*Functor)(nil)

// NewFunctor returns a Functor that will build one Actor from builder
// (on first Execute) and run action against it.
func NewFunctor(builder flow.Builder, action Action) *Functor {
	return &Functor{builder: builder, action: action}
}

func (f *Functor) String() string {
	return fmt.Sprintf("%T.%s", f.builder, f.action)
}

// PresetState returns a new Functor wrapping f's action in a state
// preset, so its first execution argument is consumed as a state blob.
func (f *Functor) PresetState() *Functor {
	return NewFunctor(f.builder, &presetAction{label: "setstate", inner: f.action, set: setState})
}

// PresetParams returns a new Functor wrapping f's action in a
// hyperparameter preset, so its first execution argument is consumed as
// a params map.
func (f *Functor) PresetParams() *Functor {
	return NewFunctor(f.builder, &presetAction{label: "setparams", inner: f.action, set: setParams})
}

// Execute implements Instruction: builds the Actor lazily and caches it
// across calls, then delegates to the Action. It holds the Functor's
// mutex for the whole call, so concurrent calls on one Functor run one
// at a time; distinct Functors may run in parallel.
func (f *Functor) Execute(args ...interface{}) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.actor == nil {
		actor, err := f.builder.Build()
		if err != nil {
			return nil, err
		}
		f.actor = actor
	}
	return f.action.Perform(f.actor, args...)
}
