// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/tessera-labs/flow"
)

// Action is a functor action handler: the concrete method a Functor
// invokes on its lazily-built Actor. Grounded on target/user.py's
// Action ABC and its Apply/Train/Preset subclasses.
type Action interface {
	fmt.Stringer

	// Perform runs the action against actor with the remaining
	// (already-dereferenced) arguments.
	Perform(actor flow.Actor, args ...interface{}) (interface{}, error)
}

// applyAction invokes Actor.Apply - the Apply functor action.
type applyAction struct{}

func (applyAction) String() string { return "apply" }

func (applyAction) Perform(actor flow.Actor, args ...interface{}) (interface{}, error) {
	return actor.Apply(args...)
}

// trainAction invokes Actor.Train and returns the resulting state blob -
// the Train functor action. Only ever installed for the trained fork of
// a stateful group.
type trainAction struct{}

func (trainAction) String() string { return "train" }

func (trainAction) Perform(actor flow.Actor, args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, flow.AssemblyErrorf("train action requires exactly 2 arguments (features, labels), got %d", len(args))
	}
	if err := actor.Train(args[0], args[1]); err != nil {
		return nil, err
	}
	return actor.GetState()
}

// presetAction composes an inner Action with a setter that consumes the
// leading argument as a state or hyperparameter blob before delegating
// the rest. Grounded on target/user.py's generic Preset[Value] base and
// its SetState/SetParams subclasses.
type presetAction struct {
	label string
	inner Action
	set   func(actor flow.Actor, value interface{}) error
}

func (p *presetAction) String() string { return p.label + "." + p.inner.String() }

func (p *presetAction) Perform(actor flow.Actor, args ...interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, flow.AssemblyErrorf("preset action %s requires a leading preset argument", p)
	}
	value, rest := args[0], args[1:]
	if value != nil {
		if err := p.set(actor, value); err != nil {
			return nil, err
		}
	}
	return p.inner.Perform(actor, rest...)
}

// setState installs a state blob via the privileged state setter that
// preserves hyperparameters: read params, set state, re-write params -
// grounded on target/user.py's SetState.set, which reads get_params()
// before set_state() and restores it with set_params() afterward so a
// state-bearing set_state implementation cannot clobber the actor's
// construction hyperparameters.
func setState(actor flow.Actor, value interface{}) error {
	params, err := actor.GetParams()
	if err != nil {
		return err
	}
	if err := actor.SetState(value); err != nil {
		return err
	}
	return actor.SetParams(params)
}

// setParams installs a hyperparameter map, grounded on target/user.py's
// SetParams.set.
func setParams(actor flow.Actor, value interface{}) error {
	params, ok := value.(map[string]interface{})
	if !ok {
		return flow.AssemblyErrorf("params preset expects a map[string]interface{}, got %T", value)
	}
	return actor.SetParams(params)
}
