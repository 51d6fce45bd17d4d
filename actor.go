// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

// Actor is the external, out-of-scope contract for a single unit of user
// code: a model, transformer, or scorer. The core never implements one -
// it only calls through this interface from compiled instructions -
// grounded on original_source's _task.py Actor ABC.
type Actor interface {
	// Apply runs inference given one argument per input port.
	Apply(features ...interface{}) (interface{}, error)

	// Train fits the actor on features and labels. Only ever called on
	// an Actor whose Builder reports Stateful(); callers must not invoke
	// it otherwise.
	Train(features, labels interface{}) error

	// GetParams returns this actor's hyperparameters.
	GetParams() (map[string]interface{}, error)

	// SetParams restores hyperparameters, e.g. after a state-preset
	// wrapper has temporarily overwritten them to install trained state.
	SetParams(params map[string]interface{}) error

	// GetState returns the actor's trained state as an opaque blob.
	// Only called on stateful actors after Train.
	GetState() (interface{}, error)

	// SetState installs a previously dumped state blob.
	SetState(state interface{}) error
}

// Builder is an opaque, hashable, serializable factory that produces an
// Actor instance bound to fixed construction arguments. It is the handle
// a Worker holds instead of an Actor itself, so that a group of forks can
// share one Builder and lazily instantiate independent Actor copies only
// when a compiled functor first executes.
type Builder interface {
	// Stateful answers whether actors built from this Builder are
	// trainable, without instantiating one.
	Stateful() bool

	// Build produces a new Actor instance.
	Build() (Actor, error)
}
