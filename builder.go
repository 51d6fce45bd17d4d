// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"github.com/mitchellh/copystructure"
	"github.com/mitchellh/mapstructure"
)

// ActorFactory builds a concrete Actor from a decoded hyperparameter
// config of type C.
type ActorFactory[C any] func(cfg C) (Actor, error)

// Spec is a generic Builder: it carries hyperparameters as the
// map[string]interface{} the external world exchanges (get_params/
// set_params per §6) and decodes them into the actor's concrete config
// struct with mapstructure at Build time, exactly how the teacher
// decodes a VertexSerialization's attribute map into a typed struct in
// builder.go. The params map is defensively deep-copied with
// copystructure on construction so a caller mutating its original map
// afterwards cannot corrupt the Spec, mirroring packet.go's use of
// copystructure for the same defensive-snapshot purpose.
type Spec[C any] struct {
	factory  ActorFactory[C]
	stateful bool
	params   map[string]interface{}
}

var _ Builder = (*Spec[struct{}])(nil)

// NewSpec builds a Spec bound to factory, declaring statefulness
// up front (mirroring is_stateful being answered by inspecting the
// actor type without instantiating it) and a snapshot of params.
func NewSpec[C any](factory ActorFactory[C], stateful bool, params map[string]interface{}) (*Spec[C], error) {
	snapshot := params
	if params != nil {
		copied, err := copystructure.Copy(params)
		if err != nil {
			return nil, err
		}
		snapshot = copied.(map[string]interface{})
	}
	return &Spec[C]{factory: factory, stateful: stateful, params: snapshot}, nil
}

// Stateful implements Builder.
func (s *Spec[C]) Stateful() bool { return s.stateful }

// Params returns a defensive copy of the hyperparameters, the Go
// analogue of Actor.get_params().
func (s *Spec[C]) Params() (map[string]interface{}, error) {
	if s.params == nil {
		return nil, nil
	}
	copied, err := copystructure.Copy(s.params)
	if err != nil {
		return nil, err
	}
	return copied.(map[string]interface{}), nil
}

// WithParams returns a new Spec carrying replaced hyperparameters,
// the Go analogue of Actor.set_params(**kwargs) applied at the Builder
// level. The receiver is left unchanged.
func (s *Spec[C]) WithParams(params map[string]interface{}) (*Spec[C], error) {
	return NewSpec(s.factory, s.stateful, params)
}

// Build implements Builder: decodes the hyperparameter map into C and
// invokes the factory.
func (s *Spec[C]) Build() (Actor, error) {
	var cfg C
	if s.params != nil {
		if err := mapstructure.Decode(s.params, &cfg); err != nil {
			return nil, err
		}
	}
	return s.factory(cfg)
}
