// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import "fmt"

// TopologyError reports an invalid graph shape or subscription attempt
// caught synchronously at the point of the offending mutation: a self
// subscription, a double subscription, an Apply/Train port collision,
// publishing from a trained node, training a stateless node or a
// publisher, multiple trained forks in one group, a cyclic flow, an
// ambiguous or missing tail, a Future left in a validated segment, a
// non-linear composition, or unrelated segments passed to Root.
type TopologyError struct {
	Reason string
}

func (e *TopologyError) Error() string {
	return "topology error: " + e.Reason
}

func topologyErrorf(format string, args ...interface{}) error {
	return &TopologyError{Reason: fmt.Sprintf(format, args...)}
}

// IllegalStatefulError reports that a segment declared Stateless (see
// Stateless) reaches a stateful or derived Worker.
type IllegalStatefulError struct {
	Reason string
}

func (e *IllegalStatefulError) Error() string {
	return "illegal stateful use: " + e.Reason
}

func illegalStatefulErrorf(format string, args ...interface{}) error {
	return &IllegalStatefulError{Reason: fmt.Sprintf(format, args...)}
}

// AssemblyError reports a programming fault in the compiler: an argument
// position left unfilled, a key registered twice, or a merge collision
// during symbol emission. It never indicates a user-composition mistake -
// those are TopologyErrors raised earlier, at composition time.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "assembly error: " + e.Reason
}

// AssemblyErrorf builds an AssemblyError with a formatted reason. It is
// exported because the compile package (a different package, operating on
// this package's node/segment/Builder types) raises the same error kind.
func AssemblyErrorf(format string, args ...interface{}) error {
	return &AssemblyError{Reason: fmt.Sprintf(format, args...)}
}
