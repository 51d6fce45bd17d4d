// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package compile lowers a validated flow.Segment into an ordered
// sequence of Symbols addressing an external flow.StateStore: the
// "compiler" component (§4.5 of the core spec). It is split out of the
// flow package the same way original_source splits forml/flow/_code from
// forml/flow/_graph and forml/flow/pipeline - the compiler is a
// consumer of the graph model, not part of it.
package compile

import (
	"fmt"
	"time"
)

// Instruction is the executable unit of a compiled Symbol: a pure
// Execute(args) -> (value, error) interface implemented by the Apply/
// Train functor and the Loader/Dumper/Committer/Getter system
// instructions. Grounded on target/__init__.py's Instruction ABC.
type Instruction interface {
	fmt.Stringer

	Execute(args ...interface{}) (interface{}, error)
}

// Invoke runs instr with the before/after debug tracing and failure
// logging target/__init__.py's Instruction.__call__ wraps every
// execution in: a debug line before, a debug line with elapsed time
// after, and an error-level log carrying a truncated argument repr
// before the failure is propagated. The runner (out of scope) is
// expected to call through Invoke rather than Instruction.Execute
// directly so this tracing applies uniformly.
func Invoke(instr Instruction, args ...interface{}) (interface{}, error) {
	logger.Debugf("%s invoked (%d args)", instr, len(args))
	start := time.Now()

	result, err := instr.Execute(args...)
	if err != nil {
		logger.WithError(err).Errorf("instruction %s failed processing arguments: %s", instr, truncateArgs(args))
		return nil, err
	}

	logger.Debugf("%s completed (%s)", instr, time.Since(start))
	return result, nil
}

func truncateArgs(args []interface{}) string {
	s := fmt.Sprint(args)
	const max = 1024
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Symbol is the main unit of compiled, runnable code: an Instruction
// plus the ordered Instructions whose output constitutes its positional
// arguments. Grounded on target/__init__.py's Symbol namedtuple.
type Symbol struct {
	Instruction Instruction
	Arguments   []Instruction
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s%v", s.Instruction, s.Arguments)
}
