// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package flow builds and compiles task graphs for supervised-learning
// pipelines.
//
// An expression such as normalize() >> classify() composes a tree of
// Operators. Calling Expand on the tail invokes every Operator's Compose
// against the accumulated left-hand Trunk, producing three parallel
// Segments (apply, train, label). Compose validates the result into a
// Composition and the compile package lowers it into an ordered sequence
// of Symbols addressing an external state store. Execution of those
// Symbols is left to an external runner; this package only builds and
// validates the graph.
package flow
