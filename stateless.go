// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

// Stateless asserts that no node reachable on seg is trained or derived:
// it guards segments whose actors must not carry state, e.g. a
// label-extraction branch. Grounded on clean.py's Stateless.ensure,
// which raises "Illegal use of stateful node".
func Stateless(seg *Segment) error {
	return seg.Each(func(n Node) error {
		w, ok := n.(*Worker)
		if !ok {
			return nil
		}
		if w.Trained() {
			return illegalStatefulErrorf("node %s is trained in a segment declared stateless", w)
		}
		if w.Derived() {
			return illegalStatefulErrorf("node %s is derived (reads group state) in a segment declared stateless", w)
		}
		return nil
	})
}
