// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"errors"

	"github.com/google/uuid"
)

// StateStore is the external, out-of-scope persistent state registry:
// an opaque blob store addressed by group identifiers. The compiler
// consumes it only through this interface - grounded on
// original_source's target/system.py and the io/asset references in
// compiler.py.
type StateStore interface {
	// Contains reports whether key is a group whose state this store
	// persists; the compiler wires Loader/Dumper/Committer instructions
	// for exactly those groups. It does not mean a generation has been
	// committed yet: Load may still report MissingState for such a key.
	Contains(key uuid.UUID) (bool, error)

	// Load returns the blob stored under key. A missing key is reported
	// as a *MissingState error, not a generic error.
	Load(key uuid.UUID) (interface{}, error)

	// Dump writes blob and returns an absolute state identifier that can
	// later be passed to Commit.
	Dump(blob interface{}) (uuid.UUID, error)

	// Offset is the position of gid in the canonical persistent-group
	// ordering for the current composition, used to place the
	// Committer's positional argument.
	Offset(gid uuid.UUID) (int, error)

	// Commit atomically records a new generation from an ordered slice
	// of state identifiers, one per persistent group.
	Commit(stateIDs []uuid.UUID) error
}

// MissingState reports that StateStore.Load found no blob under key.
// Loader instructions treat this as "no prior state", logging rather
// than propagating it, grounded on system.py's Loader.execute catching
// forml.MissingError and logging a warning.
type MissingState struct {
	Key uuid.UUID
}

func (e *MissingState) Error() string {
	return "no state found for key " + e.Key.String()
}

// IsMissingState reports whether err (or one it wraps) is a
// MissingState.
func IsMissingState(err error) bool {
	var missing *MissingState
	return errors.As(err, &missing)
}
