package recorder

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned by store operations that reference an
// unknown session id. A missing session is an expected race (for example an
// append arriving after removal), so callers should treat this as a soft
// condition and recover rather than abort.
var ErrSessionNotFound = errors.New("recorder: session not found")

// ValidationError reports malformed session options. It is returned before
// any session is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recorder: invalid %s: %s", e.Field, e.Reason)
}

// SnapshotError reports a failure reading or decoding a session snapshot.
// It always names the offending id or path.
type SnapshotError struct {
	ID   string
	Path string
	Err  error
}

func (e *SnapshotError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("recorder: snapshot %s (%s): %v", e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("recorder: snapshot %s: %v", e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}
