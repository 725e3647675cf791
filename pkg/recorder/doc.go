// Package recorder implements session-based recording of browser actions.
//
// A recording session is an ordered, append-only log of the actions an
// automation run performed, bounded by start and end timestamps. The package
// is built around three pieces:
//
//  1. Session/Action: the data model. Actions are immutable once appended and
//     their insertion order is treated as chronological replay order.
//  2. Store: the caller-owned in-memory registry of open and closed sessions.
//     All mutation of a session's action log is serialized through the store,
//     so concurrent appends are totally ordered and never lost.
//  3. Persistence: durable JSON snapshots of sessions, saved one record per
//     session and restorable into the live store for later regeneration.
//
// # Lifecycle
//
// A session is created by Open, mutated only by Append, marked ended by
// Close (which stamps EndTime exactly once), and leaves the registry only
// through an explicit Remove. Ending a session does not delete it: a closed
// session can still be snapshotted and used for generation.
//
// # Error semantics
//
// Operations that reference an unknown session id return ErrSessionNotFound
// as a soft error value. A missing session is an expected race, not a fault;
// callers should recover rather than abort. Malformed snapshots, by contrast,
// fail closed with a SnapshotError naming the offending id or path.
//
// # Example Usage
//
//	store := recorder.NewStore()
//	session, err := store.Open(recorder.SessionOptions{Name: "checkout flow"})
//	_, err = store.Append(session.ID, "browser_navigate", map[string]string{
//	    "url": "https://example.com",
//	}, "")
//	_, err = store.Close(session.ID)
//
//	persist := recorder.NewPersistence(store, "artifacts/sessions")
//	location, err := persist.Save(session.ID, "")
package recorder
