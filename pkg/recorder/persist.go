package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/entrhq/scribe/pkg/logging"
)

const (
	snapshotPrefix = "session-"
	snapshotSuffix = ".json"
)

// Persistence saves and restores session snapshots, independent of the
// process lifetime. Snapshots live as one JSON record per session under a
// sessions directory, and round-trip byte-for-byte through Save/Load.
type Persistence struct {
	store *Store
	dir   string
	log   *logging.Logger
}

// NewPersistence creates a persistence layer over the given store.
// dir is the default sessions directory; every method accepts a per-call
// override.
func NewPersistence(store *Store, dir string) *Persistence {
	log, _ := logging.NewLogger("persistence")
	return &Persistence{
		store: store,
		dir:   dir,
		log:   log,
	}
}

// resolveDir picks the per-call override when given, the default otherwise.
func (p *Persistence) resolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	return p.dir
}

// snapshotPath returns the deterministic on-disk location for a session id.
func (p *Persistence) snapshotPath(id, dir string) string {
	return filepath.Join(p.resolveDir(dir), snapshotPrefix+id+snapshotSuffix)
}

// Save serializes the full session to its snapshot path, creating the
// destination directory if absent. It returns the written location.
func (p *Persistence) Save(id, dir string) (string, error) {
	session, err := p.store.Get(id)
	if err != nil {
		return "", err
	}

	target := p.resolveDir(dir)
	if err := os.MkdirAll(target, 0o750); err != nil {
		return "", &SnapshotError{ID: id, Path: target, Err: err}
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", &SnapshotError{ID: id, Path: target, Err: err}
	}

	path := p.snapshotPath(id, dir)

	// Write via a temp file and rename so a crash never leaves a
	// half-written snapshot behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", &SnapshotError{ID: id, Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &SnapshotError{ID: id, Path: path, Err: err}
	}

	return path, nil
}

// Load reads the snapshot for id and re-registers it into the live store,
// making it immediately eligible for generation again. Malformed snapshots
// fail closed with a SnapshotError naming the id and path.
func (p *Persistence) Load(id, dir string) (*Session, error) {
	path := p.snapshotPath(id, dir)

	session, err := p.decode(path)
	if err != nil {
		if snapErr, ok := err.(*SnapshotError); ok {
			snapErr.ID = id
		}
		return nil, err
	}

	if session.ID != id {
		return nil, &SnapshotError{
			ID:   id,
			Path: path,
			Err:  fmt.Errorf("snapshot id %q does not match", session.ID),
		}
	}

	p.store.Register(session)
	return session, nil
}

// List enumerates the ids of available snapshots. Listing is advisory: a
// missing directory or a read failure is logged and yields an empty slice,
// never an error.
func (p *Persistence) List(dir string) []string {
	target := p.resolveDir(dir)

	entries, err := os.ReadDir(target)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Warnf("listing snapshots in %s: %v", target, err)
		}
		return []string{}
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Import loads a snapshot from an arbitrary location and registers it.
// A record lacking an id is assigned a fresh one before registration; any
// other malformation fails closed.
func (p *Persistence) Import(path string) (*Session, error) {
	session, err := p.decode(path)
	if err != nil {
		return nil, err
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	p.store.Register(session)
	return session, nil
}

// decode reads and validates one snapshot record. Validation fails closed:
// a snapshot that cannot be decoded, or whose actions are missing their tool
// names, is rejected rather than repaired.
func (p *Persistence) decode(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Err: err}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &SnapshotError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	for i, action := range session.Actions {
		if action.ToolName == "" {
			return nil, &SnapshotError{
				Path: path,
				Err:  fmt.Errorf("action %d has no tool name", i),
			}
		}
	}
	if session.Actions == nil {
		session.Actions = make([]Action, 0)
	}

	return &session, nil
}
