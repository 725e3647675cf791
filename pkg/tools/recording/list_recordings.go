package recording

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// ListRecordingsTool lists live sessions and saved snapshots.
type ListRecordingsTool struct {
	store   *recorder.Store
	persist *recorder.Persistence
}

// NewListRecordingsTool creates a new list recordings tool.
func NewListRecordingsTool(store *recorder.Store, persist *recorder.Persistence) *ListRecordingsTool {
	return &ListRecordingsTool{store: store, persist: persist}
}

// Name returns the tool name.
func (t *ListRecordingsTool) Name() string {
	return "list_recordings"
}

// Description returns the tool description.
func (t *ListRecordingsTool) Description() string {
	return "List recording sessions: the live registry plus any snapshots saved to disk."
}

// Schema returns the tool's JSON schema.
func (t *ListRecordingsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute lists sessions and snapshots.
func (t *ListRecordingsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	sessions := t.store.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})

	var b strings.Builder
	if len(sessions) == 0 {
		b.WriteString("No live recording sessions.\n")
	} else {
		fmt.Fprintf(&b, "Live sessions (%d):\n", len(sessions))
		for _, s := range sessions {
			state := "open"
			if s.EndTime != nil {
				state = "closed"
			}
			fmt.Fprintf(&b, "- %s  %s  %d action(s)  %s\n",
				s.ID, state, len(s.Actions), s.StartTime.Format("2006-01-02 15:04:05"))
		}
	}

	snapshots := t.persist.List("")
	if len(snapshots) == 0 {
		b.WriteString("\nNo saved snapshots.")
	} else {
		sort.Strings(snapshots)
		fmt.Fprintf(&b, "\nSaved snapshots (%d):\n", len(snapshots))
		for _, id := range snapshots {
			fmt.Fprintf(&b, "- %s\n", id)
		}
	}

	return b.String(), map[string]interface{}{
		"live_count":     len(sessions),
		"snapshot_count": len(snapshots),
	}, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *ListRecordingsTool) IsLoopBreaking() bool {
	return false
}
