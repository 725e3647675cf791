package recording

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// StopRecordingTool closes a recording session.
type StopRecordingTool struct {
	store *recorder.Store
}

// NewStopRecordingTool creates a new stop recording tool.
func NewStopRecordingTool(store *recorder.Store) *StopRecordingTool {
	return &StopRecordingTool{store: store}
}

// Name returns the tool name.
func (t *StopRecordingTool) Name() string {
	return "stop_recording"
}

// Description returns the tool description.
func (t *StopRecordingTool) Description() string {
	return "Close a recording session, stamping its end time. The session stays available for generation and saving until it is removed."
}

// Schema returns the tool's JSON schema.
func (t *StopRecordingTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "ID of the recording session to close",
			},
		},
		[]string{"session"},
	)
}

// StopRecordingInput represents the parameters for closing a session.
type StopRecordingInput struct {
	XMLName xml.Name `xml:"arguments"`
	Session string   `xml:"session"`
}

// Execute closes the session.
func (t *StopRecordingTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input StopRecordingInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Session == "" {
		return "", nil, fmt.Errorf("session id is required")
	}

	session, err := t.store.Close(input.Session)
	if err != nil {
		if errors.Is(err, recorder.ErrSessionNotFound) {
			return "", nil, fmt.Errorf("recording session %q not found", input.Session)
		}
		return "", nil, fmt.Errorf("failed to close recording: %w", err)
	}

	result := fmt.Sprintf(`Recording session closed

Session: %s
Actions recorded: %d
Ended: %s

Use generate_test to produce the test file, or save_recording to snapshot the session for later.`,
		session.ID,
		len(session.Actions),
		session.EndTime.Format("2006-01-02 15:04:05"),
	)

	return result, nil, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *StopRecordingTool) IsLoopBreaking() bool {
	return false
}
