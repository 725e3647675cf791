package recording

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// SaveRecordingTool snapshots a session to durable storage.
type SaveRecordingTool struct {
	persist *recorder.Persistence
}

// NewSaveRecordingTool creates a new save recording tool.
func NewSaveRecordingTool(persist *recorder.Persistence) *SaveRecordingTool {
	return &SaveRecordingTool{persist: persist}
}

// Name returns the tool name.
func (t *SaveRecordingTool) Name() string {
	return "save_recording"
}

// Description returns the tool description.
func (t *SaveRecordingTool) Description() string {
	return "Save a recording session as a durable JSON snapshot, independent of the process lifetime."
}

// Schema returns the tool's JSON schema.
func (t *SaveRecordingTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "ID of the recording session to save",
			},
			"directory": map[string]interface{}{
				"type":        "string",
				"description": "Snapshot directory override. Default: the configured sessions directory",
			},
		},
		[]string{"session"},
	)
}

// SaveRecordingInput represents the parameters for saving a session.
type SaveRecordingInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	Directory string   `xml:"directory"`
}

// Execute saves the snapshot.
func (t *SaveRecordingTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input SaveRecordingInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Session == "" {
		return "", nil, fmt.Errorf("session id is required")
	}

	location, err := t.persist.Save(input.Session, input.Directory)
	if err != nil {
		if errors.Is(err, recorder.ErrSessionNotFound) {
			return "", nil, fmt.Errorf("recording session %q not found", input.Session)
		}
		return "", nil, fmt.Errorf("failed to save recording: %w", err)
	}

	return fmt.Sprintf("Recording %s saved to %s.", input.Session, location),
		map[string]interface{}{"location": location}, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *SaveRecordingTool) IsLoopBreaking() bool {
	return false
}
