package recording

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// LoadRecordingTool restores a saved snapshot into the live registry.
type LoadRecordingTool struct {
	persist *recorder.Persistence
}

// NewLoadRecordingTool creates a new load recording tool.
func NewLoadRecordingTool(persist *recorder.Persistence) *LoadRecordingTool {
	return &LoadRecordingTool{persist: persist}
}

// Name returns the tool name.
func (t *LoadRecordingTool) Name() string {
	return "load_recording"
}

// Description returns the tool description.
func (t *LoadRecordingTool) Description() string {
	return "Load a saved recording snapshot back into the live registry, making it eligible for generation again."
}

// Schema returns the tool's JSON schema.
func (t *LoadRecordingTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "ID of the saved recording to load",
			},
			"directory": map[string]interface{}{
				"type":        "string",
				"description": "Snapshot directory override. Default: the configured sessions directory",
			},
		},
		[]string{"session"},
	)
}

// LoadRecordingInput represents the parameters for loading a snapshot.
type LoadRecordingInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	Directory string   `xml:"directory"`
}

// Execute loads the snapshot.
func (t *LoadRecordingTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input LoadRecordingInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Session == "" {
		return "", nil, fmt.Errorf("session id is required")
	}

	session, err := t.persist.Load(input.Session, input.Directory)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load recording: %w", err)
	}

	return fmt.Sprintf("Recording %s loaded with %d action(s); it is registered and ready for generation.",
		session.ID, len(session.Actions)), nil, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *LoadRecordingTool) IsLoopBreaking() bool {
	return false
}

// ImportRecordingTool loads a snapshot from an arbitrary path.
type ImportRecordingTool struct {
	persist *recorder.Persistence
}

// NewImportRecordingTool creates a new import recording tool.
func NewImportRecordingTool(persist *recorder.Persistence) *ImportRecordingTool {
	return &ImportRecordingTool{persist: persist}
}

// Name returns the tool name.
func (t *ImportRecordingTool) Name() string {
	return "import_recording"
}

// Description returns the tool description.
func (t *ImportRecordingTool) Description() string {
	return "Import a recording snapshot from an arbitrary file path. A snapshot without an id is assigned a fresh one before registration."
}

// Schema returns the tool's JSON schema.
func (t *ImportRecordingTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the snapshot file to import",
			},
		},
		[]string{"path"},
	)
}

// ImportRecordingInput represents the parameters for importing a snapshot.
type ImportRecordingInput struct {
	XMLName xml.Name `xml:"arguments"`
	Path    string   `xml:"path"`
}

// Execute imports the snapshot.
func (t *ImportRecordingTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ImportRecordingInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Path == "" {
		return "", nil, fmt.Errorf("snapshot path is required")
	}

	session, err := t.persist.Import(input.Path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to import recording: %w", err)
	}

	return fmt.Sprintf("Recording imported from %s as session %s (%d action(s)).",
		input.Path, session.ID, len(session.Actions)),
		map[string]interface{}{"session_id": session.ID}, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *ImportRecordingTool) IsLoopBreaking() bool {
	return false
}
