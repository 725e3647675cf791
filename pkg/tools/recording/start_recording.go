package recording

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// StartRecordingTool opens a new recording session.
type StartRecordingTool struct {
	store *recorder.Store
}

// NewStartRecordingTool creates a new start recording tool.
func NewStartRecordingTool(store *recorder.Store) *StartRecordingTool {
	return &StartRecordingTool{store: store}
}

// Name returns the tool name.
func (t *StartRecordingTool) Name() string {
	return "start_recording"
}

// Description returns the tool description.
func (t *StartRecordingTool) Description() string {
	return "Open a new recording session. Browser actions performed afterwards can be appended to the session log and later generated into an executable test."
}

// Schema returns the tool's JSON schema.
func (t *StartRecordingTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Optional human-readable label for the recording (e.g. 'checkout flow')",
			},
			"base_url": map[string]interface{}{
				"type":        "string",
				"description": "Entry point URL the recording starts from",
			},
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Browser viewport width in pixels. Default: 1280",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Browser viewport height in pixels. Default: 720",
			},
		},
		nil,
	)
}

// StartRecordingInput defines the input parameters for opening a session.
type StartRecordingInput struct {
	XMLName xml.Name `xml:"arguments"`
	Name    string   `xml:"name"`
	BaseURL string   `xml:"base_url"`
	Width   *int     `xml:"width"`
	Height  *int     `xml:"height"`
}

// Execute opens a recording session and reports its id.
func (t *StartRecordingTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input StartRecordingInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	opts := recorder.SessionOptions{
		Name:    input.Name,
		BaseURL: input.BaseURL,
	}
	if input.Width != nil {
		opts.ViewportWidth = *input.Width
	}
	if input.Height != nil {
		opts.ViewportHeight = *input.Height
	}

	session, err := t.store.Open(opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open recording: %w", err)
	}

	result := fmt.Sprintf(`Recording session opened

Session Details:
- ID: %s
- Name: %s
- Started: %s

Append actions with record_action as they are performed, then call generate_test to produce the test file.`,
		session.ID,
		session.Options.Name,
		session.StartTime.Format("2006-01-02 15:04:05"),
	)

	return result, map[string]interface{}{"session_id": session.ID}, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *StartRecordingTool) IsLoopBreaking() bool {
	return false
}
