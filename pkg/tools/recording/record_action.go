package recording

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// RecordActionTool appends one performed browser action to a session log.
// The action itself has already been executed by its own adapter; this tool
// only records what happened.
type RecordActionTool struct {
	store *recorder.Store
	cfg   *config.Config
}

// NewRecordActionTool creates a new record action tool.
func NewRecordActionTool(store *recorder.Store, cfg *config.Config) *RecordActionTool {
	return &RecordActionTool{store: store, cfg: cfg}
}

// Name returns the tool name.
func (t *RecordActionTool) Name() string {
	return "record_action"
}

// Description returns the tool description.
func (t *RecordActionTool) Description() string {
	return "Append a performed browser action to a recording session. Pass the action's tool name, its parameters as additional elements, and optionally the result it reported."
}

// Schema returns the tool's JSON schema.
func (t *RecordActionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "ID of the recording session to append to",
			},
			"tool": map[string]interface{}{
				"type":        "string",
				"description": "Tool name of the performed action (e.g. 'browser_click')",
			},
			"result": map[string]interface{}{
				"type":        "string",
				"description": "Optional outcome reported by the action",
			},
		},
		[]string{"session", "tool"},
	)
}

// Reserved argument names; everything else in the bag is an action parameter.
const (
	argSession = "session"
	argTool    = "tool"
	argResult  = "result"
)

// Execute appends the action to the session log.
func (t *RecordActionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	bag, err := tools.XMLToMap(argsXML)
	if err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	sessionID := bag[argSession]
	toolName := bag[argTool]
	result := bag[argResult]
	if sessionID == "" {
		return "", nil, fmt.Errorf("session id is required")
	}
	if toolName == "" {
		return "", nil, fmt.Errorf("tool name is required")
	}

	params := make(map[string]string, len(bag))
	for name, value := range bag {
		if name == argSession || name == argTool || name == argResult {
			continue
		}
		params[name] = value
	}

	if !t.cfg.IsRecordable(toolName) {
		return fmt.Sprintf("Action %q is not recordable under the configured patterns; nothing was appended.", toolName), nil, nil
	}

	action, err := t.store.Append(sessionID, toolName, params, result)
	if err != nil {
		if errors.Is(err, recorder.ErrSessionNotFound) {
			return "", nil, fmt.Errorf("recording session %q not found", sessionID)
		}
		return "", nil, fmt.Errorf("failed to record action: %w", err)
	}

	return fmt.Sprintf("Recorded %s with %d parameter(s) at %s.",
		action.ToolName,
		len(action.Params),
		action.Timestamp.Format("15:04:05.000"),
	), nil, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *RecordActionTool) IsLoopBreaking() bool {
	return false
}
