package recorder

import (
	"time"
)

// Session is an ordered recording of browser actions bounded by start/end
// timestamps. A session is owned by the Store while it is open; snapshots of
// it may additionally live on disk (see Persistence).
type Session struct {
	// ID is the unique identifier for this session (uuid v4)
	ID string `json:"id"`

	// Actions is the append-only, chronologically ordered action log
	Actions []Action `json:"actions"`

	// StartTime is when the session was opened
	StartTime time.Time `json:"startTime"`

	// EndTime is set once by Close; nil while the session is open
	EndTime *time.Time `json:"endTime,omitempty"`

	// Options are the options the session was opened with
	Options SessionOptions `json:"options"`
}

// Action is one recorded invocation of a browser capability. Actions are
// immutable once appended.
type Action struct {
	// ToolName is the capability that was invoked (e.g. "browser_click")
	ToolName string `json:"toolName"`

	// Params is the parameter bag the capability was invoked with. Values
	// are treated as opaque text throughout recording and generation.
	Params map[string]string `json:"params,omitempty"`

	// Timestamp is when the action was appended
	Timestamp time.Time `json:"timestamp"`

	// Result optionally records the outcome reported by the capability
	Result string `json:"result,omitempty"`
}

// SessionOptions configures a new recording session.
type SessionOptions struct {
	// Name is an optional human-readable label for the recording
	Name string `json:"name,omitempty"`

	// BaseURL optionally records the entry point the recording started from
	BaseURL string `json:"baseUrl,omitempty"`

	// Headless records whether the backing browser ran headless
	Headless bool `json:"headless,omitempty"`

	// ViewportWidth and ViewportHeight record the browser viewport.
	// Zero means the launcher default.
	ViewportWidth  int `json:"viewportWidth,omitempty"`
	ViewportHeight int `json:"viewportHeight,omitempty"`
}

// Viewport bounds accepted by Validate. Mirrors the launch-side limits so a
// recorded session can always be replayed with the options it was opened with.
const (
	MinViewportDimension = 100
	MaxViewportDimension = 5000
)

// Validate checks the options before any session is created.
func (o SessionOptions) Validate() error {
	if o.ViewportWidth != 0 && (o.ViewportWidth < MinViewportDimension || o.ViewportWidth > MaxViewportDimension) {
		return &ValidationError{
			Field:  "viewportWidth",
			Reason: "must be between 100 and 5000 pixels",
		}
	}
	if o.ViewportHeight != 0 && (o.ViewportHeight < MinViewportDimension || o.ViewportHeight > MaxViewportDimension) {
		return &ValidationError{
			Field:  "viewportHeight",
			Reason: "must be between 100 and 5000 pixels",
		}
	}
	return nil
}

// clone returns a deep copy of the session for callers to hold without
// aliasing the store's live action log, parameter bags included.
func (s *Session) clone() *Session {
	out := *s
	out.Actions = make([]Action, len(s.Actions))
	copy(out.Actions, s.Actions)
	for i := range out.Actions {
		if len(out.Actions[i].Params) == 0 {
			continue
		}
		params := make(map[string]string, len(out.Actions[i].Params))
		for k, v := range out.Actions[i].Params {
			params[k] = v
		}
		out.Actions[i].Params = params
	}
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return &out
}
