// Package tools defines the capability-invocation convention through which
// the recording core is reached. The upstream orchestration layer invokes
// each capability with XML-formatted structured arguments and receives either
// a success payload or an explicit error; it never touches the core packages
// directly.
package tools

import "context"

// Tool represents a capability exposed to the orchestration layer.
//
// Example invocation arguments:
//
//	<arguments>
//	  <session>6f1c...-...</session>
//	  <tool>browser_click</tool>
//	  <selector>#submit</selector>
//	</arguments>
type Tool interface {
	// Name returns the unique identifier for this tool (e.g. "record_action")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given XML arguments.
	// Returns: (result string, metadata map, error)
	// Metadata is optional and can be nil.
	Execute(ctx context.Context, argumentsXML []byte) (string, map[string]interface{}, error)

	// IsLoopBreaking indicates whether this tool should terminate the
	// caller's invocation loop
	IsLoopBreaking() bool
}

// BaseToolSchema creates a common JSON schema structure for a tool
// with the given properties and required fields
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
