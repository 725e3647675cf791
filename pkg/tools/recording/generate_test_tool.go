package recording

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/entrhq/scribe/pkg/codegen"
	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// GenerateTestTool turns a recorded session into an executable test file.
type GenerateTestTool struct {
	store     *recorder.Store
	generator *codegen.Generator
	cfg       *config.Config
}

// NewGenerateTestTool creates a new generate test tool.
func NewGenerateTestTool(store *recorder.Store, generator *codegen.Generator, cfg *config.Config) *GenerateTestTool {
	return &GenerateTestTool{store: store, generator: generator, cfg: cfg}
}

// Name returns the tool name.
func (t *GenerateTestTool) Name() string {
	return "generate_test"
}

// Description returns the tool description.
func (t *GenerateTestTool) Description() string {
	return "Translate a recording session's action log into a complete Playwright test file and write it to the output directory."
}

// Schema returns the tool's JSON schema.
func (t *GenerateTestTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"session": map[string]interface{}{
				"type":        "string",
				"description": "ID of the recording session to generate from",
			},
			"output_dir": map[string]interface{}{
				"type":        "string",
				"description": "Directory to write the test file into. Default: the configured output directory",
			},
		},
		[]string{"session"},
	)
}

// GenerateTestInput represents the parameters for generation.
type GenerateTestInput struct {
	XMLName   xml.Name `xml:"arguments"`
	Session   string   `xml:"session"`
	OutputDir string   `xml:"output_dir"`
}

// Execute generates and writes the test file.
func (t *GenerateTestTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input GenerateTestInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Session == "" {
		return "", nil, fmt.Errorf("session id is required")
	}

	session, err := t.store.Get(input.Session)
	if err != nil {
		if errors.Is(err, recorder.ErrSessionNotFound) {
			return "", nil, fmt.Errorf("recording session %q not found", input.Session)
		}
		return "", nil, err
	}

	opts := codegen.Options{
		Prefix:          t.cfg.TestPrefix,
		OutputDir:       t.cfg.OutputDir,
		ScriptExtension: t.cfg.ScriptExtension,
	}
	if input.OutputDir != "" {
		opts.OutputDir = input.OutputDir
	}

	path, result, err := t.generator.Write(session, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate test: %w", err)
	}

	message := fmt.Sprintf(`Test generated successfully

- Test: %s
- File: %s
- Steps: %d of %d actions translated`,
		result.TestName,
		path,
		len(session.Actions)-len(result.Diagnostics),
		len(session.Actions),
	)
	if len(result.Diagnostics) > 0 {
		message += fmt.Sprintf("\n- Skipped: %d unsupported action(s)", len(result.Diagnostics))
	}

	return message, map[string]interface{}{
		"path":        path,
		"diagnostics": len(result.Diagnostics),
	}, nil
}

// IsLoopBreaking returns whether this tool breaks the caller's loop.
func (t *GenerateTestTool) IsLoopBreaking() bool {
	return false
}
