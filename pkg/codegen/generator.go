package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/recorder"
)

// Default generation settings used when Options leaves a field empty.
const (
	DefaultPrefix          = "recorded"
	DefaultScriptExtension = "spec.ts"

	// startTimeLayout normalizes the session start time into the test name
	startTimeLayout = "2006-01-02 15:04:05"
)

// Options configures one generation request.
type Options struct {
	// Prefix is the configured test name prefix (default "recorded")
	Prefix string

	// OutputDir is where Write places the generated file
	OutputDir string

	// ScriptExtension is the generated file's extension, without the
	// leading dot (default "spec.ts")
	ScriptExtension string
}

// Result is the outcome of one generation request.
type Result struct {
	// TestName is the assembled test's name
	TestName string

	// Source is the complete rendered file content
	Source string

	// Diagnostics lists the actions that produced no source line
	Diagnostics []Diagnostic
}

// Generator turns a recorded session into an executable Playwright test
// file. Generation is a pure function of (actions, options): identical input
// always yields identical output text.
type Generator struct {
	translator *Translator
	log        *logging.Logger
}

// NewGenerator creates a generator over the built-in action table.
func NewGenerator() *Generator {
	return NewGeneratorWith(NewTranslator())
}

// NewGeneratorWith creates a generator over a custom translator, letting
// callers extend the action table before generating.
func NewGeneratorWith(translator *Translator) *Generator {
	log, _ := logging.NewLogger("codegen")
	return &Generator{
		translator: translator,
		log:        log,
	}
}

// Generate translates the session's action log and assembles it into one
// self-contained test source. Unsupported actions are skipped with a
// diagnostic; the rest of the log translates normally.
func (g *Generator) Generate(session *recorder.Session, opts Options) (*Result, error) {
	if session == nil {
		return nil, fmt.Errorf("codegen: nil session")
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	name := prefix + " " + session.StartTime.UTC().Format(startTimeLayout)
	tc := NewTestCase(name)

	var diagnostics []Diagnostic
	for i, action := range session.Actions {
		step, ok := g.translator.Translate(action)
		if !ok {
			diag := Diagnostic{
				Index:    i,
				ToolName: action.ToolName,
				Message:  fmt.Sprintf("unsupported action %q, no statement emitted", action.ToolName),
			}
			diagnostics = append(diagnostics, diag)
			g.log.Warnf("session %s: %s", session.ID, diag.Message)
			continue
		}
		tc.Add(step)
	}

	return &Result{
		TestName:    name,
		Source:      tc.Render(),
		Diagnostics: diagnostics,
	}, nil
}

// Write generates the session's test and writes it to
// {outputDir}/{sanitizedPrefix}_{sessionID}.{extension}, creating the
// directory if needed. It returns the written path alongside the result.
func (g *Generator) Write(session *recorder.Session, opts Options) (string, *Result, error) {
	result, err := g.Generate(session, opts)
	if err != nil {
		return "", nil, err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ext := opts.ScriptExtension
	if ext == "" {
		ext = DefaultScriptExtension
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
			return "", nil, fmt.Errorf("codegen: create output directory: %w", err)
		}
	}

	filename := fmt.Sprintf("%s_%s.%s", sanitizePrefix(prefix), session.ID, ext)
	path := filepath.Join(opts.OutputDir, filename)

	if err := os.WriteFile(path, []byte(result.Source), 0o600); err != nil {
		return "", nil, fmt.Errorf("codegen: write %s: %w", path, err)
	}

	return path, result, nil
}

// sanitizePrefix reduces the configured prefix to a filesystem-safe token:
// lowercase, with anything outside [a-z0-9-] collapsed to underscores.
func sanitizePrefix(prefix string) string {
	lowered := strings.ToLower(prefix)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
