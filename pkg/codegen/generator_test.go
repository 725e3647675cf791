package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/scribe/pkg/recorder"
)

func sampleSession(t *testing.T, actions ...recorder.Action) *recorder.Session {
	t.Helper()
	start, err := time.Parse(time.RFC3339, "2026-01-02T15:04:05Z")
	require.NoError(t, err)
	return &recorder.Session{
		ID:        "11111111-2222-3333-4444-555555555555",
		Actions:   actions,
		StartTime: start,
	}
}

func TestGenerateNavigateThenClick(t *testing.T) {
	g := NewGenerator()
	session := sampleSession(t,
		recorder.Action{ToolName: "navigate", Params: map[string]string{"url": "https://example.com"}},
		recorder.Action{ToolName: "click", Params: map[string]string{"selector": "#btn"}},
	)

	result, err := g.Generate(session, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, "recorded 2026-01-02 15:04:05", result.TestName)

	gotoIdx := strings.Index(result.Source, "await page.goto('https://example.com');")
	clickIdx := strings.Index(result.Source, "await page.click('#btn');")
	require.GreaterOrEqual(t, gotoIdx, 0)
	require.GreaterOrEqual(t, clickIdx, 0)
	assert.Less(t, gotoIdx, clickIdx, "steps must keep session order")
}

func TestGenerateUnsupportedActionIsDiagnosed(t *testing.T) {
	g := NewGenerator()
	session := sampleSession(t,
		recorder.Action{ToolName: "frobnicate", Params: map[string]string{}},
		recorder.Action{ToolName: "browser_click", Params: map[string]string{"selector": "#ok"}},
	)

	result, err := g.Generate(session, Options{})
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 0, result.Diagnostics[0].Index)
	assert.Equal(t, "frobnicate", result.Diagnostics[0].ToolName)

	assert.NotContains(t, result.Source, "frobnicate")
	assert.Contains(t, result.Source, "await page.click('#ok');")
}

func TestGenerateMissingSelectorStillEmitsStatement(t *testing.T) {
	g := NewGenerator()
	session := sampleSession(t,
		recorder.Action{ToolName: "browser_click", Params: map[string]string{}},
	)

	result, err := g.Generate(session, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Contains(t, result.Source, "await page.click('');")
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewGenerator()
	session := sampleSession(t,
		recorder.Action{ToolName: "browser_navigate", Params: map[string]string{"url": "https://example.com"}},
		recorder.Action{ToolName: "frobnicate"},
		recorder.Action{ToolName: "browser_fill", Params: map[string]string{"selector": "#q", "value": "go"}},
	)

	first, err := g.Generate(session, Options{Prefix: "smoke"})
	require.NoError(t, err)
	second, err := g.Generate(session, Options{Prefix: "smoke"})
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source, "identical input must yield identical output text")
}

func TestGenerateNilSession(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate(nil, Options{})
	assert.Error(t, err)
}

func TestWriteProducesExpectedPath(t *testing.T) {
	g := NewGenerator()
	dir := t.TempDir()
	session := sampleSession(t,
		recorder.Action{ToolName: "browser_navigate", Params: map[string]string{"url": "https://example.com"}},
	)

	path, result, err := g.Write(session, Options{
		Prefix:    "Smoke Test",
		OutputDir: filepath.Join(dir, "out"),
	})
	require.NoError(t, err)

	// Prefix is sanitized for the filename but not the test name
	assert.Equal(t, filepath.Join(dir, "out", "smoke_test_"+session.ID+".spec.ts"), path)
	assert.Equal(t, "Smoke Test 2026-01-02 15:04:05", result.TestName)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, result.Source, string(content))
}

func TestSanitizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"recorded", "recorded"},
		{"Smoke Test", "smoke_test"},
		{"e2e-suite", "e2e-suite"},
		{"weird/!chars", "weird__chars"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizePrefix(tt.in), tt.in)
	}
}
