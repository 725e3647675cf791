package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// BaselineImport is the fixed minimal import every generated file starts
// from: the test declaration and assertion facilities.
const BaselineImport = "import { test, expect } from '@playwright/test';"

// TestCase is one complete generated test: a name, the translated source
// lines in session order, and the union of imports the lines require.
// A TestCase is built fresh per generation request and never mutated after
// rendering; only its rendered text is persisted.
type TestCase struct {
	Name  string
	Steps []string

	imports map[string]struct{}
}

// NewTestCase creates an empty test case seeded with the baseline import.
func NewTestCase(name string) *TestCase {
	return &TestCase{
		Name:    name,
		Steps:   make([]string, 0),
		imports: map[string]struct{}{BaselineImport: {}},
	}
}

// Add appends a translated step, folding its import requirements into the
// case's import set.
func (tc *TestCase) Add(step Step) {
	tc.Steps = append(tc.Steps, step.Line)
	for _, imp := range step.Imports {
		tc.imports[imp] = struct{}{}
	}
}

// Imports returns the import set in stable sorted order, baseline first.
func (tc *TestCase) Imports() []string {
	extra := make([]string, 0, len(tc.imports))
	for imp := range tc.imports {
		if imp != BaselineImport {
			extra = append(extra, imp)
		}
	}
	sort.Strings(extra)
	return append([]string{BaselineImport}, extra...)
}

// Render assembles the complete, self-contained source file: imports, one
// test declaration, and the steps in order. Given well-formed steps the
// output contains no unresolved placeholders.
func (tc *TestCase) Render() string {
	var b strings.Builder

	for _, imp := range tc.Imports() {
		b.WriteString(imp)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "test(%s, async ({ page }) => {\n", quote(tc.Name))
	for _, step := range tc.Steps {
		b.WriteString("  ")
		b.WriteString(step)
		b.WriteByte('\n')
	}
	b.WriteString("});\n")

	return b.String()
}
