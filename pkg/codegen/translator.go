package codegen

import (
	"fmt"
	"strings"

	"github.com/entrhq/scribe/pkg/recorder"
)

// Step is one translated source line plus any imports the line needs beyond
// the assembler's baseline.
type Step struct {
	Line    string
	Imports []string
}

// Diagnostic reports an action that produced no source line. Diagnostics are
// advisory: generation continues past them.
type Diagnostic struct {
	// Index is the action's position in the session log
	Index int

	// ToolName is the unsupported tool name
	ToolName string

	// Message describes why no line was emitted
	Message string
}

// ActionSpec declares how one action kind translates to source. The spec is
// pure data: the statement is a Sprintf template and Params names the action
// parameters substituted into it, in template order. A parameter absent from
// a recorded action is substituted with the empty placeholder, so a known
// kind always emits its full statement.
type ActionSpec struct {
	// Kind is the canonical tool name
	Kind string

	// Aliases are legacy tool names that resolve to the same statement
	Aliases []string

	// Params are the parameter names consumed by Template, in order
	Params []string

	// Template is the statement with one %s verb per parameter. Parameter
	// values arrive already quoted.
	Template string

	// Imports are extra import lines the emitted statement requires
	Imports []string
}

// EmptyPlaceholder is substituted for any declared parameter missing from a
// recorded action. The statement is always emitted in full; a missing
// selector becomes '' rather than a skipped line.
const EmptyPlaceholder = ""

// Translator maps recorded actions to generated source lines through a
// closed, registered lookup table keyed by tool name. New action kinds are
// added by registering an ActionSpec, not by editing a dispatch chain.
type Translator struct {
	specs map[string]ActionSpec
}

// NewTranslator creates a translator preloaded with the built-in action
// table.
func NewTranslator() *Translator {
	t := &Translator{specs: make(map[string]ActionSpec)}
	for _, spec := range builtinSpecs {
		if err := t.Register(spec); err != nil {
			// The built-in table is static; a collision here is a
			// programming error.
			panic(err)
		}
	}
	return t
}

// Register adds an action kind to the table under its canonical name and
// every alias. Registering a name that is already taken is an error.
func (t *Translator) Register(spec ActionSpec) error {
	if spec.Kind == "" {
		return fmt.Errorf("codegen: action spec has no kind")
	}
	if spec.Template == "" {
		return fmt.Errorf("codegen: action spec %q has no template", spec.Kind)
	}
	if strings.Count(spec.Template, "%s") != len(spec.Params) {
		return fmt.Errorf("codegen: action spec %q declares %d params for %d template slots",
			spec.Kind, len(spec.Params), strings.Count(spec.Template, "%s"))
	}

	names := append([]string{spec.Kind}, spec.Aliases...)
	for _, name := range names {
		if _, exists := t.specs[name]; exists {
			return fmt.Errorf("codegen: tool name %q already registered", name)
		}
	}
	for _, name := range names {
		t.specs[name] = spec
	}
	return nil
}

// Supported reports whether the tool name has a table entry.
func (t *Translator) Supported(toolName string) bool {
	_, ok := t.specs[toolName]
	return ok
}

// Translate maps one recorded action to zero or one source line. The second
// return is false when the tool name has no table entry; the caller records
// that as a diagnostic and moves on.
func (t *Translator) Translate(action recorder.Action) (Step, bool) {
	spec, ok := t.specs[action.ToolName]
	if !ok {
		return Step{}, false
	}

	args := make([]interface{}, len(spec.Params))
	for i, name := range spec.Params {
		value := EmptyPlaceholder
		if action.Params != nil {
			if v, present := action.Params[name]; present {
				value = v
			}
		}
		args[i] = quote(value)
	}

	return Step{
		Line:    fmt.Sprintf(spec.Template, args...),
		Imports: spec.Imports,
	}, true
}

// quote renders a parameter value as a single-quoted TypeScript string
// literal. Every parameter of every action kind goes through this one
// function, so quoting is identical across the whole generated file.
func quote(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// builtinSpecs is the closed table of recordable action kinds. Aliases cover
// the legacy short names earlier recordings used; both resolve to the same
// statement shape.
var builtinSpecs = []ActionSpec{
	{
		Kind:     "browser_navigate",
		Aliases:  []string{"navigate", "goto"},
		Params:   []string{"url"},
		Template: "await page.goto(%s);",
	},
	{
		Kind:     "browser_click",
		Aliases:  []string{"click"},
		Params:   []string{"selector"},
		Template: "await page.click(%s);",
	},
	{
		Kind:     "browser_fill",
		Aliases:  []string{"fill", "type"},
		Params:   []string{"selector", "value"},
		Template: "await page.fill(%s, %s);",
	},
	{
		Kind:     "browser_press",
		Aliases:  []string{"press"},
		Params:   []string{"selector", "key"},
		Template: "await page.press(%s, %s);",
	},
	{
		Kind:     "browser_select",
		Aliases:  []string{"select_option"},
		Params:   []string{"selector", "value"},
		Template: "await page.selectOption(%s, %s);",
	},
	{
		Kind:     "browser_hover",
		Aliases:  []string{"hover"},
		Params:   []string{"selector"},
		Template: "await page.hover(%s);",
	},
	{
		Kind:     "browser_wait",
		Aliases:  []string{"wait_for_selector"},
		Params:   []string{"selector"},
		Template: "await page.waitForSelector(%s);",
	},
	{
		Kind:     "browser_screenshot",
		Aliases:  []string{"screenshot"},
		Params:   []string{"path"},
		Template: "await page.screenshot({ path: %s });",
	},
	{
		Kind:     "browser_expect_text",
		Aliases:  []string{"assert_text"},
		Params:   []string{"selector", "text"},
		Template: "await expect(page.locator(%s)).toContainText(%s);",
	},
	{
		Kind:     "browser_upload",
		Aliases:  []string{"set_input_files"},
		Params:   []string{"selector", "path"},
		Template: "await page.setInputFiles(%s, %s);",
	},
}
