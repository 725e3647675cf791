package browser

import "fmt"

// The interfaces below are the contract with the automation engine. The
// lifecycle manager drives launch, context, and page creation exclusively
// through them; the Playwright-backed implementation lives in this package
// and tests substitute fakes.

// Launcher starts a new browser instance.
type Launcher interface {
	Launch(opts LaunchOptions) (Browser, error)
}

// Browser is a running browser instance.
type Browser interface {
	// NewContext creates an isolated browsing context
	NewContext(opts ContextOptions) (BrowserContext, error)

	// IsConnected reports whether the instance is still reachable
	IsConnected() bool

	// Close shuts the browser down
	Close() error
}

// BrowserContext is an isolated browsing context within a browser.
type BrowserContext interface {
	// NewPage opens a fresh page in this context
	NewPage() (Page, error)

	// Close closes the context and its pages
	Close() error
}

// Page is a single open page.
type Page interface {
	// IsClosed reports whether the page has been closed
	IsClosed() bool

	// Close closes the page
	Close() error
}

// LaunchOptions configures a browser launch.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size for new contexts
	Viewport *Viewport

	// Timeout is the default timeout for page operations, in milliseconds.
	// Zero means the engine default.
	Timeout float64
}

// ContextOptions configures a new browsing context.
type ContextOptions struct {
	Viewport *Viewport
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for launched browsers.
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// LifecycleError reports a failed lifecycle transition. Launch failures are
// terminal for the requesting operation; close failures are logged by the
// manager and never surface as this type.
type LifecycleError struct {
	Op  string
	Err error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("browser: %s: %v", e.Op, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}
