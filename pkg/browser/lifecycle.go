package browser

import (
	"sync"

	"github.com/entrhq/scribe/pkg/logging"
)

// LifecycleManager guarantees exactly one reusable browser and page per
// execution context. The browser is launched lazily on first Acquire and
// every later Acquire returns the same handle until Release resets the
// state. Construct one manager per execution context and pass it to every
// action-performing collaborator; no other component may close or replace
// the shared handles.
//
// Concurrent Acquire calls never launch twice: the first caller holds the
// initializing flag while it launches, later callers wait on the condition
// variable and re-evaluate once initialization finishes, so all of them
// converge on the same handle.
type LifecycleManager struct {
	mu   sync.Mutex
	cond *sync.Cond
	log  *logging.Logger

	launcher Launcher
	opts     LaunchOptions

	browser      Browser
	browserCtx   BrowserContext
	page         Page
	initializing bool
}

// NewLifecycleManager creates a manager over the given launcher. Nothing is
// launched until the first Acquire.
func NewLifecycleManager(launcher Launcher, opts LaunchOptions) *LifecycleManager {
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	log, _ := logging.NewLogger("browser")
	m := &LifecycleManager{
		log:      log,
		launcher: launcher,
		opts:     opts,
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Acquire returns the shared page, launching the browser if needed.
//
// If the browser is connected and its page is open, the handles are returned
// with no side effect. If only the page has closed, a new page is opened in
// the existing browser without a relaunch. Otherwise the caller launches,
// and any caller that finds an initialization already in flight suspends
// until it completes, then re-evaluates. A launch failure is terminal for
// the calling operation; there is no automatic retry.
func (m *LifecycleManager) Acquire() (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if m.initializing {
			m.cond.Wait()
			continue
		}

		if m.browser != nil && m.browser.IsConnected() {
			if m.page != nil && !m.page.IsClosed() {
				return m.page, nil
			}
			return m.reopenPage()
		}

		return m.launch()
	}
}

// reopenPage opens a fresh page in the existing context. Called with the
// lock held; the lock is dropped for the engine call itself. The context
// handle is captured before unlocking so the call never touches manager
// state without the mutex.
func (m *LifecycleManager) reopenPage() (Page, error) {
	browserCtx := m.browserCtx
	m.initializing = true
	m.mu.Unlock()

	page, err := browserCtx.NewPage()

	m.mu.Lock()
	m.initializing = false
	m.cond.Broadcast()

	if err != nil {
		return nil, &LifecycleError{Op: "open page", Err: err}
	}

	m.page = page
	return page, nil
}

// launch starts a browser, context, and page from scratch. Called with the
// lock held; the lock is dropped for the launch itself.
func (m *LifecycleManager) launch() (Page, error) {
	m.initializing = true
	m.mu.Unlock()

	browser, browserCtx, page, err := m.doLaunch()

	m.mu.Lock()
	m.initializing = false
	m.cond.Broadcast()

	if err != nil {
		return nil, err
	}

	m.browser = browser
	m.browserCtx = browserCtx
	m.page = page
	return page, nil
}

// doLaunch performs the actual engine calls outside the lock, unwinding
// partially created resources on failure.
func (m *LifecycleManager) doLaunch() (Browser, BrowserContext, Page, error) {
	browser, err := m.launcher.Launch(m.opts)
	if err != nil {
		return nil, nil, nil, &LifecycleError{Op: "launch browser", Err: err}
	}

	browserCtx, err := browser.NewContext(ContextOptions{Viewport: m.opts.Viewport})
	if err != nil {
		_ = browser.Close()
		return nil, nil, nil, &LifecycleError{Op: "create context", Err: err}
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		return nil, nil, nil, &LifecycleError{Op: "open page", Err: err}
	}

	return browser, browserCtx, page, nil
}

// Release closes the shared browser best-effort and unconditionally resets
// the state to uninitialized. Close failures are logged, never propagated,
// so the manager cannot wedge in a closing limbo; the next Acquire simply
// launches fresh.
//
// A Release that races an in-flight launch or page reopen waits for it to
// finish, then tears down whatever handles it installed. Handles are never
// nilled out from under an initializer, and a browser launched concurrently
// with Release is still closed rather than leaked.
func (m *LifecycleManager) Release() {
	m.mu.Lock()
	for m.initializing {
		m.cond.Wait()
	}
	page := m.page
	browserCtx := m.browserCtx
	browser := m.browser
	m.page = nil
	m.browserCtx = nil
	m.browser = nil
	m.mu.Unlock()

	if page != nil {
		if err := page.Close(); err != nil {
			m.log.Warnf("closing page: %v", err)
		}
	}
	if browserCtx != nil {
		if err := browserCtx.Close(); err != nil {
			m.log.Warnf("closing context: %v", err)
		}
	}
	if browser != nil {
		if err := browser.Close(); err != nil {
			m.log.Warnf("closing browser: %v", err)
		}
	}
}

// Ready reports whether a connected browser with an open page is held.
func (m *LifecycleManager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.browser != nil && m.browser.IsConnected() &&
		m.page != nil && !m.page.IsClosed()
}
