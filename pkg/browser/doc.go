// Package browser owns the shared browser lifecycle behind recorded
// automation runs.
//
// Every action-performing collaborator in an execution context goes through
// one LifecycleManager, which guarantees a single reusable browser and page:
// lazily launched on first Acquire, reused by every later Acquire, and torn
// down only through Release. The manager moves through three states:
//
//	UNINITIALIZED -> INITIALIZING -> READY -> (Release) -> UNINITIALIZED
//
// Concurrent Acquire calls are race-free. The launch critical section is
// guarded by a mutex and condition variable: the first caller launches,
// later callers suspend until initialization completes and then re-evaluate,
// so all callers converge on the same handle and the browser is never
// launched twice concurrently.
//
// The automation engine itself is reached only through the Launcher,
// Browser, BrowserContext, and Page interfaces. PlaywrightLauncher is the
// production implementation, driving Chromium through playwright-go; tests
// substitute fakes to exercise the lifecycle without a real browser.
//
// # Example Usage
//
//	manager := browser.NewLifecycleManager(browser.NewPlaywrightLauncher(), browser.LaunchOptions{
//	    Headless: true,
//	})
//	page, err := manager.Acquire() // launches on first call
//	// ... collaborators act on the page ...
//	manager.Release() // best-effort close, state reset regardless
package browser
