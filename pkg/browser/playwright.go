package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher launches Chromium through Playwright. The driver is
// installed and started once, on first use, with its output discarded so it
// cannot interfere with the host application's terminal.
type PlaywrightLauncher struct {
	runOnce sync.Once
	pw      *playwright.Playwright
	runErr  error
}

// NewPlaywrightLauncher creates a launcher. The Playwright driver is not
// started until the first Launch call.
func NewPlaywrightLauncher() *PlaywrightLauncher {
	return &PlaywrightLauncher{}
}

// driver installs and starts the Playwright driver exactly once.
func (l *PlaywrightLauncher) driver() (*playwright.Playwright, error) {
	l.runOnce.Do(func() {
		opts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}

		if err := playwright.Install(opts); err != nil {
			l.runErr = fmt.Errorf("install playwright: %w", err)
			return
		}

		pw, err := playwright.Run(opts)
		if err != nil {
			l.runErr = fmt.Errorf("start playwright: %w", err)
			return
		}
		l.pw = pw
	})
	return l.pw, l.runErr
}

// Launch starts a Chromium instance with the given options.
func (l *PlaywrightLauncher) Launch(opts LaunchOptions) (Browser, error) {
	pw, err := l.driver()
	if err != nil {
		return nil, err
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &playwrightBrowser{browser: browser, timeout: opts.Timeout}, nil
}

// Stop shuts the Playwright driver down. Call it once all browsers launched
// through this launcher are closed.
func (l *PlaywrightLauncher) Stop() error {
	if l.pw == nil {
		return nil
	}
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}

type playwrightBrowser struct {
	browser playwright.Browser
	timeout float64
}

func (b *playwrightBrowser) NewContext(opts ContextOptions) (BrowserContext, error) {
	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.Viewport != nil {
		contextOpts.Viewport = &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		}
	}

	browserCtx, err := b.browser.NewContext(contextOpts)
	if err != nil {
		return nil, err
	}
	return &playwrightContext{context: browserCtx, timeout: b.timeout}, nil
}

func (b *playwrightBrowser) IsConnected() bool {
	return b.browser.IsConnected()
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

type playwrightContext struct {
	context playwright.BrowserContext
	timeout float64
}

func (c *playwrightContext) NewPage() (Page, error) {
	page, err := c.context.NewPage()
	if err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		page.SetDefaultTimeout(c.timeout)
	}
	return &playwrightPage{page: page}, nil
}

func (c *playwrightContext) Close() error {
	return c.context.Close()
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) IsClosed() bool {
	return p.page.IsClosed()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

// Raw exposes the underlying Playwright page for the per-action primitives
// (navigate, click, fill, screenshot) that collaborators run against the
// shared handle.
func (p *playwrightPage) Raw() playwright.Page {
	return p.page
}
