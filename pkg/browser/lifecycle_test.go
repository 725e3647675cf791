package browser

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakePage struct {
	mu       sync.Mutex
	closed   bool
	closeErr error
}

func (p *fakePage) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.closeErr
}

type fakeContext struct {
	mu       sync.Mutex
	pages    []*fakePage
	pageErr  error
	closeErr error

	// One-shot hooks for holding a NewPage call in flight
	pageStarted chan struct{}
	pageGate    chan struct{}
}

func (c *fakeContext) NewPage() (Page, error) {
	c.mu.Lock()
	started := c.pageStarted
	gate := c.pageGate
	c.pageStarted = nil
	c.pageGate = nil
	err := c.pageErr
	c.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}

	page := &fakePage{}
	c.mu.Lock()
	c.pages = append(c.pages, page)
	c.mu.Unlock()
	return page, nil
}

func (c *fakeContext) Close() error {
	return c.closeErr
}

type fakeBrowser struct {
	mu        sync.Mutex
	connected bool
	closeErr  error
	context   *fakeContext
}

func (b *fakeBrowser) NewContext(opts ContextOptions) (BrowserContext, error) {
	return b.context, nil
}

func (b *fakeBrowser) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected = false
	return b.closeErr
}

type fakeLauncher struct {
	mu       sync.Mutex
	launches int
	delay    time.Duration
	err      error
	browsers []*fakeBrowser

	// One-shot hooks for holding a Launch call in flight
	launchStarted chan struct{}
	launchGate    chan struct{}
}

func (l *fakeLauncher) Launch(opts LaunchOptions) (Browser, error) {
	l.mu.Lock()
	l.launches++
	started := l.launchStarted
	gate := l.launchGate
	l.launchStarted = nil
	l.launchGate = nil
	l.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.err != nil {
		return nil, l.err
	}

	browser := &fakeBrowser{connected: true, context: &fakeContext{}}
	l.mu.Lock()
	l.browsers = append(l.browsers, browser)
	l.mu.Unlock()
	return browser, nil
}

func (l *fakeLauncher) launchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches
}

func TestAcquireLaunchesLazily(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	assert.Equal(t, 0, launcher.launchCount(), "nothing launches before Acquire")
	assert.False(t, m.Ready())

	page, err := m.Acquire()
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 1, launcher.launchCount())
	assert.True(t, m.Ready())
}

func TestAcquireIsIdempotent(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	first, err := m.Acquire()
	require.NoError(t, err)
	second, err := m.Acquire()
	require.NoError(t, err)

	assert.Same(t, first.(*fakePage), second.(*fakePage), "repeat Acquire returns the same handle")
	assert.Equal(t, 1, launcher.launchCount(), "exactly one underlying launch")
}

func TestConcurrentAcquireLaunchesOnce(t *testing.T) {
	launcher := &fakeLauncher{delay: 30 * time.Millisecond}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	const callers = 10
	pages := make([]Page, callers)

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			page, err := m.Acquire()
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, launcher.launchCount(), "concurrent callers must not launch twice")
	for i := 1; i < callers; i++ {
		assert.Same(t, pages[0].(*fakePage), pages[i].(*fakePage), "all callers converge on the same handle")
	}
}

func TestAcquireReopensClosedPageWithoutRelaunch(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	first, err := m.Acquire()
	require.NoError(t, err)

	require.NoError(t, first.Close())

	second, err := m.Acquire()
	require.NoError(t, err)

	assert.NotSame(t, first.(*fakePage), second.(*fakePage), "a fresh page is opened")
	assert.False(t, second.IsClosed())
	assert.Equal(t, 1, launcher.launchCount(), "the existing browser is reused")
}

func TestAcquireLaunchFailureIsTerminal(t *testing.T) {
	boom := errors.New("driver missing")
	launcher := &fakeLauncher{err: boom}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	_, err := m.Acquire()
	require.Error(t, err)

	var lifecycleErr *LifecycleError
	require.ErrorAs(t, err, &lifecycleErr)
	assert.ErrorIs(t, err, boom)
	assert.False(t, m.Ready())
	assert.Equal(t, 1, launcher.launchCount(), "no automatic retry")
}

func TestReleaseResetsState(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	_, err := m.Acquire()
	require.NoError(t, err)
	require.True(t, m.Ready())

	m.Release()
	assert.False(t, m.Ready())

	// Next Acquire launches fresh
	_, err = m.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, launcher.launchCount())
}

func TestReleaseSwallowsCloseFailures(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	_, err := m.Acquire()
	require.NoError(t, err)

	// Make every close fail; Release must still reset the state
	browser := launcher.browsers[0]
	browser.closeErr = errors.New("close failed")
	browser.context.closeErr = errors.New("close failed")
	browser.context.pages[0].closeErr = errors.New("close failed")

	m.Release()
	assert.False(t, m.Ready(), "state resets even when close fails")
}

func TestReleaseWaitsForPageReopen(t *testing.T) {
	launcher := &fakeLauncher{}
	m := NewLifecycleManager(launcher, LaunchOptions{})

	first, err := m.Acquire()
	require.NoError(t, err)
	require.NoError(t, first.Close())

	browserCtx := launcher.browsers[0].context
	started := make(chan struct{})
	gate := make(chan struct{})
	browserCtx.mu.Lock()
	browserCtx.pageStarted = started
	browserCtx.pageGate = gate
	browserCtx.mu.Unlock()

	acquired := make(chan error, 1)
	go func() {
		_, err := m.Acquire()
		acquired <- err
	}()
	<-started

	released := make(chan struct{})
	go func() {
		m.Release()
		close(released)
	}()

	// Release must not tear the handles down while the reopen is in flight
	select {
	case <-released:
		t.Fatal("Release returned during an in-flight page reopen")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate)
	require.NoError(t, <-acquired)
	<-released

	assert.False(t, m.Ready(), "Release wins once the reopen completes")
	assert.Equal(t, 1, launcher.launchCount(), "the reopen never escalates to a relaunch")
}

func TestReleaseWaitsForLaunch(t *testing.T) {
	launcher := &fakeLauncher{
		launchStarted: make(chan struct{}),
		launchGate:    make(chan struct{}),
	}
	started := launcher.launchStarted
	gate := launcher.launchGate
	m := NewLifecycleManager(launcher, LaunchOptions{})

	acquired := make(chan error, 1)
	go func() {
		_, err := m.Acquire()
		acquired <- err
	}()
	<-started

	released := make(chan struct{})
	go func() {
		m.Release()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Release returned during an in-flight launch")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate)
	require.NoError(t, <-acquired)
	<-released

	// The browser installed by the racing launch is closed, not leaked
	assert.False(t, launcher.browsers[0].IsConnected())
	assert.False(t, m.Ready())
}

func TestReleaseWithoutAcquireIsNoop(t *testing.T) {
	m := NewLifecycleManager(&fakeLauncher{}, LaunchOptions{})
	m.Release()
	assert.False(t, m.Ready())
}

func TestLaunchOptionsDefaults(t *testing.T) {
	m := NewLifecycleManager(&fakeLauncher{}, LaunchOptions{})

	assert.Equal(t, DefaultViewportWidth, m.opts.Viewport.Width)
	assert.Equal(t, DefaultViewportHeight, m.opts.Viewport.Height)
	assert.Equal(t, DefaultTimeout, m.opts.Timeout)
}
