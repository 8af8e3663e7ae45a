package browser

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright runtime and drives session lifecycle. It is
// the only component that launches or terminates browser processes; the
// Registry it wraps holds the resulting bookkeeping.
type Manager struct {
	mu             sync.Mutex
	registry       *Registry
	pw             *playwright.Playwright
	log            *slog.Logger
	defaultTimeout time.Duration
	initialized    bool
}

// ManagerOptions configures a new Manager.
type ManagerOptions struct {
	// Registry is the session registry to manage. Required.
	Registry *Registry

	// Logger receives lifecycle events. Defaults to a discard logger.
	Logger *slog.Logger

	// DefaultTimeout is applied as the page default and used when an
	// operation supplies no timeout. Defaults to DefaultTimeout.
	DefaultTimeout time.Duration
}

// NewManager creates a session lifecycle manager.
func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry(DefaultMaxSessions)
	}
	return &Manager{
		registry:       registry,
		log:            logger,
		defaultTimeout: timeout,
	}
}

// Registry returns the registry this manager populates.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// DefaultTimeout returns the configured per-operation default timeout.
func (m *Manager) DefaultTimeout() time.Duration {
	return m.defaultTimeout
}

// Initialize starts the Playwright driver process. Safe to call more than
// once; subsequent calls are no-ops. Driver output is discarded so it
// cannot interleave with the stdio transport.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return newError(ErrDriverLaunchFailed, "failed to install playwright: %v", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return newError(ErrDriverLaunchFailed, "failed to start playwright: %v", err)
	}

	m.pw = pw
	m.initialized = true
	m.log.Info("playwright driver started")
	return nil
}

// Start launches a browser for the requested kind, wraps it in a Session
// and registers it. The kind is validated and the capacity bound checked
// before anything is launched: a launched but unregistered browser would
// leak. A launch failure leaves no partial session registered.
func (m *Manager) Start(kind Kind, opts SessionOptions) (*Session, error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	if m.registry.Len() >= m.registry.Capacity() {
		return nil, newError(ErrCapacityExceeded,
			"maximum number of sessions (%d) reached", m.registry.Capacity()).
			WithHint("close an existing session before starting another")
	}

	if err := m.Initialize(); err != nil {
		return nil, err
	}

	if opts.WindowWidth <= 0 {
		opts.WindowWidth = DefaultWindowWidth
	}
	if opts.WindowHeight <= 0 {
		opts.WindowHeight = DefaultWindowHeight
	}

	browserType, launchOpts := m.launchTarget(kind, opts)
	b, err := browserType.Launch(launchOpts)
	if err != nil {
		return nil, newError(ErrDriverLaunchFailed, "failed to launch %s: %v", kind, err)
	}

	context, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.WindowWidth,
			Height: opts.WindowHeight,
		},
	})
	if err != nil {
		b.Close()
		return nil, newError(ErrDriverLaunchFailed, "failed to create browser context: %v", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		b.Close()
		return nil, newError(ErrDriverLaunchFailed, "failed to create page: %v", err)
	}
	page.SetDefaultTimeout(float64(m.defaultTimeout.Milliseconds()))

	now := time.Now()
	session := &Session{
		ID:           uuid.NewString(),
		Kind:         kind,
		Options:      opts,
		Browser:      b,
		Context:      context,
		Page:         page,
		CreatedAt:    now,
		lastActivity: now,
	}

	if err := m.registry.Register(session); err != nil {
		// Lost the race for the last capacity slot.
		session.close()
		return nil, err
	}

	m.log.Info("session started",
		"session_id", session.ID,
		"browser", string(kind),
		"headless", opts.Headless)
	return session, nil
}

// launchTarget maps a browser kind onto the Playwright browser type and
// launch options. Edge runs through Chromium's msedge channel.
func (m *Manager) launchTarget(kind Kind, opts SessionOptions) (playwright.BrowserType, playwright.BrowserTypeLaunchOptions) {
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}

	switch kind {
	case KindFirefox:
		launchOpts.Args = opts.ExtraArgs
		return m.pw.Firefox, launchOpts
	case KindEdge:
		launchOpts.Channel = playwright.String("msedge")
		launchOpts.Args = append([]string{"--no-sandbox", "--disable-dev-shm-usage"}, opts.ExtraArgs...)
		return m.pw.Chromium, launchOpts
	default:
		launchOpts.Args = append([]string{"--no-sandbox", "--disable-dev-shm-usage", "--disable-gpu"}, opts.ExtraArgs...)
		return m.pw.Chromium, launchOpts
	}
}

// Stop tears down the target session and removes it from the registry.
// Termination is best effort: a teardown failure is logged, not returned,
// and the entry is removed regardless. Returns the id of the session that
// was closed.
func (m *Manager) Stop(id string) (string, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return "", err
	}

	if err := session.close(); err != nil {
		m.log.Warn("session teardown reported errors",
			"session_id", session.ID, "error", err)
	}

	if err := m.registry.Remove(session.ID); err != nil {
		return "", err
	}

	m.log.Info("session closed", "session_id", session.ID)
	return session.ID, nil
}

// ShutdownAll closes every registered session and stops the Playwright
// driver. Individual failures are swallowed so one stuck session cannot
// block teardown of the rest; the registry is always left empty and the
// active pointer cleared. Idempotent.
func (m *Manager) ShutdownAll() {
	for _, id := range m.registry.IDs() {
		if _, err := m.Stop(id); err != nil {
			m.log.Error("failed to close session during shutdown",
				"session_id", id, "error", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized && m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			m.log.Error("failed to stop playwright", "error", err)
		}
		m.pw = nil
		m.initialized = false
	}
}
