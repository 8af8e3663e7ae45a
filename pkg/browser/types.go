package browser

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/playwright-community/playwright-go"
)

// Kind identifies a supported browser engine.
type Kind string

const (
	// KindChrome runs a Chromium browser.
	KindChrome Kind = "chrome"

	// KindFirefox runs a Firefox (Gecko) browser.
	KindFirefox Kind = "firefox"

	// KindEdge runs Microsoft Edge through the Chromium msedge channel.
	KindEdge Kind = "edge"
)

// Kinds returns the closed set of supported browser kinds in stable order.
func Kinds() []string {
	return []string{string(KindChrome), string(KindFirefox), string(KindEdge)}
}

// ParseKind validates name against the closed enumeration.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(name)) {
	case KindChrome:
		return KindChrome, nil
	case KindFirefox:
		return KindFirefox, nil
	case KindEdge:
		return KindEdge, nil
	default:
		return "", newError(ErrUnsupportedBrowser,
			"unsupported browser: %s (supported: %s)", name, strings.Join(Kinds(), ", "))
	}
}

// Session represents one live browser process under management. The driver
// handles are exclusively owned by the session record and released exactly
// once, either through Manager.Stop or process-wide shutdown.
type Session struct {
	// ID is the unique session identifier, generated at creation.
	ID string

	// Kind is the browser engine this session runs.
	Kind Kind

	// Options records the configuration the session was created with.
	Options SessionOptions

	// Browser, Context and Page are the Playwright driver handles.
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	// CreatedAt is the creation timestamp. Immutable after registration.
	CreatedAt time.Time

	// mu guards lastActivity. Operations record activity concurrently
	// with list reads on other goroutines.
	mu           sync.Mutex
	lastActivity time.Time
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns when the session last completed an operation.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// WindowWidth and WindowHeight set the viewport size in pixels.
	WindowWidth  int
	WindowHeight int

	// ExtraArgs are additional launch arguments passed to the browser.
	ExtraArgs []string
}

// SessionSummary is the per-session view returned by list operations.
type SessionSummary struct {
	ID           string    `json:"session_id"`
	Kind         string    `json:"browser_type"`
	CurrentURL   string    `json:"current_url"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Active       bool      `json:"is_active"`
}

// Default values shared across the package.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxSessions  = 5
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080

	// unknownValue substitutes live page reads when a driver is gone.
	unknownValue = "unknown"
)

// pageState reads the live URL and title, substituting a sentinel when the
// driver is gone. Listing sessions must never fail because one driver has
// gone stale.
func (s *Session) pageState() (url, title string) {
	url, title = unknownValue, unknownValue
	if s.Page == nil {
		return
	}
	url = s.Page.URL()
	if t, err := s.Page.Title(); err == nil {
		title = t
	}
	return
}

// close releases the driver handles. Each handle is closed independently
// and a dead driver is tolerated so cleanup can always make progress.
func (s *Session) close() error {
	var firstErr error
	if s.Page != nil {
		if err := s.Page.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// truncate cuts s to at most max bytes without splitting a multi-byte
// rune, so the result is always valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
