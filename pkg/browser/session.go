package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Navigate drives the page to url and reports the landed URL and title.
func (s *Session) Navigate(url string) (currentURL, title string, err error) {
	if _, err := s.Page.Goto(url); err != nil {
		return "", "", Classify(err)
	}
	s.Touch()
	title, _ = s.Page.Title()
	return s.Page.URL(), title, nil
}

// Back navigates back in history and returns the resulting URL.
func (s *Session) Back() (string, error) {
	if _, err := s.Page.GoBack(); err != nil {
		return "", Classify(err)
	}
	s.Touch()
	return s.Page.URL(), nil
}

// Forward navigates forward in history and returns the resulting URL.
func (s *Session) Forward() (string, error) {
	if _, err := s.Page.GoForward(); err != nil {
		return "", Classify(err)
	}
	s.Touch()
	return s.Page.URL(), nil
}

// Reload refreshes the current page.
func (s *Session) Reload() error {
	if _, err := s.Page.Reload(); err != nil {
		return Classify(err)
	}
	s.Touch()
	return nil
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.Page.URL()
}

// Title returns the current page title.
func (s *Session) Title() (string, error) {
	title, err := s.Page.Title()
	if err != nil {
		return "", Classify(err)
	}
	return title, nil
}

// Source returns the full page source.
func (s *Session) Source() (string, error) {
	source, err := s.Page.Content()
	if err != nil {
		return "", Classify(err)
	}
	s.Touch()
	return source, nil
}

// Screenshot captures the current viewport into path and returns the raw
// image bytes. The driver writes the file; the returned bytes are the
// same payload.
func (s *Session) Screenshot(path string) ([]byte, error) {
	buf, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	if err != nil {
		return nil, Classify(err)
	}
	s.Touch()
	return buf, nil
}

// PressKey sends a single key press to the page. The key must already be
// mapped to the driver's key vocabulary.
func (s *Session) PressKey(key string) error {
	if err := s.Page.Keyboard().Press(key); err != nil {
		return Classify(err)
	}
	s.Touch()
	return nil
}

// Evaluate runs script in the page and returns its JSON-serializable
// result. Script failures are reported as ErrScriptFailed.
func (s *Session) Evaluate(script string) (any, error) {
	result, err := s.Page.Evaluate(script)
	if err != nil {
		return nil, newError(ErrScriptFailed, "script execution failed: %v", err).
			WithHint("check the JavaScript syntax")
	}
	s.Touch()
	return result, nil
}

// EvaluateWithTimeout bounds Evaluate with an explicit deadline. The
// evaluation keeps running driver-side after the deadline; the timeout
// only bounds how long the caller waits for the result.
func (s *Session) EvaluateWithTimeout(script string, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		return s.Evaluate(script)
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := s.Evaluate(script)
		done <- outcome{value, err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-time.After(timeout):
		return nil, newError(ErrScriptFailed,
			"script did not complete within %dms", timeout.Milliseconds())
	}
}

// WaitForLoad blocks until the page's load event has fired or the timeout
// elapses.
func (s *Session) WaitForLoad(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	err := s.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if isTimeout(err) {
			return newError(ErrElementTimeout,
				"page did not load within %dms", timeout.Milliseconds())
		}
		return Classify(err)
	}
	s.Touch()
	return nil
}
