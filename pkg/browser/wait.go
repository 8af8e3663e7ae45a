package browser

import (
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Condition names what a located element must satisfy before a bounded
// wait completes.
type Condition string

const (
	// ConditionPresence requires the element to exist in the DOM.
	ConditionPresence Condition = "presence"

	// ConditionVisible requires the element to be rendered with nonzero
	// size.
	ConditionVisible Condition = "visible"

	// ConditionClickable requires the element to be visible and enabled.
	ConditionClickable Condition = "clickable"
)

// Conditions returns the supported wait conditions in stable order.
func Conditions() []string {
	return []string{string(ConditionPresence), string(ConditionVisible), string(ConditionClickable)}
}

// ParseCondition validates name against the supported conditions. An empty
// name defaults to presence.
func ParseCondition(name string) (Condition, error) {
	switch Condition(name) {
	case "":
		return ConditionPresence, nil
	case ConditionPresence, ConditionVisible, ConditionClickable:
		return Condition(name), nil
	default:
		return "", newError(ErrUnknown, "invalid wait condition: %s", name).
			WithHint("supported conditions: " + strings.Join(Conditions(), ", "))
	}
}

// clickablePollInterval spaces out enabled-state checks while waiting for
// the clickable condition.
const clickablePollInterval = 100 * time.Millisecond

// FindOne polls the driver until an element matching the locator satisfies
// the condition, or the timeout elapses. The wait is delegated to the
// driver's native selector wait; from the caller's perspective this is a
// single blocking call bounded by timeout. On timeout the failure names
// the locator and the timeout value; a successful return never carries a
// nil handle. Locating records no session activity: callers mark the
// session when their whole operation has succeeded.
func FindOne(s *Session, loc Locator, timeout time.Duration, cond Condition) (playwright.ElementHandle, error) {
	selector, err := loc.Resolve()
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	state := playwright.WaitForSelectorStateAttached
	if cond == ConditionVisible || cond == ConditionClickable {
		state = playwright.WaitForSelectorStateVisible
	}

	deadline := time.Now().Add(timeout)
	handle, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if isTimeout(err) {
			return nil, timeoutError(loc, timeout, cond)
		}
		return nil, Classify(err)
	}
	if handle == nil {
		return nil, timeoutError(loc, timeout, cond)
	}

	if cond == ConditionClickable {
		for {
			enabled, err := handle.IsEnabled()
			if err != nil {
				return nil, Classify(err)
			}
			if enabled {
				break
			}
			if time.Now().After(deadline) {
				return nil, timeoutError(loc, timeout, cond)
			}
			time.Sleep(clickablePollInterval)
		}
	}

	return handle, nil
}

// FindMany waits until at least one element matches the locator, then
// returns the full current match set, not just the first.
func FindMany(s *Session, loc Locator, timeout time.Duration) ([]playwright.ElementHandle, error) {
	if _, err := FindOne(s, loc, timeout, ConditionPresence); err != nil {
		return nil, err
	}

	selector, err := loc.Resolve()
	if err != nil {
		return nil, err
	}
	handles, err := s.Page.QuerySelectorAll(selector)
	if err != nil {
		return nil, Classify(err)
	}
	return handles, nil
}

func timeoutError(loc Locator, timeout time.Duration, cond Condition) *Error {
	return newError(ErrElementTimeout,
		"element not found within %dms with condition %q: %s",
		timeout.Milliseconds(), cond, loc).
		WithHint("try increasing the timeout or verifying the locator")
}

func isTimeout(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
