package browser

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeoutPage stands in for a live page whose selector wait never
// matches: it consumes the full requested timeout, then reports the
// driver's timeout error. Only WaitForSelector is implemented.
type timeoutPage struct {
	playwright.Page
}

func (p *timeoutPage) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	var wait time.Duration
	if len(options) > 0 && options[0].Timeout != nil {
		wait = time.Duration(*options[0].Timeout) * time.Millisecond
	}
	time.Sleep(wait)
	return nil, fmt.Errorf("Timeout %dms exceeded", wait.Milliseconds())
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Condition
		wantErr  bool
	}{
		{name: "empty defaults to presence", input: "", expected: ConditionPresence},
		{name: "presence", input: "presence", expected: ConditionPresence},
		{name: "visible", input: "visible", expected: ConditionVisible},
		{name: "clickable", input: "clickable", expected: ConditionClickable},
		{name: "unknown rejected", input: "stale", wantErr: true},
		{name: "case sensitive", input: "Visible", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := ParseCondition(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				classified := Classify(err)
				assert.Equal(t, ErrUnknown, classified.Kind)
				assert.Contains(t, classified.Hint, "presence")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cond)
		})
	}
}

func TestTimeoutErrorNamesLocatorAndBudget(t *testing.T) {
	loc := Locator{Strategy: ByID, Value: "missing"}
	err := timeoutError(loc, 5*time.Second, ConditionVisible)

	assert.Equal(t, ErrElementTimeout, err.Kind)
	assert.Contains(t, err.Message, "5000ms")
	assert.Contains(t, err.Message, `id="missing"`)
	assert.Contains(t, err.Message, "visible")
	assert.NotEmpty(t, err.Hint)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, isTimeout(errors.New("Timeout 10000ms exceeded")))
	assert.True(t, isTimeout(errors.New("timeout while waiting")))
	assert.False(t, isTimeout(errors.New("element is not visible")))
}

func TestFindOneNoMatchConsumesFullTimeout(t *testing.T) {
	s := fakeSession("s", time.Now())
	s.Page = &timeoutPage{}

	budget := 150 * time.Millisecond
	startedAt := time.Now()
	_, err := FindOne(s, Locator{Strategy: ByID, Value: "missing"}, budget, ConditionPresence)
	elapsed := time.Since(startedAt)

	require.Error(t, err)
	classified := Classify(err)
	assert.Equal(t, ErrElementTimeout, classified.Kind)
	assert.Contains(t, classified.Message, "150ms")
	assert.GreaterOrEqual(t, elapsed, budget,
		"timeout must only be reported after the full wait elapsed")
}

func TestFindOneRejectsInvalidStrategyBeforeDriverCall(t *testing.T) {
	// The session has no page attached. An invalid strategy must fail in
	// selector resolution, before the driver would be consulted.
	s := fakeSession("s", time.Now())
	_, err := FindOne(s, Locator{Strategy: "bogus", Value: "x"}, time.Second, ConditionPresence)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidLocatorStrategy, Classify(err).Kind)
}

func TestFindManyRejectsInvalidStrategyBeforeDriverCall(t *testing.T) {
	s := fakeSession("s", time.Now())
	_, err := FindMany(s, Locator{Strategy: "bogus", Value: "x"}, time.Second)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidLocatorStrategy, Classify(err).Kind)
}
