package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorResolve(t *testing.T) {
	tests := []struct {
		name     string
		locator  Locator
		expected string
	}{
		{
			name:     "id becomes attribute selector",
			locator:  Locator{Strategy: ByID, Value: "submit-button"},
			expected: `[id="submit-button"]`,
		},
		{
			name:     "css passes through",
			locator:  Locator{Strategy: ByCSS, Value: "div.content > p"},
			expected: "div.content > p",
		},
		{
			name:     "xpath gets engine prefix",
			locator:  Locator{Strategy: ByXPath, Value: "//div[@id='main']"},
			expected: "xpath=//div[@id='main']",
		},
		{
			name:     "name becomes attribute selector",
			locator:  Locator{Strategy: ByName, Value: "email"},
			expected: `[name="email"]`,
		},
		{
			name:     "tag passes through",
			locator:  Locator{Strategy: ByTag, Value: "button"},
			expected: "button",
		},
		{
			name:     "class gets dot prefix",
			locator:  Locator{Strategy: ByClass, Value: "btn-primary"},
			expected: ".btn-primary",
		},
		{
			name:     "link text matches exactly",
			locator:  Locator{Strategy: ByLinkText, Value: "Sign in"},
			expected: `a:text-is("Sign in")`,
		},
		{
			name:     "partial link text matches substring",
			locator:  Locator{Strategy: ByPartialLinkText, Value: "Sign"},
			expected: `a:has-text("Sign")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, err := tt.locator.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, selector)
		})
	}
}

func TestLocatorResolveRejectsUnknownStrategy(t *testing.T) {
	for _, strategy := range []string{"idz", "accessibility_id", "ID", ""} {
		t.Run("strategy "+strategy, func(t *testing.T) {
			_, err := Locator{Strategy: Strategy(strategy), Value: "x"}.Resolve()
			require.Error(t, err)

			classified := Classify(err)
			assert.Equal(t, ErrInvalidLocatorStrategy, classified.Kind)
			assert.Contains(t, classified.Message, "invalid locator strategy")
		})
	}
}

func TestLocatorResolveErrorListsValidStrategies(t *testing.T) {
	_, err := Locator{Strategy: "bogus", Value: "x"}.Resolve()
	require.Error(t, err)

	for _, valid := range Strategies() {
		assert.Contains(t, err.Error(), valid)
	}
}

func TestLocatorString(t *testing.T) {
	loc := Locator{Strategy: ByCSS, Value: "#main"}
	assert.Equal(t, `css="#main"`, loc.String())
}
