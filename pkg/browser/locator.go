package browser

import (
	"fmt"
	"strings"
)

// Strategy names one of the closed set of locator strategies.
type Strategy string

const (
	ByID              Strategy = "id"
	ByCSS             Strategy = "css"
	ByXPath           Strategy = "xpath"
	ByName            Strategy = "name"
	ByTag             Strategy = "tag"
	ByClass           Strategy = "class"
	ByLinkText        Strategy = "link_text"
	ByPartialLinkText Strategy = "partial_link_text"
)

// Strategies returns the valid strategy names in stable order.
func Strategies() []string {
	return []string{
		string(ByID), string(ByCSS), string(ByXPath), string(ByName),
		string(ByTag), string(ByClass), string(ByLinkText), string(ByPartialLinkText),
	}
}

// Locator pairs a strategy with an opaque value interpreted per strategy.
// It identifies zero or more elements in the active page's document.
type Locator struct {
	Strategy Strategy
	Value    string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Value)
}

// Resolve converts the locator into a Playwright selector. It is a pure
// function: a strategy outside the closed set fails before any driver call
// is attempted, naming the offender and the valid set.
func (l Locator) Resolve() (string, error) {
	switch l.Strategy {
	case ByID:
		return fmt.Sprintf(`[id=%q]`, l.Value), nil
	case ByCSS:
		return l.Value, nil
	case ByXPath:
		return "xpath=" + l.Value, nil
	case ByName:
		return fmt.Sprintf(`[name=%q]`, l.Value), nil
	case ByTag:
		return l.Value, nil
	case ByClass:
		return "." + l.Value, nil
	case ByLinkText:
		return fmt.Sprintf(`a:text-is(%q)`, l.Value), nil
	case ByPartialLinkText:
		return fmt.Sprintf(`a:has-text(%q)`, l.Value), nil
	default:
		return "", newError(ErrInvalidLocatorStrategy,
			"invalid locator strategy: %s (valid strategies: %s)",
			l.Strategy, strings.Join(Strategies(), ", "))
	}
}
