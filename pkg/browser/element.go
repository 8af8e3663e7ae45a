package browser

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

// textPreviewLimit bounds element text previews in descriptors.
const textPreviewLimit = 100

// Descriptor is the wire-facing view of a located element: tag name, a
// bounded text preview and the displayed/enabled flags.
type Descriptor struct {
	TagName   string `json:"tag_name"`
	Text      string `json:"text"`
	Displayed bool   `json:"is_displayed"`
	Enabled   bool   `json:"is_enabled"`
}

// Describe reads the element's state into a Descriptor. Individual read
// failures degrade to zero values; describing an element never fails once
// the handle has been located.
func Describe(handle playwright.ElementHandle) Descriptor {
	var d Descriptor

	if v, err := handle.Evaluate("el => el.tagName.toLowerCase()"); err == nil {
		if tag, ok := v.(string); ok {
			d.TagName = tag
		}
	}
	if text, err := handle.TextContent(); err == nil {
		d.Text = truncate(strings.TrimSpace(text), textPreviewLimit)
	}
	if visible, err := handle.IsVisible(); err == nil {
		d.Displayed = visible
	}
	if enabled, err := handle.IsEnabled(); err == nil {
		d.Enabled = enabled
	}
	return d
}
