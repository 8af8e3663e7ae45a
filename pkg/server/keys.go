package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/surf/pkg/browser"
)

// keyNames maps client-facing key names onto the names the browser
// keyboard protocol expects. The set is closed: unknown names are
// rejected rather than passed through.
var keyNames = map[string]string{
	"ENTER":       "Enter",
	"TAB":         "Tab",
	"ESCAPE":      "Escape",
	"SPACE":       "Space",
	"BACKSPACE":   "Backspace",
	"DELETE":      "Delete",
	"INSERT":      "Insert",
	"HOME":        "Home",
	"END":         "End",
	"PAGE_UP":     "PageUp",
	"PAGE_DOWN":   "PageDown",
	"ARROW_UP":    "ArrowUp",
	"ARROW_DOWN":  "ArrowDown",
	"ARROW_LEFT":  "ArrowLeft",
	"ARROW_RIGHT": "ArrowRight",
	"F1":          "F1",
	"F2":          "F2",
	"F3":          "F3",
	"F4":          "F4",
	"F5":          "F5",
	"F6":          "F6",
	"F7":          "F7",
	"F8":          "F8",
	"F9":          "F9",
	"F10":         "F10",
	"F11":         "F11",
	"F12":         "F12",
}

// mapKey resolves a client key name, case-insensitively, to its protocol
// form.
func mapKey(name string) (string, error) {
	if key, found := keyNames[strings.ToUpper(name)]; found {
		return key, nil
	}

	supported := make([]string, 0, len(keyNames))
	for k := range keyNames {
		supported = append(supported, k)
	}
	sort.Strings(supported)
	return "", &browser.Error{
		Kind:    browser.ErrUnknown,
		Message: fmt.Sprintf("unsupported key: %s", name),
		Hint:    "supported keys: " + strings.Join(supported, ", "),
	}
}
