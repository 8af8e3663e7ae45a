package server

import (
	"context"
	"fmt"

	"github.com/entrhq/surf/pkg/browser"
)

type locatorIn struct {
	Strategy  string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value     string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

type findElementOut struct {
	Status
	Found   bool                `json:"found"`
	Element *browser.Descriptor `json:"element,omitempty"`
}

func (s *Server) findElement(ctx context.Context, in locatorIn) findElementOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionPresence)
	if err != nil {
		return findElementOut{Status: failure(err)}
	}
	desc := browser.Describe(handle)
	sess.Touch()
	return findElementOut{Status: ok(), Found: true, Element: &desc}
}

type findElementsOut struct {
	Status
	Count    int                  `json:"count"`
	Elements []browser.Descriptor `json:"elements"`
}

func (s *Server) findElements(ctx context.Context, in locatorIn) findElementsOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return findElementsOut{Status: failure(err)}
	}
	loc := browser.Locator{Strategy: browser.Strategy(in.Strategy), Value: in.Value}
	handles, err := browser.FindMany(sess, loc, s.timeout(in.TimeoutMS))
	if err != nil {
		return findElementsOut{Status: failure(err)}
	}
	elements := make([]browser.Descriptor, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, browser.Describe(handle))
	}
	sess.Touch()
	return findElementsOut{Status: ok(), Count: len(elements), Elements: elements}
}

type waitForElementIn struct {
	Strategy  string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value     string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	Condition string `json:"condition,omitempty" jsonschema:"description=Condition to wait for: presence, visible, or clickable. Defaults to presence"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

type waitForElementOut struct {
	Status
	Condition string `json:"condition,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) waitForElement(ctx context.Context, in waitForElementIn) waitForElementOut {
	cond, err := browser.ParseCondition(in.Condition)
	if err != nil {
		return waitForElementOut{Status: failure(err)}
	}
	sess, _, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, cond)
	if err != nil {
		return waitForElementOut{Status: failure(err)}
	}
	sess.Touch()
	return waitForElementOut{
		Status:    ok(),
		Condition: string(cond),
		Message:   fmt.Sprintf("element %s=%s satisfied condition %s", in.Strategy, in.Value, cond),
	}
}

type elementTextOut struct {
	Status
	Text string `json:"text,omitempty"`
}

func (s *Server) getElementText(ctx context.Context, in locatorIn) elementTextOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionPresence)
	if err != nil {
		return elementTextOut{Status: failure(err)}
	}
	text, err := handle.TextContent()
	if err != nil {
		return elementTextOut{Status: failure(err)}
	}
	sess.Touch()
	return elementTextOut{Status: ok(), Text: text}
}

type elementAttributeIn struct {
	Strategy  string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value     string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	Attribute string `json:"attribute" jsonschema:"description=Attribute name to read"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

type elementAttributeOut struct {
	Status
	Attribute string `json:"attribute,omitempty"`
	Value     string `json:"value,omitempty"`
}

func (s *Server) getElementAttribute(ctx context.Context, in elementAttributeIn) elementAttributeOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionPresence)
	if err != nil {
		return elementAttributeOut{Status: failure(err)}
	}
	value, err := handle.GetAttribute(in.Attribute)
	if err != nil {
		return elementAttributeOut{Status: failure(err)}
	}
	sess.Touch()
	return elementAttributeOut{Status: ok(), Attribute: in.Attribute, Value: value}
}

type actionOut struct {
	Status
	Message string `json:"message,omitempty"`
}

func (s *Server) scrollToElement(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionPresence)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.ScrollIntoViewIfNeeded(); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("scrolled to element %s=%s", in.Strategy, in.Value)}
}
