package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/surf/pkg/browser"
)

func (s *Server) clickElement(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionClickable)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.ScrollIntoViewIfNeeded(); err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.Click(); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("clicked element %s=%s", in.Strategy, in.Value)}
}

func (s *Server) doubleClickElement(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionClickable)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.ScrollIntoViewIfNeeded(); err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.Dblclick(); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("double-clicked element %s=%s", in.Strategy, in.Value)}
}

func (s *Server) rightClickElement(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionClickable)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.ScrollIntoViewIfNeeded(); err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.Click(playwright.ElementHandleClickOptions{
		Button: playwright.MouseButtonRight,
	}); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("right-clicked element %s=%s", in.Strategy, in.Value)}
}

func (s *Server) hover(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.Hover(); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("hovering over element %s=%s", in.Strategy, in.Value)}
}

type sendKeysIn struct {
	Strategy   string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value      string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	Text       string `json:"text" jsonschema:"description=Text to type into the element"`
	ClearFirst *bool  `json:"clear_first,omitempty" jsonschema:"description=Clear the element before typing, defaults to true"`
	SessionID  string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS  int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

func (s *Server) sendKeys(ctx context.Context, in sendKeysIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return actionOut{Status: failure(err)}
	}

	text := in.Text
	if in.ClearFirst != nil && !*in.ClearFirst {
		// Appending: Fill replaces the whole value, so prepend what is
		// already there.
		current, err := handle.InputValue()
		if err != nil {
			return actionOut{Status: failure(err)}
		}
		text = current + text
	}
	if err := handle.Fill(text); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("typed into element %s=%s", in.Strategy, in.Value)}
}

func (s *Server) clearElement(ctx context.Context, in locatorIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.Fill(""); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("cleared element %s=%s", in.Strategy, in.Value)}
}

type selectOptionIn struct {
	Strategy   string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value      string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	OptionText string `json:"option_text" jsonschema:"description=Visible text of the option to select"`
	SessionID  string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS  int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

func (s *Server) selectDropdownOption(ctx context.Context, in selectOptionIn) actionOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if _, err := handle.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{in.OptionText},
	}); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("selected option %q", in.OptionText)}
}

type dragAndDropIn struct {
	SourceStrategy string `json:"source_strategy" jsonschema:"description=Locator strategy for the element to drag"`
	SourceValue    string `json:"source_value" jsonschema:"description=Locator value for the element to drag"`
	TargetStrategy string `json:"target_strategy" jsonschema:"description=Locator strategy for the drop target"`
	TargetValue    string `json:"target_value" jsonschema:"description=Locator value for the drop target"`
	SessionID      string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS      int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

func (s *Server) dragAndDrop(ctx context.Context, in dragAndDropIn) actionOut {
	sess, _, err := s.locate(in.SessionID, in.SourceStrategy, in.SourceValue, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if _, _, err := s.locate(in.SessionID, in.TargetStrategy, in.TargetValue, in.TimeoutMS, browser.ConditionVisible); err != nil {
		return actionOut{Status: failure(err)}
	}

	source := browser.Locator{Strategy: browser.Strategy(in.SourceStrategy), Value: in.SourceValue}
	target := browser.Locator{Strategy: browser.Strategy(in.TargetStrategy), Value: in.TargetValue}
	sourceSel, err := source.Resolve()
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	targetSel, err := target.Resolve()
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := sess.Page.DragAndDrop(sourceSel, targetSel); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("dragged %s onto %s", source, target)}
}

type pressKeyIn struct {
	Key       string `json:"key" jsonschema:"description=Key name such as ENTER, TAB, ESCAPE, SPACE, ARROW_DOWN, or F5"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
}

func (s *Server) pressKey(ctx context.Context, in pressKeyIn) actionOut {
	key, err := mapKey(in.Key)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := sess.PressKey(key); err != nil {
		return actionOut{Status: failure(err)}
	}
	return actionOut{Status: ok(), Message: fmt.Sprintf("pressed %s", in.Key)}
}

type uploadFileIn struct {
	Strategy  string `json:"strategy" jsonschema:"description=Locator strategy for the file input element"`
	Value     string `json:"value" jsonschema:"description=Locator value for the file input element"`
	FilePath  string `json:"file_path" jsonschema:"description=Absolute path of the local file to upload"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

func (s *Server) uploadFile(ctx context.Context, in uploadFileIn) actionOut {
	if err := s.checkUpload(in.FilePath); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionPresence)
	if err != nil {
		return actionOut{Status: failure(err)}
	}
	if err := handle.SetInputFiles(in.FilePath); err != nil {
		return actionOut{Status: failure(err)}
	}
	sess.Touch()
	return actionOut{Status: ok(), Message: fmt.Sprintf("uploaded %s", filepath.Base(in.FilePath))}
}

// checkUpload enforces the upload policy before any session or element is
// resolved. The file must exist, carry an allowed extension, and fit the
// size limit.
func (s *Server) checkUpload(path string) error {
	if !s.cfg.Security.AllowFileUploads {
		return &browser.Error{
			Kind:    browser.ErrInteractionRejected,
			Message: "file uploads are disabled",
			Hint:    "enable security.allow_file_uploads to permit uploads",
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &browser.Error{
			Kind:    browser.ErrFileNotFound,
			Message: fmt.Sprintf("file not found: %s", path),
			Hint:    "provide an absolute path to an existing file",
		}
	}
	if info.IsDir() {
		return &browser.Error{
			Kind:    browser.ErrFileNotFound,
			Message: fmt.Sprintf("path is a directory, not a file: %s", path),
		}
	}

	if ext := filepath.Ext(path); !s.cfg.Security.ExtensionAllowed(ext) {
		return &browser.Error{
			Kind:    browser.ErrInteractionRejected,
			Message: fmt.Sprintf("file extension %s is not allowed", ext),
			Hint:    fmt.Sprintf("allowed extensions: %s", strings.Join(s.cfg.Security.AllowedFileExtensions, ", ")),
		}
	}

	maxBytes := int64(s.cfg.Security.MaxFileSizeMB) * 1024 * 1024
	if info.Size() > maxBytes {
		return &browser.Error{
			Kind:    browser.ErrInteractionRejected,
			Message: fmt.Sprintf("file exceeds the %dMB size limit", s.cfg.Security.MaxFileSizeMB),
		}
	}
	return nil
}
