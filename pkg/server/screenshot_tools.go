package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/surf/pkg/browser"
)

type takeScreenshotIn struct {
	FilePath  string `json:"file_path,omitempty" jsonschema:"description=Where to save the screenshot, defaults to a timestamped file in the screenshot directory"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
}

type screenshotOut struct {
	Status
	ScreenshotPath string `json:"screenshot_path,omitempty"`
	FileSize       int    `json:"file_size,omitempty"`
	Base64Data     string `json:"base64_data,omitempty"`
}

func (s *Server) takeScreenshot(ctx context.Context, in takeScreenshotIn) screenshotOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}

	path, err := s.screenshotPath(in.FilePath)
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}

	buf, err := sess.Screenshot(path)
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}
	return screenshotOut{
		Status:         ok(),
		ScreenshotPath: path,
		FileSize:       len(buf),
		Base64Data:     base64.StdEncoding.EncodeToString(buf),
	}
}

type elementScreenshotIn struct {
	Strategy  string `json:"strategy" jsonschema:"description=Locator strategy: id, css, xpath, name, tag, class, link_text, or partial_link_text"`
	Value     string `json:"value" jsonschema:"description=Locator value for the chosen strategy"`
	FilePath  string `json:"file_path,omitempty" jsonschema:"description=Where to save the screenshot, defaults to a timestamped file in the screenshot directory"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

func (s *Server) takeElementScreenshot(ctx context.Context, in elementScreenshotIn) screenshotOut {
	sess, handle, err := s.locate(in.SessionID, in.Strategy, in.Value, in.TimeoutMS, browser.ConditionVisible)
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}

	path, err := s.screenshotPath(in.FilePath)
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}

	buf, err := handle.Screenshot(playwright.ElementHandleScreenshotOptions{
		Path: playwright.String(path),
	})
	if err != nil {
		return screenshotOut{Status: failure(err)}
	}
	sess.Touch()
	return screenshotOut{
		Status:         ok(),
		ScreenshotPath: path,
		FileSize:       len(buf),
		Base64Data:     base64.StdEncoding.EncodeToString(buf),
	}
}

// screenshotPath picks the output path, defaulting to a timestamped file
// in the configured screenshot directory, and makes sure the parent
// directory exists.
func (s *Server) screenshotPath(requested string) (string, error) {
	path := requested
	if path == "" {
		name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
		path = filepath.Join(s.cfg.Screenshots.Directory, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return path, nil
}
