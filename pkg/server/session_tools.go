package server

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/surf/pkg/browser"
)

type startBrowserIn struct {
	Browser      string   `json:"browser" jsonschema:"description=Browser to launch: chrome, firefox, or edge"`
	Headless     bool     `json:"headless,omitempty" jsonschema:"description=Run without a visible window"`
	WindowWidth  int      `json:"window_width,omitempty" jsonschema:"description=Viewport width in pixels, defaults to 1920"`
	WindowHeight int      `json:"window_height,omitempty" jsonschema:"description=Viewport height in pixels, defaults to 1080"`
	Args         []string `json:"args,omitempty" jsonschema:"description=Extra browser launch arguments"`
}

type startBrowserOut struct {
	Status
	SessionID string `json:"session_id,omitempty"`
	Browser   string `json:"browser_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) startBrowser(ctx context.Context, in startBrowserIn) startBrowserOut {
	session, err := s.manager.Start(browser.Kind(in.Browser), browser.SessionOptions{
		Headless:     in.Headless,
		WindowWidth:  in.WindowWidth,
		WindowHeight: in.WindowHeight,
		ExtraArgs:    in.Args,
	})
	if err != nil {
		return startBrowserOut{Status: failure(err)}
	}
	return startBrowserOut{
		Status:    ok(),
		SessionID: session.ID,
		Browser:   string(session.Kind),
		Message:   fmt.Sprintf("started %s session %s", session.Kind, session.ID),
	}
}

type sessionIn struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
}

type closeSessionOut struct {
	Status
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) closeSession(ctx context.Context, in sessionIn) closeSessionOut {
	closed, err := s.manager.Stop(in.SessionID)
	if err != nil {
		return closeSessionOut{Status: failure(err)}
	}
	return closeSessionOut{
		Status:    ok(),
		SessionID: closed,
		Message:   fmt.Sprintf("closed session %s", closed),
	}
}

type listSessionsIn struct{}

type listSessionsOut struct {
	Status
	Sessions      []browser.SessionSummary `json:"sessions"`
	Count         int                      `json:"count"`
	ActiveSession string                   `json:"active_session,omitempty"`
}

func (s *Server) listSessions(ctx context.Context, in listSessionsIn) listSessionsOut {
	summaries := s.registry().List()
	return listSessionsOut{
		Status:        ok(),
		Sessions:      summaries,
		Count:         len(summaries),
		ActiveSession: s.registry().Active(),
	}
}

type switchSessionIn struct {
	SessionID string `json:"session_id" jsonschema:"description=Session id to make active"`
}

type switchSessionOut struct {
	Status
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (s *Server) switchSession(ctx context.Context, in switchSessionIn) switchSessionOut {
	if err := s.registry().SetActive(in.SessionID); err != nil {
		return switchSessionOut{Status: failure(err)}
	}
	return switchSessionOut{
		Status:    ok(),
		SessionID: in.SessionID,
		Message:   fmt.Sprintf("switched active session to %s", in.SessionID),
	}
}

type healthCheckIn struct{}

type healthCheckOut struct {
	Status            string   `json:"status"`
	Version           string   `json:"version"`
	ActiveSessions    int      `json:"active_sessions"`
	MaxSessions       int      `json:"max_sessions"`
	UptimeSeconds     int64    `json:"uptime_seconds"`
	SupportedBrowsers []string `json:"supported_browsers"`
	ScreenshotDir     string   `json:"screenshot_dir"`
}

func (s *Server) healthCheck(ctx context.Context, in healthCheckIn) healthCheckOut {
	return healthCheckOut{
		Status:            "healthy",
		Version:           s.cfg.Server.Version,
		ActiveSessions:    s.registry().Len(),
		MaxSessions:       s.registry().Capacity(),
		UptimeSeconds:     int64(time.Since(s.started) / time.Second),
		SupportedBrowsers: browser.Kinds(),
		ScreenshotDir:     s.cfg.Screenshots.Directory,
	}
}
