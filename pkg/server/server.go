// Package server exposes browser automation as MCP tools.
//
// Every tool resolves its target session through the registry, performs
// the operation, and reports the outcome in a uniform envelope. Tool
// handlers never return protocol errors: failures are classified into
// the error taxonomy and carried as data.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel/trace"

	"github.com/entrhq/surf/pkg/browser"
	"github.com/entrhq/surf/pkg/config"
)

// Server holds the shared state behind the tool surface.
type Server struct {
	cfg     config.Config
	manager *browser.Manager
	log     *slog.Logger
	tracer  trace.Tracer
	started time.Time
}

// New builds a Server around an initialized manager.
func New(cfg config.Config, manager *browser.Manager, log *slog.Logger, tracer trace.Tracer) *Server {
	return &Server{
		cfg:     cfg,
		manager: manager,
		log:     log,
		tracer:  tracer,
		started: time.Now(),
	}
}

// Register attaches every tool to the MCP server.
func (s *Server) Register(m *mcp.Server) {
	// Session lifecycle.
	addTool(s, m, "start_browser", "Start a new browser session. Supported browsers: chrome, firefox, edge.", s.startBrowser)
	addTool(s, m, "close_session", "Close a browser session and release its resources.", s.closeSession)
	addTool(s, m, "list_sessions", "List all open browser sessions.", s.listSessions)
	addTool(s, m, "switch_session", "Make a session the active one for subsequent operations.", s.switchSession)
	addTool(s, m, "health_check", "Report server health and session capacity.", s.healthCheck)

	// Navigation.
	addTool(s, m, "navigate", "Navigate the session to a URL.", s.navigate)
	addTool(s, m, "go_back", "Go back in the session's history.", s.goBack)
	addTool(s, m, "go_forward", "Go forward in the session's history.", s.goForward)
	addTool(s, m, "refresh_page", "Reload the current page.", s.refreshPage)
	addTool(s, m, "get_current_url", "Get the current page URL.", s.getCurrentURL)
	addTool(s, m, "get_page_title", "Get the current page title.", s.getPageTitle)
	addTool(s, m, "get_page_source", "Get the full HTML source of the current page.", s.getPageSource)
	addTool(s, m, "wait_for_page_load", "Wait until the current page finishes loading.", s.waitForPageLoad)

	// Element lookup.
	addTool(s, m, "find_element", "Find a single element by locator strategy and value.", s.findElement)
	addTool(s, m, "find_elements", "Find all elements matching a locator strategy and value.", s.findElements)
	addTool(s, m, "wait_for_element", "Wait for an element to satisfy a condition: presence, visible, or clickable.", s.waitForElement)
	addTool(s, m, "get_element_text", "Get an element's text content.", s.getElementText)
	addTool(s, m, "get_element_attribute", "Get the value of an element's attribute.", s.getElementAttribute)
	addTool(s, m, "scroll_to_element", "Scroll an element into view.", s.scrollToElement)

	// Interaction.
	addTool(s, m, "click_element", "Click an element once it is clickable.", s.clickElement)
	addTool(s, m, "double_click_element", "Double-click an element.", s.doubleClickElement)
	addTool(s, m, "right_click_element", "Right-click an element.", s.rightClickElement)
	addTool(s, m, "hover", "Hover the pointer over an element.", s.hover)
	addTool(s, m, "send_keys", "Type text into an element, optionally clearing it first.", s.sendKeys)
	addTool(s, m, "clear_element", "Clear an input element's value.", s.clearElement)
	addTool(s, m, "select_dropdown_option", "Select a dropdown option by its visible text.", s.selectDropdownOption)
	addTool(s, m, "drag_and_drop", "Drag one element onto another.", s.dragAndDrop)
	addTool(s, m, "press_key", "Press a keyboard key such as ENTER, TAB, or ESCAPE.", s.pressKey)
	addTool(s, m, "upload_file", "Upload a local file through a file input element.", s.uploadFile)

	// Capture and scripting.
	addTool(s, m, "take_screenshot", "Capture a screenshot of the full page.", s.takeScreenshot)
	addTool(s, m, "take_element_screenshot", "Capture a screenshot of a single element.", s.takeElementScreenshot)
	addTool(s, m, "execute_script", "Execute JavaScript in the page and return its result.", s.executeScript)
	addTool(s, m, "execute_async_script", "Execute JavaScript with a completion deadline.", s.executeAsyncScript)
}

// addTool registers a typed handler, wrapping it with tracing and debug
// logging. Handlers return envelopes, never errors, so the transport
// always sees a structured result.
func addTool[In, Out any](s *Server, m *mcp.Server, name, description string, handler func(context.Context, In) Out) {
	mcp.AddTool(m, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
			ctx, span := s.tracer.Start(ctx, "surf."+name)
			defer span.End()

			s.log.Debug("tool invoked", "tool", name)
			out := handler(ctx, in)
			return nil, out, nil
		})
}

func (s *Server) registry() *browser.Registry {
	return s.manager.Registry()
}

// timeout converts a per-call millisecond override into a duration,
// falling back to the configured default.
func (s *Server) timeout(ms int) time.Duration {
	if ms <= 0 {
		return s.manager.DefaultTimeout()
	}
	return time.Duration(ms) * time.Millisecond
}

// locate resolves the target session and waits for the element described
// by the locator to satisfy cond.
func (s *Server) locate(sessionID, strategy, value string, timeoutMS int, cond browser.Condition) (*browser.Session, playwright.ElementHandle, error) {
	sess, err := s.registry().Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	loc := browser.Locator{Strategy: browser.Strategy(strategy), Value: value}
	handle, err := browser.FindOne(sess, loc, s.timeout(timeoutMS), cond)
	if err != nil {
		return nil, nil, err
	}
	return sess, handle, nil
}
