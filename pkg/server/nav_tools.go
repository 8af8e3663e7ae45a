package server

import "context"

type navigateIn struct {
	URL       string `json:"url" jsonschema:"description=Absolute URL to navigate to"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
}

type navigateOut struct {
	Status
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
}

func (s *Server) navigate(ctx context.Context, in navigateIn) navigateOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return navigateOut{Status: failure(err)}
	}
	url, title, err := sess.Navigate(in.URL)
	if err != nil {
		return navigateOut{Status: failure(err)}
	}
	return navigateOut{Status: ok(), URL: url, Title: title}
}

type historyOut struct {
	Status
	URL string `json:"url,omitempty"`
}

func (s *Server) goBack(ctx context.Context, in sessionIn) historyOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	url, err := sess.Back()
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	return historyOut{Status: ok(), URL: url}
}

func (s *Server) goForward(ctx context.Context, in sessionIn) historyOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	url, err := sess.Forward()
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	return historyOut{Status: ok(), URL: url}
}

func (s *Server) refreshPage(ctx context.Context, in sessionIn) historyOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	if err := sess.Reload(); err != nil {
		return historyOut{Status: failure(err)}
	}
	return historyOut{Status: ok(), URL: sess.URL()}
}

func (s *Server) getCurrentURL(ctx context.Context, in sessionIn) historyOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return historyOut{Status: failure(err)}
	}
	sess.Touch()
	return historyOut{Status: ok(), URL: sess.URL()}
}

type pageTitleOut struct {
	Status
	Title string `json:"title,omitempty"`
}

func (s *Server) getPageTitle(ctx context.Context, in sessionIn) pageTitleOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return pageTitleOut{Status: failure(err)}
	}
	title, err := sess.Title()
	if err != nil {
		return pageTitleOut{Status: failure(err)}
	}
	sess.Touch()
	return pageTitleOut{Status: ok(), Title: title}
}

type pageSourceOut struct {
	Status
	Source string `json:"source,omitempty"`
	Length int    `json:"length,omitempty"`
}

func (s *Server) getPageSource(ctx context.Context, in sessionIn) pageSourceOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return pageSourceOut{Status: failure(err)}
	}
	source, err := sess.Source()
	if err != nil {
		return pageSourceOut{Status: failure(err)}
	}
	return pageSourceOut{Status: ok(), Source: source, Length: len(source)}
}

type waitForPageLoadIn struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Maximum wait in milliseconds, defaults to the configured timeout"`
}

type waitForPageLoadOut struct {
	Status
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) waitForPageLoad(ctx context.Context, in waitForPageLoadIn) waitForPageLoadOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return waitForPageLoadOut{Status: failure(err)}
	}
	if err := sess.WaitForLoad(s.timeout(in.TimeoutMS)); err != nil {
		return waitForPageLoadOut{Status: failure(err)}
	}
	return waitForPageLoadOut{Status: ok(), URL: sess.URL(), Message: "page loaded"}
}
