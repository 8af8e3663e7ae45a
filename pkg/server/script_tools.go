package server

import "context"

type executeScriptIn struct {
	Script    string `json:"script" jsonschema:"description=JavaScript to evaluate in the page"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
}

type executeScriptOut struct {
	Status
	Result any `json:"result,omitempty"`
}

func (s *Server) executeScript(ctx context.Context, in executeScriptIn) executeScriptOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return executeScriptOut{Status: failure(err)}
	}
	result, err := sess.Evaluate(in.Script)
	if err != nil {
		return executeScriptOut{Status: failure(err)}
	}
	return executeScriptOut{Status: ok(), Result: result}
}

type executeAsyncScriptIn struct {
	Script    string `json:"script" jsonschema:"description=JavaScript to evaluate, may return a promise"`
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Target session id, defaults to the active session"`
	TimeoutMS int    `json:"timeout,omitempty" jsonschema:"description=Completion deadline in milliseconds, defaults to the configured timeout"`
}

func (s *Server) executeAsyncScript(ctx context.Context, in executeAsyncScriptIn) executeScriptOut {
	sess, err := s.registry().Get(in.SessionID)
	if err != nil {
		return executeScriptOut{Status: failure(err)}
	}
	result, err := sess.EvaluateWithTimeout(in.Script, s.timeout(in.TimeoutMS))
	if err != nil {
		return executeScriptOut{Status: failure(err)}
	}
	return executeScriptOut{Status: ok(), Result: result}
}
