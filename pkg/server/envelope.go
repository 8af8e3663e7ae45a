package server

import "github.com/entrhq/surf/pkg/browser"

// Status is the uniform result envelope embedded in every tool output.
// Failures are reported as data, never as protocol errors, so clients
// always receive a well-formed result they can branch on.
type Status struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ok returns the success envelope.
func ok() Status {
	return Status{Success: true}
}

// failure classifies err into the error taxonomy and builds the failure
// envelope. This is the single boundary where raw errors become client
// visible.
func failure(err error) Status {
	classified := browser.Classify(err)
	return Status{
		Success:    false,
		Error:      classified.Message,
		ErrorType:  string(classified.Kind),
		Suggestion: classified.Hint,
	}
}
