package agent

import "fmt"

// MalformedReplyError means the model reply lacked the agent-name delimiter
// or the payload after it was not a tool-call list. Not retried here;
// it usually indicates a prompt/model mismatch, so retry policy belongs to
// the caller.
type MalformedReplyError struct {
	Agent  string
	Reason string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed reply from %s: %s", e.Agent, e.Reason)
}

// SchemaViolationError means the tool-call payload parsed but did not satisfy
// the declared schema: invalid nested arguments JSON, or a required field
// missing or empty.
type SchemaViolationError struct {
	Agent  string
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema violation from %s: field %q %s", e.Agent, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema violation from %s: %s", e.Agent, e.Reason)
}
