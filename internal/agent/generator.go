package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quillworks/mimic/internal/llm"
)

// Backend is the language-model call the generator wraps. *llm.Client
// satisfies it; tests inject stubs.
type Backend interface {
	Invoke(ctx context.Context, system, user string, tool llm.Tool) (string, error)
}

// Field is one required string field of a generator's output schema.
type Field struct {
	Name string
	Desc string
}

// Generator wraps a single LLM call with a forced function-call schema and
// the deterministic extraction of the structured payload from the reply.
type Generator struct {
	name     string // agent name, doubles as the reply delimiter prefix
	system   string
	tool     llm.Tool
	required []string
	backend  Backend
	logger   *slog.Logger
}

func NewGenerator(name, toolName, toolDesc, system string, fields []Field, backend Backend, logger *slog.Logger) *Generator {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[f.Name] = map[string]any{"type": "string", "description": f.Desc}
		required = append(required, f.Name)
	}
	return &Generator{
		name:   name,
		system: system,
		tool: llm.Tool{
			Name:        toolName,
			Description: toolDesc,
			Parameters: map[string]any{
				"type":       "object",
				"properties": props,
				"required":   required,
			},
		},
		required: required,
		backend:  backend,
		logger:   logger,
	}
}

// Invoke runs the composed task against the backend and returns the parsed
// field mapping. All parse failures are terminal for this call.
func (g *Generator) Invoke(ctx context.Context, task string) (map[string]string, error) {
	g.logger.Info("invoking agent", "agent", g.name, "task_len", len(task))

	raw, err := g.backend.Invoke(ctx, g.system, task, g.tool)
	if err != nil {
		return nil, fmt.Errorf("llm invoke: %w", err)
	}

	fields, err := g.parseReply(raw)
	if err != nil {
		g.logger.Error("failed to parse agent reply", "agent", g.name, "error", err, "raw", raw)
		return nil, err
	}

	g.logger.Info("agent reply parsed", "agent", g.name, "fields", len(fields))
	return fields, nil
}

// toolCall is the forced-function-call wire shape the backend guarantees:
// a list of calls, each carrying the function name and an arguments string
// holding the actual JSON payload.
type toolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// parseReply strips everything up to and including the "<Agent>:" delimiter,
// parses the remainder strictly as a tool-call list, then decodes the nested
// arguments JSON and checks every required field is a non-empty string.
func (g *Generator) parseReply(raw string) (map[string]string, error) {
	delim := g.name + ":"
	idx := strings.Index(raw, delim)
	if idx < 0 {
		return nil, &MalformedReplyError{Agent: g.name, Reason: fmt.Sprintf("reply has no %q delimiter", delim)}
	}
	payload := strings.TrimSpace(raw[idx+len(delim):])

	var calls []toolCall
	if err := json.Unmarshal([]byte(payload), &calls); err != nil {
		return nil, &MalformedReplyError{Agent: g.name, Reason: "payload is not a tool-call list: " + err.Error()}
	}
	if len(calls) == 0 {
		return nil, &MalformedReplyError{Agent: g.name, Reason: "empty tool-call list"}
	}

	call := calls[0]
	if call.Function.Name != g.tool.Name {
		return nil, &SchemaViolationError{Agent: g.name, Reason: fmt.Sprintf("expected call to %q, got %q", g.tool.Name, call.Function.Name)}
	}

	var args map[string]string
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return nil, &SchemaViolationError{Agent: g.name, Reason: "arguments is not a JSON string map: " + err.Error()}
	}

	for _, f := range g.required {
		if strings.TrimSpace(args[f]) == "" {
			return nil, &SchemaViolationError{Agent: g.name, Field: f, Reason: "missing or empty"}
		}
	}
	return args, nil
}
