package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/wiki-research/internal/metrics"
	"github.com/petasbytes/wiki-research/internal/telemetry"
	"github.com/petasbytes/wiki-research/tools"
)

var (
	// ErrEmptyResponse means the model returned no content segments.
	ErrEmptyResponse = errors.New("runner: response has no content")
	// ErrUnexpectedSegment means a segment was not of the kind the caller needs.
	ErrUnexpectedSegment = errors.New("runner: unexpected content segment")
	// ErrToolNotFound means an invocation named a tool that was never declared.
	ErrToolNotFound = errors.New("runner: tool not found")
)

// Request is one prompt request. It is not modified by Send.
type Request struct {
	Model     anthropic.Model
	System    string
	Messages  []anthropic.MessageParam
	MaxTokens int64
	// WithTools declares every registered tool on the request.
	WithTools bool
}

// Invocation is a tool_use segment lifted out of a response.
type Invocation struct {
	ID    string
	Name  string
	Input json.RawMessage
}

type Runner struct {
	Client *anthropic.Client
	Tools  []tools.ToolDefinition
	// Debug, when set, receives the raw JSON of every response.
	Debug io.Writer
}

func New(client *anthropic.Client, toolDefs []tools.ToolDefinition) *Runner {
	return &Runner{Client: client, Tools: toolDefs}
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// Send issues req and returns the model's message. There is no retry beyond
// what the SDK client does by default.
func (r *Runner) Send(ctx context.Context, req Request) (*anthropic.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  req.Messages,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.WithTools {
		params.Tools = r.anthropicTools()
	}

	telemetry.EmitCtx(ctx, "request_sent", map[string]any{
		"model":      string(req.Model),
		"max_tokens": req.MaxTokens,
		"messages":   len(req.Messages),
		"tools":      len(params.Tools),
		"prompt":     promptFeatures(req).Map(),
		"est_tokens": metrics.EstimateTokens(req.System, req.Messages),
	})
	if telemetry.PersistPayloadsEnabled() {
		if b, err := json.Marshal(params); err == nil {
			telemetry.PersistPayload(ctx, "request", b)
		}
	}

	start := time.Now()
	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("messages.new: %w", err)
	}

	raw := msg.RawJSON()
	telemetry.PersistPayload(ctx, "response", []byte(raw))
	if r.Debug != nil {
		fmt.Fprintln(r.Debug, raw)
	}
	telemetry.EmitCtx(ctx, "response_received", map[string]any{
		"model":         string(req.Model),
		"duration_ms":   time.Since(start).Milliseconds(),
		"stop_reason":   string(msg.StopReason),
		"segments":      SegmentKinds(msg),
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
	})
	return msg, nil
}

// SegmentKinds lists the type of every content segment in order.
func SegmentKinds(msg *anthropic.Message) []string {
	if msg == nil {
		return nil
	}
	kinds := make([]string, 0, len(msg.Content))
	for _, b := range msg.Content {
		kinds = append(kinds, b.Type)
	}
	return kinds
}

// FirstText returns the text of segment 0.
func FirstText(msg *anthropic.Message) (string, error) {
	if msg == nil || len(msg.Content) == 0 {
		return "", ErrEmptyResponse
	}
	tb, ok := msg.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("%w: segment 0 is %q, want text", ErrUnexpectedSegment, msg.Content[0].Type)
	}
	return tb.Text, nil
}

// FindInvocation returns the first tool_use segment named name.
func FindInvocation(msg *anthropic.Message, name string) (Invocation, bool) {
	if msg == nil {
		return Invocation{}, false
	}
	for _, b := range msg.Content {
		tu, ok := b.AsAny().(anthropic.ToolUseBlock)
		if !ok || tu.Name != name {
			continue
		}
		return Invocation{
			ID:    tu.ID,
			Name:  tu.Name,
			Input: json.RawMessage(tu.JSON.Input.Raw()),
		}, true
	}
	return Invocation{}, false
}

// Invoke runs the declared tool matching inv and returns its output.
func (r *Runner) Invoke(ctx context.Context, inv Invocation) (string, error) {
	var def *tools.ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == inv.Name {
			def = &r.Tools[i]
			break
		}
	}

	emit := func(durationMs int64, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   inv.Name,
			"duration_ms": durationMs,
			"input_size":  len(inv.Input),
			"output_size": outputSize,
			"error":       nil,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		telemetry.EmitCtx(ctx, "tool_exec", fields)
	}

	start := time.Now()
	if def == nil {
		emit(time.Since(start).Milliseconds(), 0, "tool not found")
		return "", fmt.Errorf("%w: %q", ErrToolNotFound, inv.Name)
	}

	out, err := def.Function(ctx, inv.Input)
	if err != nil {
		// Generic category only; the error text may echo tool input.
		emit(time.Since(start).Milliseconds(), 0, "tool error")
		return "", fmt.Errorf("tool %s: %w", inv.Name, err)
	}
	emit(time.Since(start).Milliseconds(), len(out), "")
	return out, nil
}

// promptFeatures sums text features over the system prompt and every text block.
func promptFeatures(req Request) metrics.Features {
	f := metrics.CountFeatures(req.System)
	for _, m := range req.Messages {
		for _, blk := range m.Content {
			if tb := blk.OfText; tb != nil {
				f = f.Add(metrics.CountFeatures(tb.Text))
			}
		}
	}
	return f
}
