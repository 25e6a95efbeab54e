// Package session holds the two fixed prompt flows: the arithmetic query and
// the research reading-list session. Each is one strictly sequential pass:
// request, optional tool run, result.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/petasbytes/wiki-research/internal/runner"
	"github.com/petasbytes/wiki-research/internal/telemetry"
	"github.com/petasbytes/wiki-research/readinglist"
	"github.com/petasbytes/wiki-research/tools"
)

const (
	ArithmeticPrompt = "Multiply 1984135 by 9343116."

	ResearchPrompt = "I need help in researching about the current POTUS where I need 4 articles on it"
	ResearchSystem = "Call the appropriate functions"
)

// ErrNoToolInvocation means the research response carried no
// generate_wikipedia_reading_list invocation. Nothing is written.
var ErrNoToolInvocation = errors.New("session: model did not invoke " + tools.ReadingListToolName)

// Model is what both flows need from the runner.
type Model interface {
	Send(ctx context.Context, req runner.Request) (*anthropic.Message, error)
	Invoke(ctx context.Context, inv runner.Invocation) (string, error)
}

// Settings picks the model and output bound for one flow.
type Settings struct {
	Model     anthropic.Model
	MaxTokens int64
}

// Program names stamped on telemetry events.
const (
	ProgramArithmetic = "arithmetic"
	ProgramResearch   = "research"
)

// Start returns ctx carrying a fresh session for program, used to correlate
// telemetry events and persisted payloads.
func Start(ctx context.Context, program string) (context.Context, string) {
	id := uuid.NewString()
	return telemetry.WithSession(ctx, telemetry.Session{ID: id, Program: program, Started: time.Now()}), id
}

// Arithmetic asks the fixed multiplication prompt and returns the text of the
// first response segment.
func Arithmetic(ctx context.Context, m Model, s Settings) (string, error) {
	msg, err := m.Send(ctx, runner.Request{
		Model:     s.Model,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(ArithmeticPrompt))},
		MaxTokens: s.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return runner.FirstText(msg)
}

// Research sends the fixed research request with the reading-list tool
// declared, then runs the model's invocation of it.
func Research(ctx context.Context, m Model, s Settings) (readinglist.Report, error) {
	msg, err := m.Send(ctx, runner.Request{
		Model:     s.Model,
		System:    ResearchSystem,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(ResearchPrompt))},
		MaxTokens: s.MaxTokens,
		WithTools: true,
	})
	if err != nil {
		return readinglist.Report{}, err
	}

	inv, ok := runner.FindInvocation(msg, tools.ReadingListToolName)
	if !ok {
		return readinglist.Report{}, fmt.Errorf("%w (segments: %v)", ErrNoToolInvocation, runner.SegmentKinds(msg))
	}

	out, err := m.Invoke(ctx, inv)
	if err != nil {
		return readinglist.Report{}, err
	}
	var rep readinglist.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		return readinglist.Report{}, fmt.Errorf("decoding reading list report: %w", err)
	}
	return rep, nil
}
