// Package suggest turns a free-text intent into short goal titles using an
// external text generator, falling back to a fixed list whenever that fails.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
)

// DefaultIntent is used when the caller has no intent of its own.
const DefaultIntent = "productive day"

var fallback = [...]string{
	"Read for 15 mins",
	"Short morning stretch",
	"Organize desk space",
	"Drink 2L of water",
	"Plan tomorrow's top 3",
}

// Fallback returns a fresh copy of the fixed suggestion list.
func Fallback() []string {
	out := make([]string, len(fallback))
	copy(out, fallback[:])
	return out
}

// Generator sends a prompt to a text service and returns its raw JSON reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source says where a Result's suggestions came from.
type Source string

const (
	SourceService  Source = "service"
	SourceFallback Source = "fallback"
)

type Result struct {
	Suggestions []string
	Source      Source
	// Err is the reason for a fallback. It is informational only.
	Err error
}

// State is the lifecycle of the most recent Suggest call.
type State int32

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFallback:
		return "fallback"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Gateway is safe to call from a goroutine other than the UI loop.
type Gateway struct {
	gen           Generator
	defaultIntent string
	log           *logging.Logger
	state         atomic.Int32
}

// NewGateway builds a Gateway. A nil gen makes every call return the fallback list.
func NewGateway(gen Generator, defaultIntent string, log *logging.Logger) *Gateway {
	if strings.TrimSpace(defaultIntent) == "" {
		defaultIntent = DefaultIntent
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Gateway{
		gen:           gen,
		defaultIntent: defaultIntent,
		log:           log.WithComponent("suggest"),
	}
}

// State reports the state of the latest call.
func (g *Gateway) State() State {
	return State(g.state.Load())
}

// Prompt builds the instruction sent to the generator.
func Prompt(intent string) string {
	return fmt.Sprintf("Suggest 5 concise, actionable daily goals based on this intent: \"%s\". Keep them short (under 40 characters).", intent)
}

// Suggest never fails: any problem with the service yields the fallback list.
// There is one attempt per call.
func (g *Gateway) Suggest(ctx context.Context, intent string) Result {
	g.state.Store(int32(StatePending))

	intent = strings.TrimSpace(intent)
	if intent == "" {
		intent = g.defaultIntent
	}

	suggestions, err := g.ask(ctx, intent)
	if err != nil {
		g.log.Warn("suggestion request failed, using fallback list", "intent", intent, "error", err)
		g.state.Store(int32(StateFallback))
		return Result{Suggestions: Fallback(), Source: SourceFallback, Err: err}
	}

	g.log.Debug("received suggestions", "intent", intent, "count", len(suggestions))
	g.state.Store(int32(StateSuccess))
	return Result{Suggestions: suggestions, Source: SourceService}
}

var errNoGenerator = errors.New("no suggestion service configured")

func (g *Gateway) ask(ctx context.Context, intent string) (suggestions []string, err error) {
	if g.gen == nil {
		return nil, errNoGenerator
	}
	defer func() {
		// A misbehaving client library must not take the caller down.
		if r := recover(); r != nil {
			suggestions, err = nil, fmt.Errorf("suggestion service panicked: %v", r)
		}
	}()

	raw, err := g.gen.Generate(ctx, Prompt(intent))
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

type response struct {
	Suggestions *[]string `json:"suggestions"`
}

// Decode parses a service reply of the form {"suggestions": ["..."]}. The
// strings are returned as sent, without length checks.
func Decode(raw string) ([]string, error) {
	var resp response
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return nil, fmt.Errorf("malformed suggestion response: %w", err)
	}
	if resp.Suggestions == nil {
		return nil, errors.New("suggestion response has no suggestions field")
	}
	return *resp.Suggestions, nil
}
