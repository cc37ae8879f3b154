package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/locationagent/types"
)

var _ adk.Agent = (*Agent)(nil)

type sessionKeyContext struct{}

// WithSession sets the session routed to the flow by Agent.Run.
func WithSession(ctx context.Context, key SessionKey) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionFromContext gets the session set by WithSession.
func SessionFromContext(ctx context.Context) (SessionKey, bool) {
	key, ok := ctx.Value(sessionKeyContext{}).(SessionKey)
	return key, ok
}

// Agent exposes a LocationFlow as an eino agent. Each run consumes the last input
// message as the user turn and emits the rendered reply.
type Agent struct {
	name        string
	description string
	flow        *LocationFlow
	onResponse  func(ctx context.Context, resp *Response)
}

func NewAgent(name, description string, flow *LocationFlow) *Agent {
	return &Agent{
		name:        name,
		description: description,
		flow:        flow,
	}
}

// OnResponse registers fn to observe every flow response before it is emitted.
func (a *Agent) OnResponse(fn func(ctx context.Context, resp *Response)) *Agent {
	a.onResponse = fn
	return a
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}
		session, _ := SessionFromContext(ctx)
		resp, err := a.flow.Invoke(ctx, &Request{
			Session: session,
			Input:   types.Input{Text: input.Messages[len(input.Messages)-1].Content},
		})
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("flow invoke failed: %w", err),
			})
			return
		}
		if a.onResponse != nil {
			a.onResponse(ctx, resp)
		}
		content, err := resp.Text()
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("render reply failed: %w", err),
			})
			return
		}
		gen.Send(&adk.AgentEvent{
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message: &schema.Message{
						Role:    schema.Assistant,
						Content: content,
					},
					Role: schema.Assistant,
				},
			},
		})
	}()
	return iter
}
