package testcases

import (
	"context"
	"testing"

	"github.com/tbxark/locationagent/agent"
)

func TestToolBasedConfirmation(t *testing.T) {
	chatModel := InitChatModel(t)
	if chatModel == nil {
		return
	}
	flow, err := agent.NewToolBasedLocationFlow(agent.Config{}, agent.Dependencies{Resolver: NewFixtureResolver()}, chatModel)
	if err != nil {
		t.Fatalf("failed to create flow: %v", err)
	}
	ctx := context.Background()
	conv := NewConversation(flow, "conv-live", "user-live")
	mustResponse(t)(conv.Begin(ctx))

	resp := mustResponse(t)(conv.Script(ctx, "123 Main St", "that is the one I meant", "please go ahead and ship it there"))
	if !resp.Completed {
		text, _ := resp.Text()
		t.Fatalf("expected completion, last reply:\n%s", text)
	}
	t.Logf("place: %+v", resp.Place)
}
