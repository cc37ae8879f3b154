package testcases

import (
	"context"
	"reflect"
	"testing"

	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/types"
)

func TestRejectedConfirmationRestarts(t *testing.T) {
	ctx := context.Background()
	states := agent.NewMemoryStateReadWriter()
	flow := NewTestFlow(t, agent.Config{UseFavorites: true}, WithStates(states))
	strs := flow.Config().Strings
	conv := NewConversation(flow, "conv-r", "user-r")

	start := mustResponse(t)(conv.Begin(ctx))
	resp := mustResponse(t)(conv.Script(ctx, strs.OtherLocation, "123 Main St", "yes"))
	if resp.Phase != types.PhaseConfirming {
		t.Fatalf("expected final confirmation, got %+v", resp)
	}

	resp = mustResponse(t)(conv.Say(ctx, "no"))
	if resp.Completed || resp.Declined {
		t.Fatalf("a rejected confirmation restarts the flow, got %+v", resp)
	}
	if len(resp.Messages) == 0 || resp.Messages[0].Text != strs.ResetPrompt {
		t.Fatalf("expected reset prompt first, got %+v", resp.Messages)
	}
	if !reflect.DeepEqual(resp.Messages[1:], start.Messages) {
		t.Errorf("restart prompt differs from start:\n got %+v\nwant %+v", resp.Messages[1:], start.Messages)
	}

	state, ok, err := states.Read(ctx, conv.Session)
	if err != nil || !ok {
		t.Fatalf("expected stored state, ok=%v err=%v", ok, err)
	}
	if state.Conversation.SelectedLocation != nil {
		t.Errorf("selected location should be discarded, got %+v", state.Conversation.SelectedLocation)
	}
	if state.Stack.Len() != 1 {
		t.Errorf("expected only the root frame, got %v", state.Stack.Path())
	}
}
