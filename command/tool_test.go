package command

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	arguments string
	toolName  string
	lastInput []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.lastInput = input
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			ID:       "call_1",
			Function: schema.FunctionCall{Name: f.toolName, Arguments: f.arguments},
		}},
	}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return f, nil
}

func TestToolBasedAnswerParser(t *testing.T) {
	cm := &fakeChatModel{toolName: parseAnswerToolName, arguments: `{"answer":"yes"}`}
	p, err := NewToolBasedAnswerParser(cm)
	if err != nil {
		t.Fatalf("create parser failed: %v", err)
	}
	got, err := p.ParseAnswer(context.Background(), &AnswerRequest{Prompt: "Is this your address?", Input: "that's the one"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != Yes {
		t.Errorf("expected yes, got %s", got)
	}
	if len(cm.lastInput) != 2 || !strings.Contains(cm.lastInput[1].Content, "that's the one") {
		t.Errorf("prompt should carry the user answer, got %+v", cm.lastInput)
	}
}

func TestToolBasedAnswerParserRejectsBadAnswer(t *testing.T) {
	cm := &fakeChatModel{toolName: parseAnswerToolName, arguments: `{"answer":"perhaps"}`}
	p, err := NewToolBasedAnswerParser(cm)
	if err != nil {
		t.Fatalf("create parser failed: %v", err)
	}
	got, err := p.ParseAnswer(context.Background(), &AnswerRequest{Input: "hmm"})
	if err == nil || got != Unknown {
		t.Errorf("expected error and unknown, got %s err=%v", got, err)
	}
}

func TestRegexThenToolFailback(t *testing.T) {
	cm := &fakeChatModel{toolName: parseAnswerToolName, arguments: `{"answer":"no"}`}
	tool, err := NewToolBasedAnswerParser(cm)
	if err != nil {
		t.Fatalf("create parser failed: %v", err)
	}
	p := NewFailbackAnswerParser(NewDefaultAnswerParser(), tool)

	got, _ := p.ParseAnswer(context.Background(), &AnswerRequest{Input: "yes"})
	if got != Yes || cm.lastInput != nil {
		t.Errorf("regex should answer without calling the model, got %s", got)
	}
	got, _ = p.ParseAnswer(context.Background(), &AnswerRequest{Input: "not really that one"})
	if got != No {
		t.Errorf("expected no, got %s", got)
	}
	got, _ = p.ParseAnswer(context.Background(), &AnswerRequest{Input: "definitely not"})
	if got != No || cm.lastInput == nil {
		t.Errorf("model should classify the reply, got %s", got)
	}
}
