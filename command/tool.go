package command

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/locationagent/structured"
)

const (
	parseAnswerToolName        = "parse_yes_no_answer"
	parseAnswerToolDescription = "Classify the user's reply to a yes/no question as yes, no or unknown."
)

const DefaultAnswerSystemPrompt = `You classify replies to yes/no questions asked by a location picking assistant.

Read the assistant question and the user reply together.
- yes: the user clearly agrees or accepts.
- no: the user clearly disagrees or rejects.
- unknown: anything else, including questions back, new addresses or chatter.

Call the '%s' tool with the result.`

type parseAnswerOutput struct {
	Answer Answer `json:"answer" jsonschema:"required,enum=yes,enum=no,enum=unknown,description=The classified answer"`
}

// ToolBasedAnswerParser asks a chat model to classify replies the expressions missed.
type ToolBasedAnswerParser struct {
	chain *structured.Chain[*AnswerRequest, parseAnswerOutput]
}

func NewToolBasedAnswerParser(chatModel model.ToolCallingChatModel) (*ToolBasedAnswerParser, error) {
	chain, err := structured.NewChain[*AnswerRequest, parseAnswerOutput](
		chatModel,
		buildAnswerPrompt,
		parseAnswerToolName,
		parseAnswerToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedAnswerParser{chain: chain}, nil
}

func (p *ToolBasedAnswerParser) ParseAnswer(ctx context.Context, req *AnswerRequest) (Answer, error) {
	result, err := p.chain.Invoke(ctx, req)
	if err != nil {
		return Unknown, err
	}
	switch result.Answer {
	case Yes, No, Unknown:
		return result.Answer, nil
	case "":
		return Unknown, fmt.Errorf("empty answer returned by %s", parseAnswerToolName)
	default:
		return Unknown, fmt.Errorf("unexpected answer %q returned by %s", result.Answer, parseAnswerToolName)
	}
}

func buildAnswerPrompt(ctx context.Context, req *AnswerRequest) ([]*schema.Message, error) {
	if req == nil {
		return nil, fmt.Errorf("nil answer request")
	}
	user := fmt.Sprintf("# Assistant Question:\n%s\n\n# User Answer:\n%s", req.Prompt, req.Input)
	return []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(DefaultAnswerSystemPrompt, parseAnswerToolName)),
		schema.UserMessage(user),
	}, nil
}

var _ AnswerParser = (*ToolBasedAnswerParser)(nil)
