package command

import "context"

// Command is a root-level instruction recognized in every waiting state.
type Command string

const (
	Cancel Command = "cancel"
	Reset  Command = "reset"
	Help   Command = "help"
	None   Command = "none"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}

// Answer is the outcome of a yes/no prompt.
type Answer string

const (
	Yes     Answer = "yes"
	No      Answer = "no"
	Unknown Answer = "unknown"
)

type AnswerRequest struct {
	Prompt string `json:"prompt"`
	Input  string `json:"input"`
}

type AnswerParser interface {
	ParseAnswer(ctx context.Context, req *AnswerRequest) (Answer, error)
}
