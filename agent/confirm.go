package agent

import (
	"context"
	"fmt"

	"github.com/tbxark/locationagent/command"
	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/types"
)

type confirmState struct {
	Prompt string `json:"prompt"`
}

// confirmDialog asks a yes/no question until it gets a definite answer. It has no
// retry limit.
type confirmDialog struct {
	flow *LocationFlow
}

func (d *confirmDialog) ID() string {
	return dialogConfirm
}

func (d *confirmDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	a, _ := args.(confirmArgs)
	if err := dc.Save(confirmState{Prompt: a.Prompt}); err != nil {
		return err
	}
	dc.Send(types.TextMessage(a.Prompt))
	return nil
}

func (d *confirmDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	var state confirmState
	if err := dc.Load(&state); err != nil {
		return err
	}
	answer, err := d.flow.answers.ParseAnswer(ctx, &command.AnswerRequest{
		Prompt: state.Prompt,
		Input:  input.Trimmed(),
	})
	if err != nil {
		return fmt.Errorf("failed to parse answer: %w", err)
	}
	switch answer {
	case command.Yes:
		dc.Done(true)
	case command.No:
		dc.Done(false)
	default:
		dc.Send(
			types.TextMessage(d.flow.strings.ConfirmationInvalidResponse),
			types.TextMessage(state.Prompt),
		)
	}
	return nil
}

func (d *confirmDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	return fmt.Errorf("confirm dialog has no children, got target %q", target)
}
