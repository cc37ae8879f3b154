package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/types"
)

type chooseState struct {
	Count int `json:"count"`
}

// chooseDialog waits for a 1-based candidate number, or the other command.
type chooseDialog struct {
	flow *LocationFlow
}

func (d *chooseDialog) ID() string {
	return dialogChoose
}

func (d *chooseDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	a, _ := args.(chooseArgs)
	if err := dc.Save(chooseState{Count: a.Count}); err != nil {
		return err
	}
	s := d.flow.strings
	dc.Send(types.TextMessage(fmt.Sprintf(s.MultipleResultsFound, s.OtherCommand)))
	return nil
}

func (d *chooseDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	s := d.flow.strings
	var state chooseState
	if err := dc.Load(&state); err != nil {
		return err
	}
	text := input.Trimmed()
	if strings.EqualFold(text, s.OtherCommand) {
		dc.Done(choice{Other: true})
		return nil
	}
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= state.Count {
		dc.Done(choice{Index: n - 1})
		return nil
	}
	dc.Send(types.TextMessage(fmt.Sprintf(s.InvalidLocationResponse, s.OtherCommand)))
	return nil
}

func (d *chooseDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	return fmt.Errorf("choose dialog has no children, got target %q", target)
}
