package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/types"
)

const (
	targetSingle = "single"
	targetChoice = "choice"
)

type resolveState struct {
	Prompt string `json:"prompt"`
}

// resolveDialog acquires a new location from a text query or a shared point.
type resolveDialog struct {
	flow *LocationFlow
}

func (d *resolveDialog) ID() string {
	return dialogResolve
}

func (d *resolveDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	prompt, _ := args.(string)
	state := resolveState{Prompt: prompt}
	if err := dc.Save(state); err != nil {
		return err
	}
	d.prompt(dc, state)
	return nil
}

func (d *resolveDialog) prompt(dc *dialogContext, state resolveState) {
	cfg := d.flow.config
	s := d.flow.strings
	text := state.Prompt
	if !cfg.SkipPromptSuffix {
		if cfg.AllowNativePointPicker {
			text += s.TitleSuffixNative
		} else {
			text += s.TitleSuffix
		}
	}
	if cfg.AllowNativePointPicker {
		dc.Send(types.CardMessage(s.NativePickerCard(text)))
		return
	}
	dc.Send(types.TextMessage(text))
}

func (d *resolveDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	cfg := d.flow.config
	s := d.flow.strings
	var state resolveState
	if err := dc.Load(&state); err != nil {
		return err
	}

	if cfg.AllowNativePointPicker && input.Point != nil {
		point := *input.Point
		dc.Session.PendingCandidates = nil
		dc.Done(acquisition{Location: &types.Location{Point: &point}})
		return nil
	}

	text := input.Trimmed()
	if text == "" {
		if cfg.AllowNativePointPicker {
			dc.Send(types.TextMessage(s.InvalidNativeResponse))
			d.prompt(dc, state)
			return nil
		}
		dc.Send(types.TextMessage(s.LocationNotFound))
		return nil
	}

	candidates, err := d.flow.resolver.QueryText(ctx, cfg.APIKey, text)
	if err != nil {
		return fmt.Errorf("failed to query %q: %w", text, err)
	}
	slog.Debug("Resolved query", "query", text, "candidates", len(candidates))
	if len(candidates) == 0 {
		dc.Send(types.TextMessage(s.LocationNotFound))
		return nil
	}
	if len(candidates) > cfg.MaxCandidateCards {
		candidates = candidates[:cfg.MaxCandidateCards]
	}
	dc.Session.PendingCandidates = candidates
	dc.Send(types.CardMessage(s.LocationsCard(candidates, false)))
	if len(candidates) == 1 {
		dc.Call(dialogConfirm, confirmArgs{Prompt: s.SingleResultFound}, targetSingle)
		return nil
	}
	dc.Call(dialogChoose, chooseArgs{Count: len(candidates)}, targetChoice)
	return nil
}

func (d *resolveDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	var state resolveState
	if err := dc.Load(&state); err != nil {
		return err
	}
	pending := dc.Session.PendingCandidates
	dc.Session.PendingCandidates = nil

	var picked *types.Location
	switch target {
	case targetSingle:
		if confirmed, _ := dialog.Value[bool](result); confirmed && len(pending) > 0 {
			picked = pending[0].Clone()
		}
	case targetChoice:
		ch, _ := dialog.Value[choice](result)
		if !ch.Other && ch.Index >= 0 && ch.Index < len(pending) {
			picked = pending[ch.Index].Clone()
		}
	default:
		return fmt.Errorf("unknown resume target %q", target)
	}
	if picked == nil {
		d.prompt(dc, state)
		return nil
	}
	dc.Done(acquisition{Location: picked})
	return nil
}
