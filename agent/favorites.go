package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/types"
)

const targetDelete = "delete"

type favoritesState struct {
	Entries  []favorites.Entry `json:"entries"`
	Deleting int               `json:"deleting"`
}

// favoritesDialog lists the user's favorites. A number picks one, the new command
// leaves for a new location and "delete N" removes an entry after confirmation.
type favoritesDialog struct {
	flow *LocationFlow
}

func (d *favoritesDialog) ID() string {
	return dialogFavorites
}

func (d *favoritesDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	entries, err := d.flow.favorites.List(ctx, dc.Session.UserID)
	if err != nil {
		return err
	}
	if err := dc.Save(favoritesState{Entries: entries, Deleting: -1}); err != nil {
		return err
	}
	dc.Send(d.flow.strings.FavoritesMessages(entries)...)
	return nil
}

func (d *favoritesDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	s := d.flow.strings
	var state favoritesState
	if err := dc.Load(&state); err != nil {
		return err
	}
	text := input.Trimmed()
	if strings.EqualFold(text, s.NewCommand) {
		dc.Done(acquisition{CreateNew: true})
		return nil
	}
	if idx, ok := parseIndex(text, len(state.Entries)); ok {
		dc.Done(acquisition{Location: state.Entries[idx].Location.Clone()})
		return nil
	}
	if idx, ok := d.parseDelete(text, len(state.Entries)); ok {
		state.Deleting = idx
		if err := dc.Save(state); err != nil {
			return err
		}
		prompt := fmt.Sprintf(s.DeleteFavoriteConfirmationAsk, state.Entries[idx].Name)
		dc.Call(dialogConfirm, confirmArgs{Prompt: prompt}, targetDelete)
		return nil
	}
	if len(state.Entries) == 0 {
		dc.Send(types.TextMessage(s.InvalidEmptyFavoriteLocationsResponse))
	} else {
		dc.Send(types.TextMessage(s.InvalidFavoriteLocationResponse))
	}
	return nil
}

func (d *favoritesDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	if target != targetDelete {
		return fmt.Errorf("unknown resume target %q", target)
	}
	s := d.flow.strings
	var state favoritesState
	if err := dc.Load(&state); err != nil {
		return err
	}
	if state.Deleting < 0 || state.Deleting >= len(state.Entries) {
		return fmt.Errorf("no favorite pending deletion")
	}
	name := state.Entries[state.Deleting].Name
	if confirmed, _ := dialog.Value[bool](result); confirmed {
		if err := d.flow.favorites.Remove(ctx, dc.Session.UserID, name); err != nil {
			return err
		}
		dc.Send(types.TextMessage(fmt.Sprintf(s.FavoriteDeletedConfirmation, name)))
	} else {
		dc.Send(types.TextMessage(fmt.Sprintf(s.DeleteFavoriteAbortion, name)))
	}
	dc.Replace(dialogFavorites, nil)
	return nil
}

func (d *favoritesDialog) parseDelete(text string, count int) (int, bool) {
	prefix := strings.ToLower(d.flow.strings.DeleteCommand) + " "
	if !strings.HasPrefix(strings.ToLower(text), prefix) {
		return 0, false
	}
	return parseIndex(strings.TrimSpace(text[len(prefix):]), count)
}

// parseIndex maps a 1-based number to an index below count.
func parseIndex(text string, count int) (int, bool) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}
