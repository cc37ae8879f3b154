package agent

import (
	"context"
	"fmt"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/types"
)

const targetAddAsk = "add_ask"

type addFavoriteState struct {
	Location *types.Location `json:"location"`
}

// addFavoriteDialog offers to save the confirmed location and asks for its name. It
// finishes with a favorites.AddResult.
type addFavoriteDialog struct {
	flow *LocationFlow
}

func (d *addFavoriteDialog) ID() string {
	return dialogAddFavorite
}

func (d *addFavoriteDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	loc, _ := args.(*types.Location)
	if loc == nil {
		return fmt.Errorf("no location to save")
	}
	userID := dc.Session.UserID
	full, err := d.flow.favorites.Full(ctx, userID)
	if err != nil {
		return err
	}
	if full {
		dc.Done(favorites.CapacityReached)
		return nil
	}
	known, err := d.flow.favorites.IsFavorite(ctx, userID, loc)
	if err != nil {
		return err
	}
	if known {
		dc.Done(favorites.AlreadyFavorite)
		return nil
	}
	if err := dc.Save(addFavoriteState{Location: loc}); err != nil {
		return err
	}
	dc.Call(dialogConfirm, confirmArgs{Prompt: d.flow.strings.AddToFavoritesAsk}, targetAddAsk)
	return nil
}

func (d *addFavoriteDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	if target != targetAddAsk {
		return fmt.Errorf("unknown resume target %q", target)
	}
	if confirmed, _ := dialog.Value[bool](result); !confirmed {
		dc.Done(FavoriteDeclined)
		return nil
	}
	dc.Send(types.TextMessage(d.flow.strings.EnterNewFavoriteLocationName))
	return nil
}

func (d *addFavoriteDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	s := d.flow.strings
	var state addFavoriteState
	if err := dc.Load(&state); err != nil {
		return err
	}
	name := input.Trimmed()
	if name == "" {
		dc.Send(types.TextMessage(s.EnterNewFavoriteLocationName))
		return nil
	}
	taken, err := d.flow.favorites.IsFavoriteName(ctx, dc.Session.UserID, name)
	if err != nil {
		return err
	}
	if taken {
		dc.Send(types.TextMessage(fmt.Sprintf(s.DuplicateFavoriteNameResponse, name)))
		return nil
	}
	res, err := d.flow.favorites.Add(ctx, dc.Session.UserID, favorites.Entry{Name: name, Location: *state.Location})
	if err != nil {
		return err
	}
	switch res {
	case favorites.Added:
		dc.Send(types.TextMessage(fmt.Sprintf(s.FavoriteAddedConfirmation, name)))
		dc.Done(res)
	case favorites.DuplicateName:
		dc.Send(types.TextMessage(fmt.Sprintf(s.DuplicateFavoriteNameResponse, name)))
	case favorites.InvalidName:
		dc.Send(types.TextMessage(s.EnterNewFavoriteLocationName))
	default:
		dc.Done(res)
	}
	return nil
}
