package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/types"
)

const (
	targetBranch    = "branch"
	targetRequired  = "required"
	targetConfirmed = "confirmed"
	targetFavorite  = "favorite"
)

// locationDialog is the root: branch choice, then acquisition, reverse geocode,
// required fields, confirmation and the optional favorite save.
type locationDialog struct {
	flow *LocationFlow
}

func (d *locationDialog) ID() string {
	return dialogLocation
}

func (d *locationDialog) Begin(ctx context.Context, dc *dialogContext, args any) error {
	conv := dc.Session
	*conv = Conversation{
		UserID:               conv.UserID,
		Phase:                types.PhaseCollecting,
		Branch:               types.BranchNewLocation,
		ShouldSaveAsFavorite: conv.ShouldSaveAsFavorite,
	}
	if !d.flow.config.UseFavorites {
		d.startBranch(dc)
		return nil
	}
	dc.Send(types.CardMessage(d.flow.strings.BranchCard()))
	return nil
}

func (d *locationDialog) Continue(ctx context.Context, dc *dialogContext, input types.Input) error {
	s := d.flow.strings
	text := input.Trimmed()
	switch {
	case strings.EqualFold(text, s.FavoriteLocations):
		dc.Session.Branch = types.BranchFavorites
	case strings.EqualFold(text, s.OtherLocation):
		dc.Session.Branch = types.BranchNewLocation
	default:
		dc.Send(types.TextMessage(s.InvalidStartBranchResponse), types.CardMessage(s.BranchCard()))
		return nil
	}
	d.startBranch(dc)
	return nil
}

func (d *locationDialog) startBranch(dc *dialogContext) {
	dc.Session.RequiredFieldsSatisfied = false
	slog.Debug("Starting branch", "branch", dc.Session.Branch)
	if dc.Session.Branch == types.BranchFavorites {
		dc.Call(dialogFavorites, nil, targetBranch)
		return
	}
	dc.Call(dialogResolve, d.flow.config.Prompt, targetBranch)
}

func (d *locationDialog) Resume(ctx context.Context, dc *dialogContext, target string, result dialog.Result) error {
	s := d.flow.strings
	conv := dc.Session
	switch result.Status {
	case dialog.StatusReset:
		dc.Send(types.TextMessage(s.ResetPrompt))
		return d.Begin(ctx, dc, nil)
	case dialog.StatusAborted:
		dc.Send(types.TextMessage(s.CancelPrompt))
		dc.End(result)
		return nil
	}

	switch target {
	case targetBranch:
		acq, _ := dialog.Value[acquisition](result)
		if acq.CreateNew {
			conv.ShouldSaveAsFavorite = true
			conv.Branch = types.BranchNewLocation
			d.startBranch(dc)
			return nil
		}
		conv.SelectedLocation = d.reverseGeocode(ctx, acq.Location)
		return d.afterLocation(dc)
	case targetRequired:
		loc, _ := dialog.Value[*types.Location](result)
		conv.SelectedLocation = loc
		conv.RequiredFieldsSatisfied = true
		return d.confirm(dc)
	case targetConfirmed:
		if confirmed, _ := dialog.Value[bool](result); confirmed {
			d.finalize(dc)
			return nil
		}
		dc.Send(types.TextMessage(s.ResetPrompt))
		return d.Begin(ctx, dc, nil)
	case targetFavorite:
		res, _ := dialog.Value[favorites.AddResult](result)
		dc.Done(&Outcome{Location: conv.SelectedLocation, Favorite: res})
		return nil
	default:
		return fmt.Errorf("unknown resume target %q", target)
	}
}

// reverseGeocode fills a point-only location from the provider. Failures leave the point alone.
func (d *locationDialog) reverseGeocode(ctx context.Context, loc *types.Location) *types.Location {
	cfg := d.flow.config
	if !cfg.ReverseGeocodeOnPointOnly || loc == nil || loc.Point == nil || loc.HasAddress() {
		return loc
	}
	geocoded, err := d.flow.resolver.ReverseGeocode(ctx, cfg.APIKey, *loc.Point)
	if err != nil {
		slog.Error("Reverse geocode failed", "point", loc.Point, "error", err)
		return loc
	}
	enriched, err := geo.Enrich(loc, geocoded)
	if err != nil {
		slog.Error("Reverse geocode enrichment failed", "point", loc.Point, "error", err)
		return loc
	}
	slog.Debug("Reverse geocoded point", "point", loc.Point, "address", enriched.Address)
	return enriched
}

func (d *locationDialog) afterLocation(dc *dialogContext) error {
	conv := dc.Session
	if conv.SelectedLocation == nil {
		return fmt.Errorf("branch %s finished without a location", conv.Branch)
	}
	if req := d.flow.config.RequiredFields; req != 0 && !conv.RequiredFieldsSatisfied {
		dc.Call(dialogRequiredFields, requiredFieldsArgs{Location: conv.SelectedLocation, Fields: req}, targetRequired)
		return nil
	}
	return d.confirm(dc)
}

func (d *locationDialog) confirm(dc *dialogContext) error {
	if d.flow.config.SkipConfirmation {
		d.finalize(dc)
		return nil
	}
	dc.Session.Phase = types.PhaseConfirming
	dc.Call(dialogConfirm, confirmArgs{Prompt: d.flow.strings.Confirmation(dc.Session.SelectedLocation)}, targetConfirmed)
	return nil
}

func (d *locationDialog) finalize(dc *dialogContext) {
	conv := dc.Session
	if conv.ShouldSaveAsFavorite && d.flow.config.UseFavorites {
		dc.Call(dialogAddFavorite, conv.SelectedLocation, targetFavorite)
		return
	}
	dc.Done(&Outcome{Location: conv.SelectedLocation})
}
