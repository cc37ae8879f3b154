package dialogue

import (
	"fmt"
	"strconv"

	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/types"
)

// BranchCard offers the two start branches as buttons.
func (s *Strings) BranchCard() *types.Card {
	return &types.Card{
		Layout:   types.LayoutCarousel,
		Subtitle: s.DialogStartBranchAsk,
		Buttons: []types.Button{
			{Title: s.FavoriteLocations, Value: s.FavoriteLocations},
			{Title: s.OtherLocation, Value: s.OtherLocation},
		},
	}
}

// LocationsCard renders candidates as a carousel. Numeric prefixes are added when
// there is more than one location or alwaysNumber is set.
func (s *Strings) LocationsCard(locations []types.Location, alwaysNumber bool) *types.Card {
	card := &types.Card{Layout: types.LayoutCarousel}
	numbered := alwaysNumber || len(locations) > 1
	for i := range locations {
		loc := locations[i].Clone()
		title := loc.Label(s.AddressSeparator)
		if numbered {
			title = fmt.Sprintf("%d. %s", i+1, title)
		}
		card.Items = append(card.Items, types.CardItem{
			Title:    title,
			Location: loc,
		})
	}
	return card
}

// FavoritesMessages is the favorites carousel with a trailing "new" card, followed by
// a keyboard card carrying the numeric choices.
func (s *Strings) FavoritesMessages(entries []favorites.Entry) []types.Message {
	locations := make([]types.Location, 0, len(entries))
	for _, e := range entries {
		locations = append(locations, e.Location)
	}
	carousel := s.LocationsCard(locations, true)
	for i := range entries {
		carousel.Items[i].Subtitle = entries[i].Name
	}
	carousel.Items = append(carousel.Items, types.CardItem{Subtitle: s.NewCommand})

	prompt := s.FavoriteLocationsFound
	if len(entries) == 0 {
		prompt = s.NoFavoriteLocationsFound
	}
	return []types.Message{
		types.CardMessage(carousel),
		types.CardMessage(s.KeyboardCard(prompt, len(entries), s.NewCommand)),
	}
}

// KeyboardCard is a list card of buttons 1..count followed by the extra commands.
func (s *Strings) KeyboardCard(prompt string, count int, extra ...string) *types.Card {
	card := &types.Card{Layout: types.LayoutList, Title: prompt}
	for i := 1; i <= count; i++ {
		v := strconv.Itoa(i)
		card.Buttons = append(card.Buttons, types.Button{Title: v, Value: v})
	}
	for _, cmd := range extra {
		card.Buttons = append(card.Buttons, types.Button{Title: cmd, Value: cmd})
	}
	return card
}

// NativePickerCard asks the host to show its native location control.
func (s *Strings) NativePickerCard(prompt string) *types.Card {
	return &types.Card{
		Layout:          types.LayoutList,
		Title:           prompt,
		RequestLocation: true,
	}
}
