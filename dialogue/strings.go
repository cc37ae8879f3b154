// Package dialogue holds the user-facing texts and the card shapes of the location flow.
package dialogue

import (
	"fmt"

	"github.com/tbxark/locationagent/patch"
	"github.com/tbxark/locationagent/types"
)

// Strings is the localizable text table. Templates use fmt verbs.
type Strings struct {
	AddressSeparator string `json:"address_separator" yaml:"address_separator"`

	DialogStartBranchAsk        string `json:"dialog_start_branch_ask" yaml:"dialog_start_branch_ask"`
	FavoriteLocations           string `json:"favorite_locations" yaml:"favorite_locations"`
	OtherLocation               string `json:"other_location" yaml:"other_location"`
	InvalidStartBranchResponse  string `json:"invalid_start_branch_response" yaml:"invalid_start_branch_response"`
	TitleSuffix                 string `json:"title_suffix" yaml:"title_suffix"`
	TitleSuffixNative           string `json:"title_suffix_native" yaml:"title_suffix_native"`
	LocationNotFound            string `json:"location_not_found" yaml:"location_not_found"`
	SingleResultFound           string `json:"single_result_found" yaml:"single_result_found"`
	MultipleResultsFound        string `json:"multiple_results_found" yaml:"multiple_results_found"`
	InvalidLocationResponse     string `json:"invalid_location_response" yaml:"invalid_location_response"`
	InvalidNativeResponse       string `json:"invalid_native_response" yaml:"invalid_native_response"`
	OtherCommand                string `json:"other_command" yaml:"other_command"`
	AskForEmptyAddressTemplate  string `json:"ask_for_empty_address_template" yaml:"ask_for_empty_address_template"`
	ConfirmationAsk             string `json:"confirmation_ask" yaml:"confirmation_ask"`
	ConfirmationInvalidResponse string `json:"confirmation_invalid_response" yaml:"confirmation_invalid_response"`
	ResetPrompt                 string `json:"reset_prompt" yaml:"reset_prompt"`
	CancelPrompt                string `json:"cancel_prompt" yaml:"cancel_prompt"`
	HelpMessage                 string `json:"help_message" yaml:"help_message"`

	StreetAddress string `json:"street_address" yaml:"street_address"`
	Locality      string `json:"locality" yaml:"locality"`
	Region        string `json:"region" yaml:"region"`
	PostalCode    string `json:"postal_code" yaml:"postal_code"`
	Country       string `json:"country" yaml:"country"`

	NewCommand                            string `json:"new_command" yaml:"new_command"`
	DeleteCommand                         string `json:"delete_command" yaml:"delete_command"`
	FavoriteLocationsFound                string `json:"favorite_locations_found" yaml:"favorite_locations_found"`
	NoFavoriteLocationsFound              string `json:"no_favorite_locations_found" yaml:"no_favorite_locations_found"`
	InvalidFavoriteLocationResponse       string `json:"invalid_favorite_location_response" yaml:"invalid_favorite_location_response"`
	InvalidEmptyFavoriteLocationsResponse string `json:"invalid_empty_favorite_locations_response" yaml:"invalid_empty_favorite_locations_response"`
	AddToFavoritesAsk                     string `json:"add_to_favorites_ask" yaml:"add_to_favorites_ask"`
	EnterNewFavoriteLocationName          string `json:"enter_new_favorite_location_name" yaml:"enter_new_favorite_location_name"`
	DuplicateFavoriteNameResponse         string `json:"duplicate_favorite_name_response" yaml:"duplicate_favorite_name_response"`
	FavoriteAddedConfirmation             string `json:"favorite_added_confirmation" yaml:"favorite_added_confirmation"`
	DeleteFavoriteConfirmationAsk         string `json:"delete_favorite_confirmation_ask" yaml:"delete_favorite_confirmation_ask"`
	FavoriteDeletedConfirmation           string `json:"favorite_deleted_confirmation" yaml:"favorite_deleted_confirmation"`
	DeleteFavoriteAbortion                string `json:"delete_favorite_abortion" yaml:"delete_favorite_abortion"`
}

func DefaultStrings() *Strings {
	return &Strings{
		AddressSeparator: ", ",

		DialogStartBranchAsk:        "How would you like to pick a location?",
		FavoriteLocations:           "Favorite Locations",
		OtherLocation:               "Other Location",
		InvalidStartBranchResponse:  "Tap one of the options to proceed.",
		TitleSuffix:                 " Type or say an address.",
		TitleSuffixNative:           " Type or say an address, or send your location with the button below.",
		LocationNotFound:            "I could not find this address. Please try again.",
		SingleResultFound:           "I found this result. Is this the correct address?",
		MultipleResultsFound:        "I found these results. Type or say the number of the address you want, or '%s' to search again.",
		InvalidLocationResponse:     "Didn't get that. Choose a location from the list, or '%s' to search again.",
		InvalidNativeResponse:       "Please type an address or share your location.",
		OtherCommand:                "other",
		AskForEmptyAddressTemplate:  "Please provide the %s.",
		ConfirmationAsk:             "OK, I will ship to %s. Is that correct? Enter 'yes' or 'no'.",
		ConfirmationInvalidResponse: "Type 'yes' or 'no' to continue.",
		ResetPrompt:                 "OK, let's start over.",
		CancelPrompt:                "OK, cancelled.",
		HelpMessage:                 "Say or type a valid address when asked, and I will try to find it. You can give the full address (street, city, region, postal code, country) or part of it. Type 'reset' to start over or 'cancel' to exit.",

		StreetAddress: "street address",
		Locality:      "city or locality",
		Region:        "state or region",
		PostalCode:    "zip or postal code",
		Country:       "country",

		NewCommand:                            "new",
		DeleteCommand:                         "delete",
		FavoriteLocationsFound:                "Type or say the number of the favorite location you want, 'delete' followed by a number to remove it, or 'new' to pick another location.",
		NoFavoriteLocationsFound:              "You do not have any favorite locations yet. Type 'new' to enter an address, and you can save it as a favorite.",
		InvalidFavoriteLocationResponse:       "Type or say a number to choose a favorite location, or 'new' to pick another location.",
		InvalidEmptyFavoriteLocationsResponse: "Type 'new' to enter an address.",
		AddToFavoritesAsk:                     "Do you want me to add this address to your favorite locations?",
		EnterNewFavoriteLocationName:          "OK, please enter a friendly name for this address, such as 'home' or 'work'.",
		DuplicateFavoriteNameResponse:         "You already have a favorite location named '%s'. Please enter a different name.",
		FavoriteAddedConfirmation:             "OK, I added '%s' to your favorite locations.",
		DeleteFavoriteConfirmationAsk:         "Are you sure you want to delete '%s' from your favorite locations?",
		FavoriteDeletedConfirmation:           "OK, I deleted '%s' from your favorite locations.",
		DeleteFavoriteAbortion:                "OK, I kept '%s' in your favorite locations.",
	}
}

// FieldName is the prompt name of a single address field.
func (s *Strings) FieldName(field types.AddressField) string {
	switch field {
	case types.FieldStreetAddress:
		return s.StreetAddress
	case types.FieldLocality:
		return s.Locality
	case types.FieldRegion:
		return s.Region
	case types.FieldPostalCode:
		return s.PostalCode
	case types.FieldCountry:
		return s.Country
	default:
		return field.String()
	}
}

func (s *Strings) AskForField(field types.AddressField) string {
	return fmt.Sprintf(s.AskForEmptyAddressTemplate, s.FieldName(field))
}

func (s *Strings) Confirmation(loc *types.Location) string {
	return fmt.Sprintf(s.ConfirmationAsk, loc.Label(s.AddressSeparator))
}

// Merge fills every empty text of s from fallback.
func (s *Strings) Merge(fallback *Strings) (*Strings, error) {
	if s == nil {
		return fallback, nil
	}
	ops, err := patch.FillMissing(*s, *fallback)
	if err != nil {
		return nil, err
	}
	out, err := patch.ApplyRFC6902(*s, ops)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
