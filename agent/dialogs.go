package agent

import (
	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/types"
)

const (
	dialogLocation       = "location"
	dialogFavorites      = "favorites"
	dialogResolve        = "resolve"
	dialogChoose         = "choose"
	dialogConfirm        = "confirm"
	dialogRequiredFields = "required_fields"
	dialogAddFavorite    = "add_favorite"
)

type dialogContext = dialog.Context[Conversation]

// acquisition is what the branch dialogs finish with: a location, or the request to
// leave the favorites list for a new location.
type acquisition struct {
	Location  *types.Location
	CreateNew bool
}

type confirmArgs struct {
	Prompt string
}

type chooseArgs struct {
	Count int
}

// choice is the candidate picked by index, or Other to search again.
type choice struct {
	Index int
	Other bool
}

type requiredFieldsArgs struct {
	Location *types.Location
	Fields   types.AddressRequirement
}
