package agent

import (
	"github.com/tbxark/locationagent/dialogue"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/types"
)

// SessionKey identifies one conversation of one user. Favorites are keyed by UserID only.
type SessionKey struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

const defaultSessionID = "default"

func (k SessionKey) orDefault() SessionKey {
	if k.ConversationID == "" {
		k.ConversationID = defaultSessionID
	}
	if k.UserID == "" {
		k.UserID = defaultSessionID
	}
	return k
}

func (k SessionKey) String() string {
	return k.ConversationID + ":" + k.UserID
}

type Request struct {
	Session SessionKey  `json:"session"`
	Input   types.Input `json:"input"`
}

type Response struct {
	Messages  []types.Message     `json:"messages,omitempty"`
	Phase     types.Phase         `json:"phase"`
	Location  *types.Location     `json:"location,omitempty"`
	Place     *types.Place        `json:"place,omitempty"`
	Favorite  favorites.AddResult `json:"favorite,omitempty"`
	Completed bool                `json:"completed"`
	Declined  bool                `json:"declined"`
}

// Text renders the messages for text-only surfaces.
func (r *Response) Text() (string, error) {
	return dialogue.RenderText(r.Messages)
}

// Outcome is the value the root dialog finishes with.
type Outcome struct {
	Location *types.Location
	Favorite favorites.AddResult
}

// FavoriteDeclined marks a finished flow whose user chose not to save the location.
const FavoriteDeclined favorites.AddResult = "declined"
