package agent

import (
	"context"
	"fmt"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/store"
	"github.com/tbxark/locationagent/types"
)

// Conversation is the state shared by every dialog of one flow run.
type Conversation struct {
	UserID                  string           `json:"user_id"`
	Phase                   types.Phase      `json:"phase"`
	Branch                  types.Branch     `json:"branch"`
	SelectedLocation        *types.Location  `json:"selected_location,omitempty"`
	RequiredFieldsSatisfied bool             `json:"required_fields_satisfied"`
	ShouldSaveAsFavorite    bool             `json:"should_save_as_favorite"`
	PendingCandidates       []types.Location `json:"pending_candidates,omitempty"`
}

// State is the blob persisted between turns.
type State struct {
	Conversation Conversation `json:"conversation"`
	Stack        dialog.Stack `json:"stack"`
}

func (s *State) Clone() *State {
	out := &State{
		Conversation: s.Conversation,
		Stack:        s.Stack.Clone(),
	}
	out.Conversation.SelectedLocation = s.Conversation.SelectedLocation.Clone()
	if s.Conversation.PendingCandidates != nil {
		out.Conversation.PendingCandidates = make([]types.Location, len(s.Conversation.PendingCandidates))
		for i := range s.Conversation.PendingCandidates {
			out.Conversation.PendingCandidates[i] = *s.Conversation.PendingCandidates[i].Clone()
		}
	}
	return out
}

// StateReadWriter persists flow state keyed by session.
type StateReadWriter interface {
	Read(ctx context.Context, key SessionKey) (*State, bool, error)
	Write(ctx context.Context, key SessionKey, state *State) error
	Remove(ctx context.Context, key SessionKey) error
}

type CacheStateReadWriter struct {
	store store.Store[*State]
}

func NewStateReadWriter(core store.Cache[*State]) *CacheStateReadWriter {
	return &CacheStateReadWriter{store: store.New(core, "location_state")}
}

// NewMemoryStateReadWriter is an in-memory implementation for testing and local usage.
func NewMemoryStateReadWriter() *CacheStateReadWriter {
	return NewStateReadWriter(store.NewMemoryCache[*State]())
}

func (c *CacheStateReadWriter) Read(ctx context.Context, key SessionKey) (*State, bool, error) {
	state, ok, err := c.store.Get(ctx, key.String())
	if err != nil {
		return nil, false, fmt.Errorf("read state %s: %w", key, err)
	}
	if !ok || state == nil {
		return nil, false, nil
	}
	return state.Clone(), true, nil
}

func (c *CacheStateReadWriter) Write(ctx context.Context, key SessionKey, state *State) error {
	if state.Conversation.Phase == "" {
		state.Conversation.Phase = types.PhaseCollecting
	}
	if err := c.store.Set(ctx, key.String(), state.Clone()); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	return nil
}

func (c *CacheStateReadWriter) Remove(ctx context.Context, key SessionKey) error {
	if err := c.store.Del(ctx, key.String()); err != nil {
		return fmt.Errorf("remove state %s: %w", key, err)
	}
	return nil
}

var _ StateReadWriter = (*CacheStateReadWriter)(nil)
