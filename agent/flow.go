package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/locationagent/command"
	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/dialogue"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/types"
)

var ErrMissingResolver = errors.New("location flow needs a geocode resolver")

type Dependencies struct {
	Resolver  geo.Resolver
	Favorites favorites.Store
	States    StateReadWriter
	Commands  command.Parser
	Answers   command.AnswerParser
}

// LocationFlow collects one confirmed location per conversation, one turn at a time.
type LocationFlow struct {
	config    Config
	strings   *dialogue.Strings
	resolver  geo.Resolver
	favorites favorites.Store
	states    StateReadWriter
	commands  command.Parser
	answers   command.AnswerParser
	engine    *dialog.Engine[Conversation]
}

func NewLocationFlow(cfg Config, deps Dependencies) (*LocationFlow, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if deps.Resolver == nil {
		return nil, ErrMissingResolver
	}
	if deps.Favorites == nil {
		deps.Favorites = favorites.NewMemoryStore(cfg.MaxFavorites)
	}
	if deps.States == nil {
		deps.States = NewMemoryStateReadWriter()
	}
	if deps.Commands == nil {
		deps.Commands = command.NewLocalCommandParser()
	}
	if deps.Answers == nil {
		answers, aErr := command.NewRegexAnswerParser(cfg.YesPattern, cfg.NoPattern)
		if aErr != nil {
			return nil, fmt.Errorf("failed to create answer parser: %w", aErr)
		}
		deps.Answers = answers
	}
	flow := &LocationFlow{
		config:    cfg,
		strings:   cfg.Strings,
		resolver:  deps.Resolver,
		favorites: deps.Favorites,
		states:    deps.States,
		commands:  deps.Commands,
		answers:   deps.Answers,
		engine:    dialog.NewEngine[Conversation](cfg.MaxDepth),
	}
	err = flow.engine.Register(
		&locationDialog{flow: flow},
		&favoritesDialog{flow: flow},
		&resolveDialog{flow: flow},
		&chooseDialog{flow: flow},
		&confirmDialog{flow: flow},
		&requiredFieldsDialog{flow: flow},
		&addFavoriteDialog{flow: flow},
	)
	if err != nil {
		return nil, err
	}
	return flow, nil
}

// NewToolBasedLocationFlow falls back to the chat model for yes/no replies the
// expressions cannot classify.
func NewToolBasedLocationFlow(cfg Config, deps Dependencies, chatModel model.ToolCallingChatModel) (*LocationFlow, error) {
	regex, err := command.NewRegexAnswerParser(cfg.YesPattern, cfg.NoPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer parser: %w", err)
	}
	tool, err := command.NewToolBasedAnswerParser(chatModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool-based answer parser: %w", err)
	}
	deps.Answers = command.NewFailbackAnswerParser(regex, tool)
	return NewLocationFlow(cfg, deps)
}

func (f *LocationFlow) Config() Config {
	return f.config
}

// Begin starts a new run for session, discarding any previous state.
func (f *LocationFlow) Begin(ctx context.Context, session SessionKey) (*Response, error) {
	session = session.orDefault()
	state := &State{
		Conversation: Conversation{
			UserID: session.UserID,
			Phase:  types.PhaseCollecting,
		},
	}
	slog.Debug("Beginning location flow", "session", session.String())
	turn, err := f.engine.Begin(ctx, &state.Conversation, &state.Stack, dialogLocation, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin flow: %w", err)
	}
	return f.finishTurn(ctx, session, state, turn)
}

// Invoke routes one user turn. Without stored state the turn begins a new run.
func (f *LocationFlow) Invoke(ctx context.Context, req *Request) (*Response, error) {
	session := req.Session.orDefault()
	state, ok, err := f.states.Read(ctx, session)
	if err != nil {
		return nil, err
	}
	if !ok || state.Stack.Empty() {
		return f.Begin(ctx, session)
	}

	cmd := command.None
	if req.Input.Point == nil {
		cmd, err = f.commands.ParseCommand(ctx, req.Input.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse command: %w", err)
		}
	}
	slog.Debug("Parsed command", "command", cmd, "session", session.String(), "path", state.Stack.Path())

	var turn *dialog.Turn
	switch cmd {
	case command.Help:
		turn = &dialog.Turn{Messages: []types.Message{types.TextMessage(f.strings.HelpMessage)}}
	case command.Cancel:
		turn, err = f.engine.Interrupt(ctx, &state.Conversation, &state.Stack, dialog.StatusAborted)
	case command.Reset:
		turn, err = f.engine.Interrupt(ctx, &state.Conversation, &state.Stack, dialog.StatusReset)
	default:
		turn, err = f.engine.Continue(ctx, &state.Conversation, &state.Stack, req.Input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run turn: %w", err)
	}
	return f.finishTurn(ctx, session, state, turn)
}

func (f *LocationFlow) finishTurn(ctx context.Context, session SessionKey, state *State, turn *dialog.Turn) (*Response, error) {
	resp := &Response{
		Messages: turn.Messages,
		Phase:    state.Conversation.Phase,
	}
	if !turn.Finished() {
		if err := f.states.Write(ctx, session, state); err != nil {
			return nil, err
		}
		return resp, nil
	}

	if outcome, ok := dialog.Value[*Outcome](*turn.Result); ok && turn.Result.OK() {
		resp.Phase = types.PhaseConfirmed
		resp.Completed = true
		resp.Location = outcome.Location
		resp.Place = types.NewPlace(outcome.Location, f.strings.AddressSeparator)
		resp.Favorite = outcome.Favorite
		slog.Debug("Location flow completed", "session", session.String(), "place", resp.Place)
	} else {
		resp.Phase = types.PhaseCancelled
		resp.Declined = true
		slog.Debug("Location flow declined", "session", session.String(), "status", turn.Result.Status)
	}
	if err := f.states.Remove(ctx, session); err != nil {
		return nil, err
	}
	return resp, nil
}
