package testcases

import (
	"context"
	"fmt"

	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/types"
)

var (
	MainStreet = types.Location{
		EntityType: "Address",
		Point:      &types.Point{Latitude: 47.6740, Longitude: -122.1215},
		Address: &types.Address{
			FormattedAddress: "123 Main St, Redmond, WA 98052, United States",
			StreetAddress:    "123 Main St",
			Locality:         "Redmond",
			Region:           "WA",
			PostalCode:       "98052",
			Country:          "United States",
		},
	}
	SpringfieldIL = types.Location{EntityType: "PopulatedPlace", Address: &types.Address{FormattedAddress: "Springfield, IL, United States", Locality: "Springfield", Region: "IL", Country: "United States"}}
	SpringfieldMA = types.Location{EntityType: "PopulatedPlace", Address: &types.Address{FormattedAddress: "Springfield, MA, United States", Locality: "Springfield", Region: "MA", Country: "United States"}}
	SpringfieldMO = types.Location{EntityType: "PopulatedPlace", Address: &types.Address{FormattedAddress: "Springfield, MO, United States", Locality: "Springfield", Region: "MO", Country: "United States"}}
)

// NewFixtureResolver answers "123 Main St" with one candidate and "Springfield" with three.
func NewFixtureResolver() *geo.StaticResolver {
	return geo.NewStaticResolver(MainStreet, SpringfieldIL, SpringfieldMA, SpringfieldMO)
}

// Conversation drives one session of a flow turn by turn.
type Conversation struct {
	Flow    *agent.LocationFlow
	Session agent.SessionKey
}

func NewConversation(flow *agent.LocationFlow, conversationID, userID string) *Conversation {
	return &Conversation{
		Flow:    flow,
		Session: agent.SessionKey{ConversationID: conversationID, UserID: userID},
	}
}

func (c *Conversation) Begin(ctx context.Context) (*agent.Response, error) {
	return c.Flow.Begin(ctx, c.Session)
}

func (c *Conversation) Say(ctx context.Context, text string) (*agent.Response, error) {
	resp, err := c.Flow.Invoke(ctx, &agent.Request{Session: c.Session, Input: types.Input{Text: text}})
	if err != nil {
		return nil, fmt.Errorf("say %q: %w", text, err)
	}
	return resp, nil
}

// Script sends every reply in order and returns the last response.
func (c *Conversation) Script(ctx context.Context, replies ...string) (*agent.Response, error) {
	var resp *agent.Response
	for _, reply := range replies {
		var err error
		resp, err = c.Say(ctx, reply)
		if err != nil {
			return nil, err
		}
		if resp.Completed || resp.Declined {
			return resp, nil
		}
	}
	return resp, nil
}
