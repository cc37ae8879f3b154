package testcases

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/favorites"
)

type LiveConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func loadLiveConfig() *LiveConfig {
	conf := &LiveConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	}
	if conf.BaseURL == "" {
		conf.BaseURL = "https://api.openai.com/v1"
	}
	if conf.Model == "" {
		conf.Model = "gpt-4o-mini"
	}
	return conf
}

func (c *LiveConfig) String() string {
	return fmt.Sprintf("LiveConfig{BaseURL:%q, Model:%q}", c.BaseURL, c.Model)
}

func InitChatModel(t *testing.T) *openai.ChatModel {
	if os.Getenv("LOCATIONAGENT_RUN_LIVE_TESTS") != "1" {
		t.Skip("set LOCATIONAGENT_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil
	}
	conf := loadLiveConfig()
	if conf.APIKey == "" {
		t.Skip("OPENAI_API_KEY is empty")
		return nil
	}
	t.Logf("using %s", conf)
	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		APIKey:  conf.APIKey,
		Model:   conf.Model,
		BaseURL: conf.BaseURL,
	})
	if err != nil {
		t.Fatalf("failed to init chat model: %v", err)
		return nil
	}
	return chatModel
}

type flowOptions struct {
	states    agent.StateReadWriter
	favorites favorites.Store
}

type FlowOption func(*flowOptions)

func WithStates(states agent.StateReadWriter) FlowOption {
	return func(o *flowOptions) {
		o.states = states
	}
}

func WithFavorites(store favorites.Store) FlowOption {
	return func(o *flowOptions) {
		o.favorites = store
	}
}

func NewTestFlow(t *testing.T, cfg agent.Config, opts ...FlowOption) *agent.LocationFlow {
	t.Helper()
	o := &flowOptions{}
	for _, opt := range opts {
		opt(o)
	}
	flow, err := agent.NewLocationFlow(cfg, agent.Dependencies{
		Resolver:  NewFixtureResolver(),
		Favorites: o.favorites,
		States:    o.states,
	})
	if err != nil {
		t.Fatalf("failed to create flow: %v", err)
	}
	return flow
}

// mustResponse fails the test when a turn errors, e.g. mustResponse(t)(conv.Say(ctx, "yes")).
func mustResponse(t *testing.T) func(*agent.Response, error) *agent.Response {
	t.Helper()
	return func(resp *agent.Response, err error) *agent.Response {
		t.Helper()
		if err != nil {
			t.Fatalf("turn failed: %v", err)
		}
		if resp == nil {
			t.Fatal("turn returned no response")
		}
		return resp
	}
}
