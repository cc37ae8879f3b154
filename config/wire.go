package config

import (
	"context"
	"log/slog"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/pkg/errors"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/store"
)

// BuildFlow wires a LocationFlow from c. Redis backs state and favorites when
// configured, otherwise both live in memory. An OpenAI section enables the model
// fallback for yes/no replies. The returned func releases the connections.
func BuildFlow(ctx context.Context, c *Config, resolver geo.Resolver) (*agent.LocationFlow, func(), error) {
	flowCfg, err := c.FlowConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "flow config")
	}
	if resolver == nil {
		resolver = &c.Geo.Static
	}
	deps := agent.Dependencies{Resolver: resolver}
	cleanup := func() {}

	if opts, ok := c.RedisOptions(); ok {
		client := store.NewRedisClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrapf(err, "ping redis %s", opts.Addr)
		}
		deps.States = agent.NewStateReadWriter(store.NewRedisCache[*agent.State](client, opts.TTL))
		deps.Favorites = favorites.NewCacheStore(store.NewRedisCache[[]favorites.Entry](client, 0), flowCfg.MaxFavorites)
		cleanup = func() {
			if err := client.Close(); err != nil {
				slog.Error("Failed to close redis client", "error", err)
			}
		}
		slog.Info("Using redis storage", "addr", opts.Addr)
	}

	if c.OpenAI == nil {
		flow, err := agent.NewLocationFlow(flowCfg, deps)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return flow, cleanup, nil
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  c.OpenAI.APIKey,
		Model:   c.OpenAI.Model,
		BaseURL: c.OpenAI.BaseURL,
	})
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "create chat model")
	}
	flow, err := agent.NewToolBasedLocationFlow(flowCfg, deps, cm)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return flow, cleanup, nil
}
