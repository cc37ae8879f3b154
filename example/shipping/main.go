package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/config"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/types"
)

func main() {
	conf := flag.String("config", "", "path to yaml config file")
	user := flag.String("user", "console", "user id owning the favorites")
	flag.Parse()
	cfg, err := config.Load(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := startApp(context.Background(), cfg, *user); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, cfg *config.Config, user string) error {
	slog.SetLogLoggerLevel(cfg.Log.SlogLevel())
	var resolver geo.Resolver
	if len(cfg.Geo.Static.Locations) == 0 {
		resolver = demoResolver()
	}
	flow, cleanup, err := config.BuildFlow(ctx, cfg, resolver)
	if err != nil {
		return err
	}
	defer cleanup()

	var finished *agent.Response
	shippingAgent := agent.NewAgent(
		"ShippingAddress",
		"An agent that collects and confirms a shipping location via conversation",
		flow,
	).OnResponse(func(ctx context.Context, resp *agent.Response) {
		if resp.Completed || resp.Declined {
			finished = resp
		}
	})
	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent: shippingAgent,
	})

	session := agent.SessionKey{ConversationID: uuid.NewString(), UserID: user}
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Welcome to the shipping assistant. Say hi to start, 'help' for commands.")
	for {
		fmt.Print("User: ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("Input closed. Bye.")
			break
		}
		chatCtx := agent.WithSession(ctx, session)
		iter := runner.Run(chatCtx, []adk.Message{schema.UserMessage(strings.TrimSpace(input))})
		for {
			event, ok := iter.Next()
			if !ok {
				break
			}
			if event.Err != nil {
				return event.Err
			}
			msg, mErr := event.Output.MessageOutput.GetMessage()
			if mErr != nil {
				return mErr
			}
			fmt.Printf("\nAssistant: %v\n======\n", msg.Content)
		}
		if finished != nil {
			printOutcome(finished)
			finished = nil
			session.ConversationID = uuid.NewString()
		}
	}
	return nil
}

func printOutcome(resp *agent.Response) {
	if resp.Declined {
		fmt.Println("No location collected.")
		return
	}
	fmt.Printf("Shipping to: %s\n", resp.Location.Label(", "))
	if resp.Favorite != "" {
		fmt.Printf("Favorite: %s\n", resp.Favorite)
	}
}

func demoResolver() *geo.StaticResolver {
	return geo.NewStaticResolver(
		types.Location{
			EntityType: "Address",
			Point:      &types.Point{Latitude: 47.6740, Longitude: -122.1215},
			Address:    &types.Address{StreetAddress: "123 Main St", Locality: "Redmond", Region: "WA", PostalCode: "98052", Country: "United States"},
		},
		types.Location{
			Name:    "Space Needle",
			Point:   &types.Point{Latitude: 47.6205, Longitude: -122.3493},
			Address: &types.Address{StreetAddress: "400 Broad St", Locality: "Seattle", Region: "WA", PostalCode: "98109", Country: "United States"},
		},
		types.Location{Address: &types.Address{Locality: "Springfield", Region: "IL", Country: "United States"}},
		types.Location{Address: &types.Address{Locality: "Springfield", Region: "MA", Country: "United States"}},
	)
}
