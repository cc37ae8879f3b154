package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/types"
)

func TestBuildFlowWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	cfg := &Config{
		Flow:  Flow{RequiredFields: []string{"postal_code"}},
		Redis: &Redis{Addr: mr.Addr(), TTL: time.Minute},
	}
	cfg.Geo.Static.Locations = []types.Location{{Address: &types.Address{Locality: "Redmond", PostalCode: "98052"}}}

	flow, cleanup, err := BuildFlow(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build flow failed: %v", err)
	}
	defer cleanup()
	if flow.Config().RequiredFields != types.FieldPostalCode {
		t.Errorf("unexpected required fields %s", flow.Config().RequiredFields)
	}

	session := agent.SessionKey{ConversationID: "c1", UserID: "u1"}
	if _, err := flow.Begin(context.Background(), session); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if !mr.Exists("location_state:c1:u1") {
		t.Error("expected state to be stored in redis")
	}
	if ttl := mr.TTL("location_state:c1:u1"); ttl != time.Minute {
		t.Errorf("expected state ttl, got %v", ttl)
	}
}

func TestBuildFlowRejectsUnreachableRedis(t *testing.T) {
	cfg := &Config{Redis: &Redis{Addr: "127.0.0.1:1"}}
	if _, _, err := BuildFlow(context.Background(), cfg, nil); err == nil {
		t.Error("expected ping error")
	}
}
