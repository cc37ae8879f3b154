package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tbxark/locationagent/types"
)

const sampleYAML = `
log:
  level: debug
http:
  addr: ":8080"
flow:
  prompt: "Where should we deliver?"
  useFavorites: true
  requiredFields: [postal_code, country]
  maxFavorites: 3
  strings:
    favorite_locations: "Saved places"
geo:
  apiKey: "geo-key"
  static:
    reverse_radius_meters: 500
    locations:
      - name: "Space Needle"
        point: {latitude: 47.6205, longitude: -122.3493}
        address:
          locality: Seattle
          region: WA
redis:
  addr: "localhost:6379"
  ttl: 30m
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.SlogLevel().String() != "DEBUG" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
	if cfg.Redis == nil || cfg.Redis.TTL != 30*time.Minute {
		t.Errorf("unexpected redis section %+v", cfg.Redis)
	}
	if len(cfg.Geo.Static.Locations) != 1 || cfg.Geo.Static.Locations[0].Address.Locality != "Seattle" {
		t.Errorf("unexpected static locations %+v", cfg.Geo.Static.Locations)
	}
	if cfg.Geo.Static.ReverseRadiusMeters != 500 {
		t.Errorf("unexpected radius %v", cfg.Geo.Static.ReverseRadiusMeters)
	}

	flow, err := cfg.FlowConfig()
	if err != nil {
		t.Fatalf("flow config failed: %v", err)
	}
	if flow.RequiredFields != types.FieldPostalCode|types.FieldCountry {
		t.Errorf("unexpected required fields %s", flow.RequiredFields)
	}
	if flow.APIKey != "geo-key" || !flow.UseFavorites || flow.MaxFavorites != 3 {
		t.Errorf("unexpected flow config %+v", flow)
	}
	if flow.Strings == nil || flow.Strings.FavoriteLocations != "Saved places" {
		t.Errorf("strings override lost: %+v", flow.Strings)
	}
	opts, ok := cfg.RedisOptions()
	if !ok || opts.Addr != "localhost:6379" {
		t.Errorf("unexpected redis options %+v", opts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOCATIONAGENT_FLOW_MAX_FAVORITES", "7")
	t.Setenv("LOCATIONAGENT_FLOW_REQUIREDFIELDS", "locality,region")
	t.Setenv("LOCATIONAGENT_REDIS_ADDR", "redis:6380")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Flow.MaxFavorites != 7 {
		t.Errorf("expected env max favorites, got %d", cfg.Flow.MaxFavorites)
	}
	req, err := cfg.Flow.Requirement()
	if err != nil || req != types.FieldLocality|types.FieldRegion {
		t.Errorf("unexpected requirement %s err=%v", req, err)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Errorf("expected env redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "flow:\n  requiredFields: [planet]\n",
		"bad level":      "log:\n  level: loud\n",
		"redis no addr":  "redis:\n  db: 1\n",
		"too many cards": "flow:\n  maxCandidateCards: 99\n",
		"shallow stack":  "flow:\n  maxDepth: 2\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"flow": map[string]any{
			"maxFavorites": 3,
			"strings": map[string]any{
				"favorite_locations": "x",
			},
		},
		"openai": map[string]any{
			"baseUrl": "",
		},
	}
	tests := []struct {
		envKey string
		want   string
	}{
		{"FLOW_MAX_FAVORITES", "flow.maxFavorites"},
		{"FLOW_MAXFAVORITES", "flow.maxFavorites"},
		{"FLOW_STRINGS_FAVORITE_LOCATIONS", "flow.strings.favorite_locations"},
		{"OPENAI_BASE_URL", "openai.baseUrl"},
		{"NEW_FEATURE", "new.feature"},
	}
	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoadWebhookExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "example", "webhook", "config.example.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Redis != nil || cfg.OpenAI != nil {
		t.Errorf("commented sections should stay nil, got %+v %+v", cfg.Redis, cfg.OpenAI)
	}
	if len(cfg.Geo.Static.Locations) != 2 || cfg.Geo.Static.Locations[0].Address.PostalCode != "98052" {
		t.Errorf("unexpected static locations %+v", cfg.Geo.Static.Locations)
	}
}
