// Package config loads the service configuration from a yaml file overlaid with
// LOCATIONAGENT_ prefixed environment variables.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/dialogue"
	"github.com/tbxark/locationagent/geo"
	"github.com/tbxark/locationagent/store"
	"github.com/tbxark/locationagent/types"
)

const EnvPrefix = "LOCATIONAGENT_"

type Config struct {
	Log    Log     `json:"log"`
	HTTP   HTTP    `json:"http"`
	Flow   Flow    `json:"flow"`
	Geo    Geo     `json:"geo"`
	Redis  *Redis  `json:"redis" validate:"omitempty"`
	OpenAI *OpenAI `json:"openai" validate:"omitempty"`
}

type Log struct {
	Level string `json:"level" validate:"omitempty,oneof=debug info warn error"`
}

type HTTP struct {
	Addr string `json:"addr"`
}

type Flow struct {
	Prompt                    string            `json:"prompt"`
	UseFavorites              bool              `json:"useFavorites"`
	AllowNativePointPicker    bool              `json:"allowNativePointPicker"`
	ReverseGeocodeOnPointOnly bool              `json:"reverseGeocodeOnPointOnly"`
	RequiredFields            []string          `json:"requiredFields"`
	MaxFavorites              int               `json:"maxFavorites" validate:"gte=0,lte=50"`
	MaxCandidateCards         int               `json:"maxCandidateCards" validate:"gte=0,lte=10"`
	SkipPromptSuffix          bool              `json:"skipPromptSuffix"`
	SkipConfirmation          bool              `json:"skipConfirmation"`
	MaxDepth                  int               `json:"maxDepth" validate:"omitempty,gte=3,lte=16"`
	YesPattern                string            `json:"yesPattern"`
	NoPattern                 string            `json:"noPattern"`
	Strings                   *dialogue.Strings `json:"strings"`
}

// Geo configures the geocode provider. Static locations back the bundled resolver.
type Geo struct {
	APIKey string             `json:"apiKey"`
	Static geo.StaticResolver `json:"static"`
}

type Redis struct {
	Addr     string        `json:"addr" validate:"required"`
	Password string        `json:"password"`
	DB       int           `json:"db" validate:"gte=0"`
	TTL      time.Duration `json:"ttl"`
}

type OpenAI struct {
	APIKey  string `json:"apiKey" validate:"required"`
	BaseURL string `json:"baseUrl" validate:"omitempty,url"`
	Model   string `json:"model"`
}

// Load reads path, when set, then applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	existing := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(key, EnvPrefix), existing), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(Config)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "json",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return normalizeToken(mapKey) == normalizeToken(fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if _, err := cfg.Flow.Requirement(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Requirement parses the configured required field names.
func (f *Flow) Requirement() (types.AddressRequirement, error) {
	return types.ParseAddressRequirement(f.RequiredFields)
}

func (c *Config) FlowConfig() (agent.Config, error) {
	req, err := c.Flow.Requirement()
	if err != nil {
		return agent.Config{}, err
	}
	return agent.Config{
		Prompt:                    c.Flow.Prompt,
		APIKey:                    c.Geo.APIKey,
		UseFavorites:              c.Flow.UseFavorites,
		AllowNativePointPicker:    c.Flow.AllowNativePointPicker,
		ReverseGeocodeOnPointOnly: c.Flow.ReverseGeocodeOnPointOnly,
		RequiredFields:            req,
		MaxFavorites:              c.Flow.MaxFavorites,
		MaxCandidateCards:         c.Flow.MaxCandidateCards,
		SkipPromptSuffix:          c.Flow.SkipPromptSuffix,
		SkipConfirmation:          c.Flow.SkipConfirmation,
		MaxDepth:                  c.Flow.MaxDepth,
		YesPattern:                c.Flow.YesPattern,
		NoPattern:                 c.Flow.NoPattern,
		Strings:                   c.Flow.Strings,
	}, nil
}

func (c *Config) RedisOptions() (store.RedisOptions, bool) {
	if c.Redis == nil {
		return store.RedisOptions{}, false
	}
	return store.RedisOptions{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TTL:      c.Redis.TTL,
	}, true
}

func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// canonicalizeEnvKey maps FLOW_MAX_FAVORITES onto the existing key path flow.maxFavorites.
// Runs of segments are joined greedily so camelCase and snake_case keys both match.
// Segments without a counterpart are kept lower case.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing
	for i := 0; i < len(segments); {
		if segments[i] == "" {
			i++
			continue
		}
		matched, next, width := longestExistingRun(current, segments[i:])
		if width == 0 {
			canonical = append(canonical, segments[i])
			current = nil
			i++
			continue
		}
		canonical = append(canonical, matched)
		current = next
		i += width
	}
	return strings.Join(canonical, ".")
}

func longestExistingRun(current map[string]any, segments []string) (string, map[string]any, int) {
	if len(current) == 0 {
		return "", nil, 0
	}
	for width := len(segments); width > 0; width-- {
		needle := normalizeToken(strings.Join(segments[:width], ""))
		for key, value := range current {
			if normalizeToken(key) != needle {
				continue
			}
			child, _ := value.(map[string]any)
			return key, child, width
		}
	}
	return "", nil, 0
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}
	return normalized.String()
}
