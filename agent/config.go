package agent

import (
	"fmt"

	"github.com/tbxark/locationagent/dialog"
	"github.com/tbxark/locationagent/dialogue"
	"github.com/tbxark/locationagent/favorites"
	"github.com/tbxark/locationagent/types"
)

const (
	DefaultMaxCandidateCards = 5
	DefaultPrompt            = "Where should I send it?"
)

type Config struct {
	Prompt string
	APIKey string

	UseFavorites              bool
	AllowNativePointPicker    bool
	ReverseGeocodeOnPointOnly bool
	RequiredFields            types.AddressRequirement
	MaxFavorites              int
	MaxCandidateCards         int

	SkipPromptSuffix bool
	SkipConfirmation bool
	MaxDepth         int

	// YesPattern and NoPattern override the yes/no expressions of the confirmation gate.
	YesPattern string
	NoPattern  string

	Strings *dialogue.Strings
}

func (c Config) withDefaults() (Config, error) {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.MaxFavorites <= 0 {
		c.MaxFavorites = favorites.DefaultMaxFavorites
	}
	if c.MaxCandidateCards <= 0 {
		c.MaxCandidateCards = DefaultMaxCandidateCards
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = dialog.DefaultMaxDepth
	}
	strs, err := c.Strings.Merge(dialogue.DefaultStrings())
	if err != nil {
		return c, fmt.Errorf("merge strings: %w", err)
	}
	c.Strings = strs
	return c, nil
}
