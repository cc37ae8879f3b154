package command

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

type LocalCommandParser struct {
	CancelKeywords []string
	ResetKeywords  []string
	HelpKeywords   []string
}

func NewLocalCommandParser() *LocalCommandParser {
	return &LocalCommandParser{
		CancelKeywords: []string{"cancel", "quit", "exit", "stop"},
		ResetKeywords:  []string{"reset", "restart", "start over"},
		HelpKeywords:   []string{"help", "?"},
	}
}

func (p *LocalCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return None, nil
	}
	for _, keyword := range p.CancelKeywords {
		if normalized == keyword {
			return Cancel, nil
		}
	}
	for _, keyword := range p.ResetKeywords {
		if normalized == keyword {
			return Reset, nil
		}
	}
	for _, keyword := range p.HelpKeywords {
		if normalized == keyword {
			return Help, nil
		}
	}
	return None, nil
}

const (
	DefaultYesExp = `^(1|y|yes|yep|yeah|sure|ok|okay|correct|true)(\W|$)`
	DefaultNoExp  = `^(2|n|no|nope|not|wrong|false)(\W|$)`
)

// RegexAnswerParser matches the trimmed input against locale-specific expressions.
// Yes is tried first.
type RegexAnswerParser struct {
	Yes *regexp.Regexp
	No  *regexp.Regexp
}

func NewRegexAnswerParser(yesExp, noExp string) (*RegexAnswerParser, error) {
	if yesExp == "" {
		yesExp = DefaultYesExp
	}
	if noExp == "" {
		noExp = DefaultNoExp
	}
	yes, err := regexp.Compile("(?i)" + yesExp)
	if err != nil {
		return nil, fmt.Errorf("compile yes expression: %w", err)
	}
	no, err := regexp.Compile("(?i)" + noExp)
	if err != nil {
		return nil, fmt.Errorf("compile no expression: %w", err)
	}
	return &RegexAnswerParser{Yes: yes, No: no}, nil
}

func NewDefaultAnswerParser() *RegexAnswerParser {
	return &RegexAnswerParser{
		Yes: regexp.MustCompile("(?i)" + DefaultYesExp),
		No:  regexp.MustCompile("(?i)" + DefaultNoExp),
	}
}

func (p *RegexAnswerParser) ParseAnswer(ctx context.Context, req *AnswerRequest) (Answer, error) {
	input := strings.TrimSpace(req.Input)
	switch {
	case p.Yes.MatchString(input):
		return Yes, nil
	case p.No.MatchString(input):
		return No, nil
	default:
		return Unknown, nil
	}
}

type FailbackCommandParser struct {
	parsers []Parser
}

func NewFailbackCommandParser(parsers ...Parser) *FailbackCommandParser {
	return &FailbackCommandParser{parsers: parsers}
}

func (p *FailbackCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	var lastErr error
	for _, parser := range p.parsers {
		cmd, err := parser.ParseCommand(ctx, input)
		if err == nil {
			return cmd, nil
		}
		lastErr = err
	}
	return None, lastErr
}

// FailbackAnswerParser asks each parser in turn until one gives a definite answer.
// A failing parser is logged and skipped once an earlier one answered cleanly, so the
// caller re-prompts on Unknown. Errors only surface when every parser failed.
type FailbackAnswerParser struct {
	parsers []AnswerParser
}

func NewFailbackAnswerParser(parsers ...AnswerParser) *FailbackAnswerParser {
	return &FailbackAnswerParser{parsers: parsers}
}

func (p *FailbackAnswerParser) ParseAnswer(ctx context.Context, req *AnswerRequest) (Answer, error) {
	var lastErr error
	answered := false
	for _, parser := range p.parsers {
		answer, err := parser.ParseAnswer(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		answered = true
		if answer == Yes || answer == No {
			return answer, nil
		}
	}
	if answered && lastErr != nil {
		slog.Warn("Answer parser failed, treating answer as unknown", "error", lastErr)
		return Unknown, nil
	}
	return Unknown, lastErr
}

var (
	_ Parser       = (*LocalCommandParser)(nil)
	_ Parser       = (*FailbackCommandParser)(nil)
	_ AnswerParser = (*RegexAnswerParser)(nil)
	_ AnswerParser = (*FailbackAnswerParser)(nil)
)
