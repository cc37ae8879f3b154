package command

import (
	"context"
	"errors"
	"testing"
)

func TestLocalCommandParser(t *testing.T) {
	p := NewLocalCommandParser()
	ctx := context.Background()
	cases := map[string]Command{
		"cancel":     Cancel,
		"  QUIT ":    Cancel,
		"reset":      Reset,
		"Start Over": Reset,
		"help":       Help,
		"?":          Help,
		"":           None,
		"1 Main St":  None,
		"cancel it":  None,
	}
	for input, want := range cases {
		got, err := p.ParseCommand(ctx, input)
		if err != nil {
			t.Fatalf("parse %q failed: %v", input, err)
		}
		if got != want {
			t.Errorf("parse %q = %s, want %s", input, got, want)
		}
	}
}

func TestRegexAnswerParser(t *testing.T) {
	p := NewDefaultAnswerParser()
	ctx := context.Background()
	cases := map[string]Answer{
		"yes":         Yes,
		"Yes please":  Yes,
		"y":           Yes,
		"1":           Yes,
		"OK!":         Yes,
		"no":          No,
		"Nope":        No,
		"n":           No,
		"2":           No,
		"maybe":       Unknown,
		"yesterday":   Unknown,
		"123 Main St": Unknown,
		"":            Unknown,
	}
	for input, want := range cases {
		got, err := p.ParseAnswer(ctx, &AnswerRequest{Input: input})
		if err != nil {
			t.Fatalf("parse %q failed: %v", input, err)
		}
		if got != want {
			t.Errorf("parse %q = %s, want %s", input, got, want)
		}
	}
}

func TestNewRegexAnswerParserLocale(t *testing.T) {
	p, err := NewRegexAnswerParser(`^(si|sí)(\W|$)`, `^no(\W|$)`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	got, _ := p.ParseAnswer(context.Background(), &AnswerRequest{Input: "Sí"})
	if got != Yes {
		t.Errorf("expected yes, got %s", got)
	}
	if _, err := NewRegexAnswerParser("(", ""); err == nil {
		t.Error("expected compile error")
	}
}

type stubAnswerParser struct {
	answer Answer
	err    error
	calls  int
}

func (s *stubAnswerParser) ParseAnswer(ctx context.Context, req *AnswerRequest) (Answer, error) {
	s.calls++
	return s.answer, s.err
}

func TestFailbackAnswerParser(t *testing.T) {
	ctx := context.Background()
	req := &AnswerRequest{Input: "sounds right"}

	first := &stubAnswerParser{answer: Unknown}
	second := &stubAnswerParser{answer: Yes}
	got, err := NewFailbackAnswerParser(first, second).ParseAnswer(ctx, req)
	if err != nil || got != Yes {
		t.Fatalf("expected yes, got %s err=%v", got, err)
	}

	definite := &stubAnswerParser{answer: No}
	never := &stubAnswerParser{answer: Yes}
	got, _ = NewFailbackAnswerParser(definite, never).ParseAnswer(ctx, req)
	if got != No || never.calls != 0 {
		t.Errorf("first definite answer should win, got %s calls=%d", got, never.calls)
	}

	boom := errors.New("boom")
	got, err = NewFailbackAnswerParser(&stubAnswerParser{answer: Unknown}, &stubAnswerParser{err: boom}).ParseAnswer(ctx, req)
	if got != Unknown || err != nil {
		t.Errorf("failure after a clean unknown should re-prompt, got %s err=%v", got, err)
	}

	got, err = NewFailbackAnswerParser(&stubAnswerParser{err: boom}, &stubAnswerParser{err: boom}).ParseAnswer(ctx, req)
	if got != Unknown || !errors.Is(err, boom) {
		t.Errorf("expected error when every parser failed, got %s err=%v", got, err)
	}

	got, err = NewFailbackAnswerParser(&stubAnswerParser{err: boom}, &stubAnswerParser{answer: Unknown}).ParseAnswer(ctx, req)
	if got != Unknown || err != nil {
		t.Errorf("later parser answered, expected no error, got %s err=%v", got, err)
	}
}
