package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tbxark/locationagent/types"
)

type session struct {
	Answers  []string
	Restarts int
	Resumed  []string
}

type askState struct {
	Prompt string `json:"prompt"`
}

// askDialog prompts until it receives non-empty text.
type askDialog struct{}

func (askDialog) ID() string { return "ask" }

func (askDialog) Begin(ctx context.Context, dc *Context[session], args any) error {
	prompt, _ := args.(string)
	dc.Send(types.TextMessage(prompt))
	return dc.Save(askState{Prompt: prompt})
}

func (askDialog) Continue(ctx context.Context, dc *Context[session], input types.Input) error {
	var state askState
	if err := dc.Load(&state); err != nil {
		return err
	}
	text := input.Trimmed()
	if text == "" {
		dc.Send(types.TextMessage(state.Prompt))
		return nil
	}
	if text == "abort" {
		dc.End(Result{Status: StatusAborted})
		return nil
	}
	dc.Done(text)
	return nil
}

func (askDialog) Resume(ctx context.Context, dc *Context[session], target string, result Result) error {
	return nil
}

// pairDialog asks twice through a middle dialog and then finishes with both answers.
type pairDialog struct{}

func (pairDialog) ID() string { return "pair" }

func (pairDialog) Begin(ctx context.Context, dc *Context[session], args any) error {
	dc.Call("ask", "first?", "first")
	return nil
}

func (pairDialog) Continue(ctx context.Context, dc *Context[session], input types.Input) error {
	return nil
}

func (pairDialog) Resume(ctx context.Context, dc *Context[session], target string, result Result) error {
	dc.Session.Resumed = append(dc.Session.Resumed, "pair:"+target)
	if !result.OK() {
		dc.End(result)
		return nil
	}
	answer, _ := Value[string](result)
	dc.Session.Answers = append(dc.Session.Answers, answer)
	switch target {
	case "first":
		dc.Call("ask", "second?", "second")
	case "second":
		dc.Done(len(dc.Session.Answers))
	}
	return nil
}

type rootDialog struct{}

func (rootDialog) ID() string { return "root" }

func (rootDialog) Begin(ctx context.Context, dc *Context[session], args any) error {
	dc.Send(types.TextMessage("start"))
	dc.Call("pair", nil, "pair")
	return nil
}

func (rootDialog) Continue(ctx context.Context, dc *Context[session], input types.Input) error {
	return nil
}

func (r rootDialog) Resume(ctx context.Context, dc *Context[session], target string, result Result) error {
	dc.Session.Resumed = append(dc.Session.Resumed, "root:"+target)
	switch result.Status {
	case StatusReset:
		dc.Session.Restarts++
		dc.Session.Answers = nil
		return r.Begin(ctx, dc, nil)
	case StatusAborted:
		dc.End(result)
		return nil
	}
	dc.Done(result.Value)
	return nil
}

// recursiveDialog calls itself until the engine refuses.
type recursiveDialog struct{}

func (recursiveDialog) ID() string { return "recursive" }

func (recursiveDialog) Begin(ctx context.Context, dc *Context[session], args any) error {
	dc.Call("recursive", nil, "again")
	return nil
}

func (recursiveDialog) Continue(ctx context.Context, dc *Context[session], input types.Input) error {
	return nil
}

func (recursiveDialog) Resume(ctx context.Context, dc *Context[session], target string, result Result) error {
	return nil
}

// swapDialog replaces itself with ask.
type swapDialog struct{}

func (swapDialog) ID() string { return "swap" }

func (swapDialog) Begin(ctx context.Context, dc *Context[session], args any) error {
	dc.Replace("ask", "swapped?")
	return nil
}

func (swapDialog) Continue(ctx context.Context, dc *Context[session], input types.Input) error {
	return nil
}

func (swapDialog) Resume(ctx context.Context, dc *Context[session], target string, result Result) error {
	return nil
}

func newTestEngine(t *testing.T) *Engine[session] {
	t.Helper()
	e := NewEngine[session](0)
	if err := e.Register(rootDialog{}, pairDialog{}, askDialog{}, recursiveDialog{}, swapDialog{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return e
}

func texts(turn *Turn) []string {
	out := make([]string, 0, len(turn.Messages))
	for _, m := range turn.Messages {
		out = append(out, m.Text)
	}
	return out
}

func rehydrate(t *testing.T, stack *Stack) *Stack {
	t.Helper()
	raw, err := json.Marshal(stack)
	if err != nil {
		t.Fatalf("marshal stack failed: %v", err)
	}
	var out Stack
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal stack failed: %v", err)
	}
	return &out
}

func TestEngineSuspendResumeAcrossTurns(t *testing.T) {
	ctx := context.Background()
	sess := &session{}
	stack := &Stack{}

	turn, err := newTestEngine(t).Begin(ctx, sess, stack, "root", nil)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if got := texts(turn); len(got) != 2 || got[0] != "start" || got[1] != "first?" {
		t.Fatalf("unexpected first turn %v", got)
	}
	if stack.Len() != 3 || stack.Top().Dialog != "ask" {
		t.Fatalf("unexpected stack %v", stack.Path())
	}
	if stack.Frames[1].ResumeTarget != "first" {
		t.Errorf("parent should record its continuation, got %q", stack.Frames[1].ResumeTarget)
	}

	// A fresh engine and a decoded stack behave exactly like the originals.
	stack = rehydrate(t, stack)
	turn, err = newTestEngine(t).Continue(ctx, sess, stack, types.Input{Text: "  "})
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if got := texts(turn); len(got) != 1 || got[0] != "first?" {
		t.Errorf("empty input should re-prompt, got %v", got)
	}

	stack = rehydrate(t, stack)
	turn, err = newTestEngine(t).Continue(ctx, sess, stack, types.Input{Text: "alpha"})
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if got := texts(turn); len(got) != 1 || got[0] != "second?" {
		t.Errorf("unexpected second prompt %v", got)
	}

	stack = rehydrate(t, stack)
	turn, err = newTestEngine(t).Continue(ctx, sess, stack, types.Input{Text: "beta"})
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if !turn.Finished() || !turn.Result.OK() {
		t.Fatalf("expected root to finish, got %+v", turn.Result)
	}
	if n, _ := Value[int](*turn.Result); n != 2 {
		t.Errorf("unexpected result value %v", turn.Result.Value)
	}
	if !stack.Empty() {
		t.Errorf("stack should be empty, got %v", stack.Path())
	}
	if len(sess.Answers) != 2 || sess.Answers[0] != "alpha" || sess.Answers[1] != "beta" {
		t.Errorf("unexpected answers %v", sess.Answers)
	}
}

func TestEngineAbortSkipsIntermediateFrames(t *testing.T) {
	ctx := context.Background()
	sess := &session{}
	stack := &Stack{}
	e := newTestEngine(t)
	if _, err := e.Begin(ctx, sess, stack, "root", nil); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	turn, err := e.Continue(ctx, sess, stack, types.Input{Text: "abort"})
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if !turn.Finished() || turn.Result.Status != StatusAborted {
		t.Fatalf("expected aborted result, got %+v", turn.Result)
	}
	if len(sess.Resumed) != 1 || sess.Resumed[0] != "root:pair" {
		t.Errorf("only the root should see the aborted result, got %v", sess.Resumed)
	}
}

func TestEngineInterruptReset(t *testing.T) {
	ctx := context.Background()
	sess := &session{}
	stack := &Stack{}
	e := newTestEngine(t)
	first, err := e.Begin(ctx, sess, stack, "root", nil)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := e.Continue(ctx, sess, stack, types.Input{Text: "alpha"}); err != nil {
		t.Fatalf("continue failed: %v", err)
	}

	turn, err := e.Interrupt(ctx, sess, stack, StatusReset)
	if err != nil {
		t.Fatalf("interrupt failed: %v", err)
	}
	if turn.Finished() {
		t.Fatal("reset should restart, not finish")
	}
	want, got := texts(first), texts(turn)
	if len(got) != len(want) {
		t.Fatalf("restart should repeat the start prompts, got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prompt %d = %q, want %q", i, got[i], want[i])
		}
	}
	if sess.Restarts != 1 || len(sess.Answers) != 0 {
		t.Errorf("unexpected session after reset %+v", sess)
	}
	if stack.Len() != 3 {
		t.Errorf("unexpected stack after reset %v", stack.Path())
	}
}

func TestEngineStackOverflow(t *testing.T) {
	sess := &session{}
	stack := &Stack{}
	_, err := newTestEngine(t).Begin(context.Background(), sess, stack, "recursive", nil)
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
	if stack.Len() != DefaultMaxDepth {
		t.Errorf("stack should stop at max depth, got %d", stack.Len())
	}
}

func TestEngineReplaceKeepsDepth(t *testing.T) {
	sess := &session{}
	stack := &Stack{}
	turn, err := newTestEngine(t).Begin(context.Background(), sess, stack, "swap", nil)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if stack.Len() != 1 || stack.Top().Dialog != "ask" {
		t.Errorf("unexpected stack %v", stack.Path())
	}
	if got := texts(turn); len(got) != 1 || got[0] != "swapped?" {
		t.Errorf("unexpected messages %v", got)
	}
}

func TestEngineErrors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	if _, err := e.Begin(ctx, &session{}, &Stack{}, "missing", nil); !errors.Is(err, ErrUnknownDialog) {
		t.Errorf("expected ErrUnknownDialog, got %v", err)
	}
	if _, err := e.Continue(ctx, &session{}, &Stack{}, types.Input{Text: "x"}); !errors.Is(err, ErrNoActiveFrame) {
		t.Errorf("expected ErrNoActiveFrame, got %v", err)
	}
	if err := e.Register(askDialog{}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := e.Begin(ctx, nil, &Stack{}, "root", nil); !errors.Is(err, ErrMissingSession) {
		t.Errorf("expected ErrMissingSession, got %v", err)
	}
}
