// Package dialog runs stacks of suspendable dialogs one user turn at a time.
//
// The stack is plain data: every frame records the dialog id, its private state and
// the continuation to run once its child finishes. Between turns nothing but the
// Stack and the session value has to be persisted.
package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tbxark/locationagent/types"
)

const DefaultMaxDepth = 4

type Dialog[S any] interface {
	ID() string
	Begin(ctx context.Context, dc *Context[S], args any) error
	Continue(ctx context.Context, dc *Context[S], input types.Input) error
	Resume(ctx context.Context, dc *Context[S], target string, result Result) error
}

// Turn collects what one step of the engine produced. Result is set once the root
// dialog has finished and the stack is empty.
type Turn struct {
	Messages []types.Message
	Result   *Result
}

func (t *Turn) Finished() bool {
	return t.Result != nil
}

type Engine[S any] struct {
	dialogs  map[string]Dialog[S]
	maxDepth int
}

func NewEngine[S any](maxDepth int) *Engine[S] {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Engine[S]{
		dialogs:  make(map[string]Dialog[S]),
		maxDepth: maxDepth,
	}
}

func (e *Engine[S]) Register(dialogs ...Dialog[S]) error {
	for _, d := range dialogs {
		if _, ok := e.dialogs[d.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID())
		}
		e.dialogs[d.ID()] = d
	}
	return nil
}

func (e *Engine[S]) lookup(id string) (Dialog[S], error) {
	d, ok := e.dialogs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialog, id)
	}
	return d, nil
}

// Begin clears the stack and starts id as the root dialog.
func (e *Engine[S]) Begin(ctx context.Context, session *S, stack *Stack, id string, args any) (*Turn, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	d, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	stack.Frames = stack.Frames[:0]
	stack.Push(Frame{Dialog: id})
	turn := &Turn{}
	dc := e.newContext(session, stack, turn)
	slog.Debug("Beginning dialog", "dialog", id)
	if err := d.Begin(ctx, dc, args); err != nil {
		return nil, fmt.Errorf("begin %s: %w", id, err)
	}
	if err := e.drive(ctx, session, stack, turn, dc); err != nil {
		return nil, err
	}
	return turn, nil
}

// Continue routes input to the waiting frame.
func (e *Engine[S]) Continue(ctx context.Context, session *S, stack *Stack, input types.Input) (*Turn, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	top := stack.Top()
	if top == nil {
		return nil, ErrNoActiveFrame
	}
	d, err := e.lookup(top.Dialog)
	if err != nil {
		return nil, err
	}
	turn := &Turn{}
	dc := e.newContext(session, stack, turn)
	slog.Debug("Continuing dialog", "dialog", top.Dialog, "depth", stack.Len())
	if err := d.Continue(ctx, dc, input); err != nil {
		return nil, fmt.Errorf("continue %s: %w", top.Dialog, err)
	}
	if err := e.drive(ctx, session, stack, turn, dc); err != nil {
		return nil, err
	}
	return turn, nil
}

// Interrupt ends every frame above the root with status and resumes the root with it.
func (e *Engine[S]) Interrupt(ctx context.Context, session *S, stack *Stack, status Status) (*Turn, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	if stack.Empty() {
		return nil, ErrNoActiveFrame
	}
	slog.Debug("Interrupting dialog stack", "status", status, "path", stack.Path())
	stack.Frames = stack.Frames[:1]
	turn := &Turn{}
	dc, err := e.resume(ctx, session, stack, turn, Result{Status: status})
	if err != nil {
		return nil, err
	}
	if err := e.drive(ctx, session, stack, turn, dc); err != nil {
		return nil, err
	}
	return turn, nil
}

func (e *Engine[S]) newContext(session *S, stack *Stack, turn *Turn) *Context[S] {
	return &Context[S]{
		Session: session,
		turn:    turn,
		stack:   stack,
		index:   stack.Len() - 1,
	}
}

// resume hands result to the top frame at the continuation it recorded.
func (e *Engine[S]) resume(ctx context.Context, session *S, stack *Stack, turn *Turn, result Result) (*Context[S], error) {
	parent := stack.Top()
	target := parent.ResumeTarget
	parent.ResumeTarget = ""
	d, err := e.lookup(parent.Dialog)
	if err != nil {
		return nil, err
	}
	dc := e.newContext(session, stack, turn)
	slog.Debug("Resuming dialog", "dialog", parent.Dialog, "target", target, "status", result.Status)
	if err := d.Resume(ctx, dc, target, result); err != nil {
		return nil, fmt.Errorf("resume %s at %s: %w", parent.Dialog, target, err)
	}
	return dc, nil
}

// drive applies the action recorded by the last step until a frame waits or the root ends.
func (e *Engine[S]) drive(ctx context.Context, session *S, stack *Stack, turn *Turn, dc *Context[S]) error {
	for {
		switch dc.action {
		case actionWait:
			return nil
		case actionCall, actionReplace:
			if dc.action == actionCall {
				if stack.Len() >= e.maxDepth {
					return fmt.Errorf("%w: calling %s from %v", ErrStackOverflow, dc.child, stack.Path())
				}
				stack.Top().ResumeTarget = dc.target
			} else {
				stack.Pop()
			}
			d, err := e.lookup(dc.child)
			if err != nil {
				return err
			}
			stack.Push(Frame{Dialog: dc.child})
			next := e.newContext(session, stack, turn)
			slog.Debug("Beginning dialog", "dialog", dc.child, "depth", stack.Len())
			if err := d.Begin(ctx, next, dc.args); err != nil {
				return fmt.Errorf("begin %s: %w", dc.child, err)
			}
			dc = next
		case actionEnd:
			result := dc.result
			ended, _ := stack.Pop()
			slog.Debug("Dialog ended", "dialog", ended.Dialog, "status", result.Status)
			// Non-done results skip every parent but the root.
			for !result.OK() && stack.Len() > 1 {
				stack.Pop()
			}
			if stack.Empty() {
				turn.Result = &result
				return nil
			}
			next, err := e.resume(ctx, session, stack, turn, result)
			if err != nil {
				return err
			}
			dc = next
		default:
			return ErrInvalidAction
		}
	}
}
