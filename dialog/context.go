package dialog

import (
	"github.com/bytedance/sonic"
	"github.com/tbxark/locationagent/types"
)

type action int

const (
	actionWait action = iota
	actionCall
	actionReplace
	actionEnd
)

// Context is handed to a dialog for exactly one step. A step that records no
// action leaves the dialog waiting for the next input.
type Context[S any] struct {
	Session *S

	turn  *Turn
	stack *Stack
	index int

	action action
	child  string
	args   any
	target string
	result Result
}

func (c *Context[S]) frame() *Frame {
	return &c.stack.Frames[c.index]
}

func (c *Context[S]) Send(messages ...types.Message) {
	c.turn.Messages = append(c.turn.Messages, messages...)
}

// Load decodes the frame private state into v. An empty state leaves v untouched.
func (c *Context[S]) Load(v any) error {
	raw := c.frame().State
	if len(raw) == 0 {
		return nil
	}
	return sonic.Unmarshal(raw, v)
}

func (c *Context[S]) Save(v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	c.frame().State = raw
	return nil
}

// Call pushes dialog id on top of this one. When it finishes, this dialog is resumed
// with resumeTarget and the child result.
func (c *Context[S]) Call(id string, args any, resumeTarget string) {
	c.action = actionCall
	c.child = id
	c.args = args
	c.target = resumeTarget
}

// Replace ends this dialog and begins id in its place, keeping the parent's continuation.
func (c *Context[S]) Replace(id string, args any) {
	c.action = actionReplace
	c.child = id
	c.args = args
}

func (c *Context[S]) Done(value any) {
	c.End(Result{Status: StatusDone, Value: value})
}

func (c *Context[S]) End(result Result) {
	if result.Status == "" {
		result.Status = StatusDone
	}
	c.action = actionEnd
	c.result = result
}
