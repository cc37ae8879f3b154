package dialog

import "encoding/json"

// Frame is one suspended dialog. State is the dialog's private state, ResumeTarget
// names the continuation to run in this dialog when its child finishes.
type Frame struct {
	Dialog       string          `json:"dialog"`
	State        json.RawMessage `json:"state,omitempty"`
	ResumeTarget string          `json:"resume_target,omitempty"`
}

// Stack is persisted between turns. The last frame is the one waiting for input.
type Stack struct {
	Frames []Frame `json:"frames"`
}

func (s *Stack) Len() int {
	return len(s.Frames)
}

func (s *Stack) Empty() bool {
	return len(s.Frames) == 0
}

func (s *Stack) Top() *Frame {
	if len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

func (s *Stack) Push(f Frame) {
	s.Frames = append(s.Frames, f)
}

func (s *Stack) Pop() (Frame, bool) {
	if len(s.Frames) == 0 {
		return Frame{}, false
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f, true
}

// Path lists the dialog ids from the root to the waiting frame.
func (s *Stack) Path() []string {
	path := make([]string, 0, len(s.Frames))
	for _, f := range s.Frames {
		path = append(path, f.Dialog)
	}
	return path
}

func (s *Stack) Clone() Stack {
	out := Stack{Frames: make([]Frame, len(s.Frames))}
	for i, f := range s.Frames {
		out.Frames[i] = Frame{
			Dialog:       f.Dialog,
			State:        append(json.RawMessage(nil), f.State...),
			ResumeTarget: f.ResumeTarget,
		}
	}
	return out
}
