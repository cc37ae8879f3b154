package dialog

type Status string

const (
	StatusDone    Status = "done"
	StatusAborted Status = "aborted"
	StatusReset   Status = "reset"
)

// Result is what a finished dialog hands to its parent. Value is only set for StatusDone.
type Result struct {
	Status Status
	Value  any
}

func (r Result) OK() bool {
	return r.Status == StatusDone
}

// Value extracts a typed result value.
func Value[T any](r Result) (T, bool) {
	v, ok := r.Value.(T)
	return v, ok
}
