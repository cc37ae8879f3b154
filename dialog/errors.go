package dialog

import "errors"

var (
	ErrStackOverflow  = errors.New("dialog stack overflow")
	ErrUnknownDialog  = errors.New("unknown dialog")
	ErrNoActiveFrame  = errors.New("no active dialog frame")
	ErrDuplicateID    = errors.New("duplicate dialog id")
	ErrInvalidAction  = errors.New("invalid dialog action")
	ErrMissingSession = errors.New("missing dialog session")
)
