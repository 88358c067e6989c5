package recent

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrTooManyCommits = errors.New("too many commits")
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindTooManyCommits
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindTooManyCommits:
		return "too-many-commits"
	}
	return "unknown"
}

// Error is returned for every terminal outcome of a resolution.
// Path and Ref are set for KindNotFound, Count for KindTooManyCommits.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Ref     string
	Count   int
}

func (e *Error) Error() string {
	if e.Kind == KindNotFound && e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrTooManyCommits:
		return e.Kind == KindTooManyCommits
	}
	return false
}

func notFound(message, path, ref string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Path: path, Ref: ref}
}

func conflict(format string, a ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, a...)}
}

func tooManyCommits(count, limit int) *Error {
	return &Error{
		Kind:    KindTooManyCommits,
		Message: fmt.Sprintf("pull-request has more than %d commits: %d", limit, count),
		Count:   count,
	}
}

// KindOf returns the kind of a resolution error, or 0 if err is not one.
func KindOf(err error) Kind {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Kind
	}
	return 0
}
