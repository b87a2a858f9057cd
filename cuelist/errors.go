package cuelist

import (
	"fmt"

	"github.com/gruntwork-io/go-commons/errors"
)

// ErrorKind classifies a rejected cue list operation.
type ErrorKind int

const (
	DuplicateID ErrorKind = iota
	CueNotFound
	NoCueAtEnd
	NoCueAtStart
	CueInUse
	InvalidCue
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateID:
		return "DuplicateId"
	case CueNotFound:
		return "CueNotFound"
	case NoCueAtEnd:
		return "NoCueAtEnd"
	case NoCueAtStart:
		return "NoCueAtStart"
	case CueInUse:
		return "CueInUse"
	case InvalidCue:
		return "InvalidCue"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every failing cue list operation. The list is never modified when an Error is returned.
type Error struct {
	Kind  ErrorKind
	CueID uint32
	// Detail is set for InvalidCue.
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case DuplicateID:
		return fmt.Sprintf("a cue with id %d already exists", e.CueID)
	case CueNotFound:
		return fmt.Sprintf("cue %d not found", e.CueID)
	case NoCueAtEnd:
		return "no cue after the last cue"
	case NoCueAtStart:
		return "no cue before the first cue"
	case CueInUse:
		return fmt.Sprintf("cue %d is in use by the current playback", e.CueID)
	case InvalidCue:
		return fmt.Sprintf("cue %d is invalid: %s", e.CueID, e.Detail)
	}
	return e.Kind.String()
}

func newError(kind ErrorKind, cueID uint32) error {
	return errors.WithStackTrace(&Error{Kind: kind, CueID: cueID})
}

// AsError extracts the underlying *Error from err, which may carry a stack trace.
func AsError(err error) (*Error, bool) {
	e, ok := errors.Unwrap(err).(*Error)
	return e, ok
}

// IsKind reports whether err is a cue list error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
