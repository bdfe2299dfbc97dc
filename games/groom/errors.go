package groom

import "errors"

var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("only the host may do that")
	ErrStage        = errors.New("not allowed at this stage")
	ErrEmpty        = errors.New("no questions entered")
	ErrClosed       = errors.New("question editor is closed")
	ErrNoEditor     = errors.New("manual entry is not open")
)

// Kind names the error family for display and metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrStage):
		return "stage"
	case errors.Is(err, ErrEmpty):
		return "empty"
	case errors.Is(err, ErrClosed), errors.Is(err, ErrNoEditor):
		return "editor"
	default:
		return "internal"
	}
}
