package hook

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies a hook failure. Every kind is fatal.
type Kind int

const (
	Unexpected Kind = iota
	MissingArgument
	NoChangesDetected
	MissingCredential
	GenerationFailed
)

func (k Kind) String() string {
	switch k {
	case MissingArgument:
		return "MissingArgument"
	case NoChangesDetected:
		return "NoChangesDetected"
	case MissingCredential:
		return "MissingCredential"
	case GenerationFailed:
		return "GenerationFailed"
	default:
		return "Unexpected"
	}
}

// Error is the single error type returned by Orchestrator.Run.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the kind of err, treating foreign errors as Unexpected.
func KindOf(err error) Kind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return Unexpected
}

func classify(err error) *Error {
	var herr *Error
	if errors.As(err, &herr) {
		return herr
	}
	return newError(Unexpected, err)
}

var (
	errMissingArgument = errors.WithHint(
		errors.New("commit message file path is missing"),
		`this command is meant to be called from the "prepare-commit-msg" git hook; run: hookmsg hook set`)
	errNoChanges = errors.New("no changes detected, write some code and commit again")
	errNoAPIKey  = errors.WithHint(
		errors.New("no API key configured"),
		"run: hookmsg config set api_key <key>, or export HOOKMSG_API_KEY")
)
