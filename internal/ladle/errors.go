package ladle

import (
	"errors"
	"fmt"
)

var (
	ErrBaseURLRequired = errors.New("ladle: base url required")
	ErrRemoteRejected  = errors.New("ladle: remote rejected request")
	ErrEmptyAnswer     = errors.New("ladle: accepted answer carried no data")
)

// RemoteError is an answer the server decoded but refused.
type RemoteError struct {
	Verb    string
	Path    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v: %s %s: %s", ErrRemoteRejected, e.Verb, e.Path, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteRejected
}

// IsRemoteRejection reports whether err is a server-side refusal rather
// than a transport or decode failure.
func IsRemoteRejection(err error) bool {
	return errors.Is(err, ErrRemoteRejected)
}
