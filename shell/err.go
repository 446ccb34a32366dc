package shell

import (
	"errors"
)

var (
	ErrArgsMissing = errors.New(f("missing arguments"))
	ErrArgsExtra   = errors.New(f("too many arguments"))
)

// ErrUnknownCommand is returned for an unrecognized command.
type ErrUnknownCommand string

func (err ErrUnknownCommand) Error() string {
	return f("unknown command: '%v'", string(err))
}
