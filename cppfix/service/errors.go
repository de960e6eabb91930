package service

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutsideRoot rejects targets resolving outside Config.Root.
	ErrOutsideRoot = errors.New("target outside root")
	// ErrRemoteTarget rejects afs URLs unless Config.AllowRemote is set.
	ErrRemoteTarget = errors.New("remote target not allowed")
)

// FileAccessError reports a target that could not be read or written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

func accessError(op, path string, err error) error {
	return errors.WithStack(&FileAccessError{Op: op, Path: path, Err: err})
}
