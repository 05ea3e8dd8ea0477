package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/roster"
	"github.com/mmynk/attendance/internal/storage"
)

// toConnectError maps domain errors to Connect error codes.
func toConnectError(err error) error {
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, roster.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, roster.ErrDuplicate):
		return connect.CodeAlreadyExists
	case errors.Is(err, roster.ErrConflict):
		return connect.CodeAborted
	case errors.Is(err, roster.ErrNotFound), errors.Is(err, storage.ErrGroupNotFound):
		return connect.CodeNotFound
	case errors.Is(err, roster.ErrNoActiveDate), errors.Is(err, roster.ErrNoGroup):
		return connect.CodeFailedPrecondition
	case errors.Is(err, roster.ErrFeatureDisabled):
		return connect.CodeUnimplemented
	case errors.Is(err, remote.ErrTransport):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}
