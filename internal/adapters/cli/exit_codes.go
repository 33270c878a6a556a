package cli

import (
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

// Process exit codes by error kind.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitValidation   = 2
	ExitRequest      = 3
	ExitNetwork      = 4
	ExitUnauthorized = 5
	ExitNotFound     = 6
)

func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case domain.IsKind(err, domain.ErrValidation), domain.IsKind(err, domain.ErrInvalidInput):
		return ExitValidation
	case domain.IsKind(err, domain.ErrUnauthorized):
		return ExitUnauthorized
	case domain.IsKind(err, domain.ErrNotFound), domain.IsKind(err, domain.ErrDraftNotFound):
		return ExitNotFound
	case domain.IsKind(err, domain.ErrNetwork), domain.IsKind(err, domain.ErrTemporary):
		return ExitNetwork
	case domain.IsKind(err, domain.ErrRequest):
		return ExitRequest
	default:
		return ExitFailure
	}
}
