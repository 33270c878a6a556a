package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrValidation    = errors.New("validation failed")
	ErrRequest       = errors.New("request rejected")
	ErrNetwork       = errors.New("network failure")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrTemporary     = errors.New("temporary failure")
	ErrDraftNotFound = errors.New("draft not found")
)

// GenericFailureMessage is shown when neither a field nor a business message is available.
const GenericFailureMessage = "Não foi possível completar a operação. Tente novamente."

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ValidationError blocks an action locally, before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UserMessenger is implemented by errors that carry a message meant for the end user.
type UserMessenger interface {
	UserMessage() string
}

// UserMessage extracts the most specific human-readable message from err,
// falling back to fallback and finally to GenericFailureMessage.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var messenger UserMessenger
	if errors.As(err, &messenger) {
		if msg := strings.TrimSpace(messenger.UserMessage()); msg != "" {
			return msg
		}
	}
	var validation *ValidationError
	if errors.As(err, &validation) && strings.TrimSpace(validation.Message) != "" {
		return validation.Message
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return GenericFailureMessage
}
