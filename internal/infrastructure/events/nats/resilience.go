package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/resilience"
)

// classifyNATSError keeps cancellations out of the breaker statistics and
// marks connection-level failures as retryable.
func classifyNATSError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.ErrorClassification{}
	case errors.Is(err, nats.ErrNoServers),
		errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrConnectionClosed),
		errors.Is(err, nats.ErrDisconnected):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

func wrapTemporaryIfNeeded(err error) error {
	switch {
	case err == nil, domain.IsKind(err, domain.ErrTemporary):
		return err
	case resilience.IsCircuitOpen(err), classifyNATSError(err).Retryable:
		return domain.WrapError(domain.ErrTemporary, publishOperation, err)
	default:
		return domain.WrapError(domain.ErrNetwork, publishOperation, err)
	}
}
