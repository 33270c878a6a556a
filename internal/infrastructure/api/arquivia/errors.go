package arquivia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/resilience"
)

// APIError is a response the server rejected, either with a non-2xx status or
// with sucesso=false inside a 2xx envelope.
type APIError struct {
	Operation  string
	StatusCode int
	// Field names the first offending field when the body carried field errors.
	Field string
	// Message is the field-level message when present, else the business message.
	Message string
	// RetryAfter is the delay announced by a 429 or 503 response, if any.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e == nil {
		return "arquivia api error"
	}
	if e.Message == "" {
		return fmt.Sprintf("arquivia %s status: %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("arquivia %s status: %d: %s", e.Operation, e.StatusCode, e.Message)
}

func (e *APIError) UserMessage() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return domain.ErrTemporary
	default:
		return domain.ErrRequest
	}
}

func newAPIError(operation string, status int, body []byte) *APIError {
	field, message := extractErrorMessage(body)
	return &APIError{
		Operation:  operation,
		StatusCode: status,
		Field:      field,
		Message:    message,
	}
}

var businessMessageKeys = map[string]bool{
	"mensagem": true,
	"message":  true,
	"detail":   true,
	"error":    true,
}

// extractErrorMessage prefers the first item of the first offending field, in
// body order, and falls back to the business message of the envelope.
func extractErrorMessage(body []byte) (field, message string) {
	pairs, err := orderedObject(body)
	if err != nil {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) < 300 && !strings.HasPrefix(text, "<") {
			return "", text
		}
		return "", ""
	}

	if field, message := firstFieldError(pairs); message != "" {
		return field, message
	}
	for _, pair := range pairs {
		if !businessMessageKeys[pair.key] {
			continue
		}
		var text string
		if json.Unmarshal(pair.value, &text) == nil && strings.TrimSpace(text) != "" {
			return "", strings.TrimSpace(text)
		}
	}
	return "", ""
}

func firstFieldError(pairs []rawPair) (string, string) {
	for _, pair := range pairs {
		if pair.key == "sucesso" || businessMessageKeys[pair.key] {
			continue
		}
		value := bytes.TrimSpace(pair.value)
		if len(value) == 0 {
			continue
		}
		switch value[0] {
		case '[':
			var items []json.RawMessage
			if json.Unmarshal(value, &items) != nil || len(items) == 0 {
				continue
			}
			var text string
			if json.Unmarshal(items[0], &text) == nil && strings.TrimSpace(text) != "" {
				return pair.key, strings.TrimSpace(text)
			}
			if nested, err := orderedObject(items[0]); err == nil {
				if field, text := firstFieldError(nested); text != "" {
					return field, text
				}
			}
		case '{':
			nested, err := orderedObject(value)
			if err != nil {
				continue
			}
			if field, text := firstFieldError(nested); text != "" {
				return field, text
			}
		case '"':
			if pair.key == "data" {
				continue
			}
			var text string
			if json.Unmarshal(value, &text) == nil && strings.TrimSpace(text) != "" {
				return pair.key, strings.TrimSpace(text)
			}
		}
	}
	return "", ""
}

type rawPair struct {
	key   string
	value json.RawMessage
}

// orderedObject decodes a JSON object keeping member order, which maps lose.
func orderedObject(raw []byte) ([]rawPair, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected json object")
	}

	var pairs []rawPair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, rawPair{key: key, value: value})
	}
	return pairs, nil
}

func classifyAPIError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true, RetryAfter: apiErr.RetryAfter}
		}
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
		}
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || domain.IsKind(err, domain.ErrNetwork) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

// parseRetryAfter accepts both forms of the header: delay seconds or an HTTP date.
func parseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
