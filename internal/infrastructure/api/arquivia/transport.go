package arquivia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/resilience"
)

const (
	requestIDHeader = "X-Request-Id"
	maxResponseSize = 8 << 20
)

type endpoint struct {
	operation string
	method    string
	path      string
	query     url.Values
}

func get(operation, path string) endpoint {
	return endpoint{operation: operation, method: http.MethodGet, path: path}
}

func (ep endpoint) withQuery(query url.Values) endpoint {
	ep.query = query
	return ep
}

// do sends one request through the rate limiter and the resilience executor and
// returns the body of a 2xx response. Only GET requests are treated as idempotent.
func (c *Client) do(ctx context.Context, ep endpoint, payload any) ([]byte, error) {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", ep.operation, err)
		}
	}

	var (
		body   []byte
		status int
	)
	start := time.Now()
	call := resilience.Call{Operation: ep.operation, Idempotent: ep.method == http.MethodGet}
	err := c.executor.Execute(ctx, call, func(callCtx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(callCtx); err != nil {
				return err
			}
		}

		req, err := c.newRequest(callCtx, ep, encoded)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return domain.WrapError(domain.ErrNetwork, ep.operation, err)
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return domain.WrapError(domain.ErrNetwork, ep.operation, fmt.Errorf("read response: %w", err))
		}
		slog.Debug("api_request",
			"operation", ep.operation,
			"method", ep.method,
			"path", ep.path,
			"status", status,
			"request_id", req.Header.Get(requestIDHeader),
		)
		if status >= http.StatusMultipleChoices {
			apiErr := newAPIError(ep.operation, status, raw)
			apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			return apiErr
		}
		body = raw
		return nil
	}, classifyAPIError)

	if c.observer != nil {
		c.observer.ObserveRequest(ep.operation, status, time.Since(start), err)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded(ep.operation, err)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, ep endpoint, payload []byte) (*http.Request, error) {
	target := c.baseURL + ep.path
	if len(ep.query) > 0 {
		target += "?" + ep.query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", ep.operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// fetch decodes an envelope response into out and returns the server message.
func (c *Client) fetch(ctx context.Context, ep endpoint, payload any, out any) (string, error) {
	body, err := c.do(ctx, ep, payload)
	if err != nil {
		return "", err
	}
	return decodeEnvelope(ep.operation, body, out)
}

func (c *Client) send(ctx context.Context, method, operation, path string, payload any, out any) (string, error) {
	return c.fetch(ctx, endpoint{operation: operation, method: method, path: path}, payload, out)
}

// fetchPage decodes a paginated response, bare or nested under the envelope data.
func (c *Client) fetchPage(ctx context.Context, ep endpoint) (domain.SearchPage, error) {
	body, err := c.do(ctx, ep, nil)
	if err != nil {
		return domain.SearchPage{}, err
	}

	var page domain.SearchPage
	message, err := decodeEnvelope(ep.operation, body, &page)
	if err != nil {
		return domain.SearchPage{}, err
	}
	if page.Mensagem == "" {
		page.Mensagem = message
	}
	if page.Results == nil {
		page.Results = []domain.DocumentSummary{}
	}
	return page, nil
}

type envelopeProbe struct {
	Sucesso  *bool           `json:"sucesso"`
	Mensagem string          `json:"mensagem"`
	Data     json.RawMessage `json:"data"`
}

func decodeEnvelope(operation string, body []byte, out any) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}

	var probe envelopeProbe
	if body[0] == '{' {
		if err := json.Unmarshal(body, &probe); err != nil {
			return "", fmt.Errorf("decode %s response: %w", operation, err)
		}
	}
	if probe.Sucesso == nil {
		if out == nil {
			return "", nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return "", fmt.Errorf("decode %s response: %w", operation, err)
		}
		return "", nil
	}

	if !*probe.Sucesso {
		return "", newAPIError(operation, http.StatusOK, body)
	}
	if out != nil && len(probe.Data) > 0 && !bytes.Equal(probe.Data, []byte("null")) {
		if err := json.Unmarshal(probe.Data, out); err != nil {
			return "", fmt.Errorf("decode %s data: %w", operation, err)
		}
	}
	return probe.Mensagem, nil
}
