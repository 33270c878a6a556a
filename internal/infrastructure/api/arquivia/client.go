// Package arquivia is the REST client of the ArquiVia backend. Every service
// method maps to exactly one endpoint and carries no business rules.
package arquivia

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/resilience"
)

const defaultVersion = "v1"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	executor   *resilience.Executor
	limiter    *rate.Limiter
	observer   ports.RequestObserver
}

type Options struct {
	// Version selects the /api/{version} prefix; empty means v1.
	Version string
	Token   string
	// Timeout of zero leaves the HTTP client default (no timeout).
	Timeout    time.Duration
	HTTPClient *http.Client

	RateLimitRPS   float64
	RateLimitBurst int

	Executor *resilience.Executor
	Observer ports.RequestObserver
}

func New(baseURL string, opts Options) *Client {
	version := strings.Trim(strings.TrimSpace(opts.Version), "/")
	if version == "" {
		version = defaultVersion
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	executor := opts.Executor
	if executor == nil {
		executor = resilience.NewExecutor(resilience.Config{BreakerEnabled: false})
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/" + version,
		token:      strings.TrimSpace(opts.Token),
		httpClient: httpClient,
		executor:   executor,
		limiter:    limiter,
		observer:   opts.Observer,
	}
}

// BaseURL returns the versioned prefix every path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
