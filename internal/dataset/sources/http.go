package sources

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPSource downloads a dataset, retrying transient failures behind a circuit breaker.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        url,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		url: url,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

// Open returns the response body; the caller closes it.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
