// Package transport fetches remote resources over HTTPS. Response
// bodies arrive in whatever chunk sizes the transport delivers and are
// captured into an accumulator, mirroring subprocess capture.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krowno/krowno/internal/core/domain"
	"github.com/krowno/krowno/pkg/buffer"
	krerrors "github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/pool"
	"github.com/krowno/krowno/pkg/system"
)

// Default transfer settings.
const (
	DefaultTimeoutSeconds = 30
	DefaultMaxRedirects   = 5
	readChunkSize         = 32 * 1024
)

// Client performs GET requests with bounded redirects and full body
// capture. TLS certificate verification is always on. Safe for
// concurrent use.
type Client struct {
	opts   domain.TransportOptions
	client *http.Client
	chunks *pool.ChunkPool
}

// DefaultOptions returns the recommended transfer settings.
func DefaultOptions() *domain.TransportOptions {
	return &domain.TransportOptions{
		TimeoutSeconds: DefaultTimeoutSeconds,
		MaxRedirects:   DefaultMaxRedirects,
		UserAgent:      "krowno/" + system.Version,
	}
}

// Validate checks the transfer options.
func Validate(input *domain.TransportOptions) error {
	if input.TimeoutSeconds < 1 {
		return krerrors.NewValidationError(
			"TimeoutSeconds", input.TimeoutSeconds, errors.New("timeout must be positive"),
		)
	}
	if input.MaxRedirects < 0 {
		return krerrors.NewValidationError(
			"MaxRedirects", input.MaxRedirects, errors.New("max redirects must not be negative"),
		)
	}
	if input.MaxBodyBytes < 0 {
		return krerrors.NewValidationError(
			"MaxBodyBytes", input.MaxBodyBytes, errors.New("max body bytes must not be negative"),
		)
	}
	return nil
}

// NewClient creates a client. Passing nil uses DefaultOptions.
func NewClient(opts *domain.TransportOptions) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}

	maxRedirects := opts.MaxRedirects
	httpClient := &http.Client{
		Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &Client{
		opts:   *opts,
		client: httpClient,
		chunks: pool.NewChunkPool(readChunkSize),
	}, nil
}

// Get fetches url and captures the whole response body. The status code
// is reported for any completed exchange, including non-2xx; the caller
// decides how to treat it.
func (c *Client) Get(ctx context.Context, url string) (*domain.HTTPResponse, error) {
	if url == "" {
		return nil, krerrors.NewValidationError(
			"url", url, errors.New("url must not be empty"),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	initial := buffer.DefaultInitialCapacity
	if c.opts.MaxBodyBytes > 0 && c.opts.MaxBodyBytes < initial {
		initial = c.opts.MaxBodyBytes
	}
	acc, err := buffer.New(initial, buffer.WithMaxCapacity(c.opts.MaxBodyBytes))
	if err != nil {
		return nil, err
	}

	chunk := c.chunks.Get()
	defer c.chunks.Put(chunk)

	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			if appendErr := acc.Append(chunk[:n]); appendErr != nil {
				acc.Release()
				return nil, appendErr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			acc.Release()
			return nil, readErr
		}
	}

	body, err := acc.Finalize()
	if err != nil {
		return nil, err
	}
	return &domain.HTTPResponse{Body: body, StatusCode: resp.StatusCode}, nil
}
