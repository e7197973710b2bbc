package icons

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlens/pkg/errors"
	"github.com/matzehuels/archlens/pkg/httputil"
	"github.com/matzehuels/archlens/pkg/observability"
)

// maxIconBytes caps a single icon payload.
const maxIconBytes = 1 << 20

// HTTPFetcher loads icons with GET requests against Request.URL.
//
// Transport errors and 5xx responses are retried with the configured
// policy; 404 maps to ICON_NOT_FOUND and is not retried.
type HTTPFetcher struct {
	http    *http.Client
	headers map[string]string
	policy  httputil.Policy
	logger  *log.Logger
}

// NewHTTPFetcher creates a fetcher with default headers applied to every
// request. A nil client uses [httputil.NewClient]; a nil logger uses
// log.Default().
func NewHTTPFetcher(client *http.Client, headers map[string]string, logger *log.Logger) *HTTPFetcher {
	if client == nil {
		client = httputil.NewClient()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPFetcher{
		http:    client,
		headers: headers,
		policy:  httputil.DefaultPolicy,
		logger:  logger,
	}
}

// WithPolicy returns a copy of f using p for retries.
func (f *HTTPFetcher) WithPolicy(p httputil.Policy) *HTTPFetcher {
	cp := *f
	cp.policy = p
	return &cp
}

// Fetch downloads the payload for req.
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if req.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "icon %q has no URL", req.Name)
	}
	if err := errors.ValidateURL(req.URL); err != nil {
		return nil, err
	}

	var data []byte
	err := httputil.Retry(ctx, f.policy, func() error {
		var err error
		data, err = f.get(ctx, req)
		return err
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "fetch icon %q", req.Name)
	}
	return data, nil
}

func (f *HTTPFetcher) get(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %q", req.Name)
	}
	for k, v := range f.headers {
		httpReq.Header.Set(k, v)
	}

	host, path := splitURL(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := f.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		f.logger.Debug("icon request failed", "icon", req.Name, "err", err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", req.URL))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, req); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes+1))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", req.URL))
	}
	if len(data) > maxIconBytes {
		return nil, errors.New(errors.ErrCodeFetchFailed, "icon %q exceeds %d bytes", req.Name, maxIconBytes)
	}
	return data, nil
}

func checkStatus(code int, req Request) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeIconNotFound, "icon %q not found at %s", req.Name, req.URL)
	case code == http.StatusTooManyRequests || code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", req.URL, code))
	default:
		return errors.New(errors.ErrCodeFetchFailed, "GET %s: status %d", req.URL, code)
	}
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}

var _ Fetcher = (*HTTPFetcher)(nil)

// String implements fmt.Stringer for log output.
func (f *HTTPFetcher) String() string {
	return fmt.Sprintf("http(attempts=%d)", f.policy.Attempts)
}
