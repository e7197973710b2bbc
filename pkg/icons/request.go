package icons

import (
	"strings"
)

// Default request parameters.
const (
	DefaultFormat = "svg"
	DefaultSource = "local"
)

// Request describes a single icon fetch.
//
// Name and the load parameters (Format, Source) together identify the cached
// payload. URL is filled when a base URL is configured and is what
// [HTTPFetcher] requests.
type Request struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Resolver builds requests for icon names from fixed load parameters.
type Resolver struct {
	Format  string
	Source  string
	BaseURL string
}

// Resolve returns the request for name. Empty parameters fall back to
// DefaultFormat and DefaultSource.
func (r Resolver) Resolve(name string) Request {
	req := Request{
		Name:   name,
		Format: r.Format,
		Source: r.Source,
	}
	if req.Format == "" {
		req.Format = DefaultFormat
	}
	if req.Source == "" {
		req.Source = DefaultSource
	}
	if r.BaseURL != "" {
		req.URL = strings.TrimRight(r.BaseURL, "/") + "/" + req.FileName()
	}
	return req
}

// FileName returns "<name>.<format>".
func (r Request) FileName() string {
	format := r.Format
	if format == "" {
		format = DefaultFormat
	}
	return r.Name + "." + format
}
