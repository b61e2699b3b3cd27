package httpclient

import (
	"net/http"
	"time"
)

// DefaultHeaders are sent with every request unless overridden.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":   "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		"Connection":   "keep-alive",
		"Content-Type": "application/x-www-form-urlencoded",
	}
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

// RoundTrip sets the configured headers on a clone of req. Headers already
// present on the request win.
func (h *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	for name, value := range h.headers {
		if r2.Header.Get(name) == "" {
			r2.Header.Set(name, value)
		}
	}
	return h.rt.RoundTrip(r2)
}

// CanonicalHeaders returns a copy of headers keyed by canonical header
// names. When two keys name the same header, the canonically spelled one
// wins.
func CanonicalHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for name, value := range headers {
		if name == http.CanonicalHeaderKey(name) {
			out[name] = value
		}
	}
	for name, value := range headers {
		canonical := http.CanonicalHeaderKey(name)
		if _, ok := out[canonical]; !ok {
			out[canonical] = value
		}
	}
	return out
}

type options struct {
	headers map[string]string
	timeout time.Duration
}

type Opt func(*options)

// WithHeaders replaces the default header set.
func WithHeaders(headers map[string]string) Opt {
	return func(o *options) {
		o.headers = CanonicalHeaders(headers)
	}
}

// WithHeader adds or replaces a single header.
func WithHeader(name, value string) Opt {
	return func(o *options) {
		name = http.CanonicalHeaderKey(name)
		if value == "" {
			delete(o.headers, name)
			return
		}
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[name] = value
	}
}

func WithTimeout(timeout time.Duration) Opt {
	return func(o *options) {
		o.timeout = timeout
	}
}

func NewHTTPClient(opts ...Opt) *http.Client {
	o := options{
		headers: DefaultHeaders(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.headers == nil {
		o.headers = map[string]string{}
	}

	return &http.Client{
		Timeout: o.timeout,
		Transport: &headerTransport{
			headers: o.headers,
			rt:      http.DefaultTransport,
		},
	}
}
