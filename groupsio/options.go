package groupsio

import (
	"net/http"
	"time"
)

const (
	// DefaultHostname is the public Groups.io API host.
	DefaultHostname = "api.groups.io"
	// DefaultVersion is the API version tag used in the root path.
	DefaultVersion = "v1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "groupsio-go"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	hostname   string
	version    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		hostname:  DefaultHostname,
		version:   DefaultVersion,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
}

// WithHostname overrides the API host (e.g. "api.groups.io").
func WithHostname(hostname string) Option {
	return func(o *clientOptions) {
		o.hostname = hostname
	}
}

// WithVersion overrides the API version tag (e.g. "v1").
func WithVersion(version string) Option {
	return func(o *clientOptions) {
		o.version = version
	}
}

// WithTimeout sets the HTTP client timeout.
// It has no effect when combined with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient uses the given HTTP client for every call.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
