package oauth

import "net/http"

// Option configures a provider.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	userInfoURL string
	emailsURL   string
}

// WithHTTPClient sets a custom HTTP client for provider requests.
// Useful for tests and custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithUserInfoURL overrides the provider's userinfo endpoint.
// Primarily for tests against a local stub server.
func WithUserInfoURL(url string) Option {
	return func(o *options) {
		o.userInfoURL = url
	}
}

// WithEmailsURL overrides the provider's emails endpoint where applicable.
// Primarily for tests against a local stub server.
func WithEmailsURL(url string) Option {
	return func(o *options) {
		o.emailsURL = url
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
