package sendcloud

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithCredentials sets the account user and secret key.
func WithCredentials(user, key string) Option {
	return func(c *Config) {
		c.User = user
		c.Key = key
	}
}

// WithHomeCountry sets the home country id used for domestic/international
// classification and for parsing bare numbers.
func WithHomeCountry(id string) Option {
	return func(c *Config) {
		c.Country = id
	}
}

// WithEndpoint overrides the default gateway send URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithTimeout bounds gateway calls made with the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithTemplates appends templates to register at construction.
func WithTemplates(items ...TemplateItem) Option {
	return func(c *Config) {
		c.Templates = append(c.Templates, items...)
	}
}

// WithHTTPClient supplies the http.Client used by the default transport,
// for connection pooling or proxy control.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTransport replaces the gateway transport entirely.
func WithTransport(transport Transport) Option {
	return func(c *Config) {
		c.Transport = transport
	}
}
