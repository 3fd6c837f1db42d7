package gyazo

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAPIURL overrides the base URL of the official and internal API.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
	}
}

// WithCGIUploadURL overrides the browser-style upload endpoint.
func WithCGIUploadURL(uploadURL string) Option {
	return func(c *Client) {
		c.cgiUploadURL = uploadURL
	}
}

// WithAPIUploadURL overrides the official upload endpoint.
func WithAPIUploadURL(uploadURL string) Option {
	return func(c *Client) {
		c.apiUploadURL = uploadURL
	}
}

// WithVideoUploadURL overrides the video upload endpoint.
func WithVideoUploadURL(uploadURL string) Option {
	return func(c *Client) {
		c.videoUploadURL = uploadURL
	}
}

// WithAssetURL overrides the host assets are downloaded and probed from.
func WithAssetURL(assetURL string) Option {
	return func(c *Client) {
		c.assetURL = strings.TrimRight(assetURL, "/")
	}
}
