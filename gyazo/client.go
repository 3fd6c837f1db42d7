package gyazo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	// APIURL is the base of the official and internal API
	APIURL = "https://api.gyazo.com/api"
	// APIUploadURL is the official token based upload endpoint
	APIUploadURL = "https://upload.gyazo.com/api/upload"
	// CGIUploadURL is the browser-style upload endpoint
	CGIUploadURL = "https://upload.gyazo.com/upload.cgi"
	// VideoUploadURL is the video upload endpoint
	VideoUploadURL = "https://gif.gyazo.com/gif/upload"
	// AssetURL is the host serving uploaded assets
	AssetURL = "https://i.gyazo.com"

	// PageSize is the number of images requested per listing page
	PageSize = 100

	totalCountHeader = "X-Total-Count"
)

// Client talks to the Gyazo API. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	creds          Credentials
	httpClient     *http.Client
	logger         zerolog.Logger
	userAgent      string
	apiURL         string
	cgiUploadURL   string
	apiUploadURL   string
	videoUploadURL string
	assetURL       string
}

// NewClient creates a new Gyazo client. Missing credentials are only
// reported by the operations that need them.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		creds:          creds,
		httpClient:     &http.Client{},
		logger:         logger,
		apiURL:         APIURL,
		cgiUploadURL:   CGIUploadURL,
		apiUploadURL:   APIUploadURL,
		videoUploadURL: VideoUploadURL,
		assetURL:       AssetURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExpectCookie returns the session cookie or a MissingCredentialError
func (c *Client) ExpectCookie() (string, error) {
	return expect(c.creds.Cookie, CredentialCookie)
}

// ExpectDevice returns the device identifier or a MissingCredentialError
func (c *Client) ExpectDevice() (string, error) {
	return expect(c.creds.Device, CredentialDevice)
}

// ExpectKey returns the access token or a MissingCredentialError
func (c *Client) ExpectKey() (string, error) {
	return expect(c.creds.Key, CredentialKey)
}

func expect(value string, kind Credential) (string, error) {
	if value == "" {
		return "", &MissingCredentialError{Credential: kind}
	}
	return value, nil
}

// Get retrieves a single image by id
func (c *Client) Get(ctx context.Context, imageID string) (File, error) {
	resp, err := c.apiGet(ctx, "/images/"+url.PathEscape(imageID), nil)
	if err != nil {
		return File{}, err
	}

	image, err := decodeJSON[Image](resp, "Could not decode API get request response as JSON")
	if err != nil {
		return File{}, err
	}
	return c.normalize(ctx, image)
}

// Count returns the number of images stored in the account
func (c *Client) Count(ctx context.Context) (int, error) {
	params := url.Values{}
	params.Set("per_page", "0")

	resp, err := c.apiGet(ctx, "/images", params)
	if err != nil {
		return 0, err
	}

	if _, err := decodeJSON[[]Image](resp, "Could not decode API get request response as JSON"); err != nil {
		return 0, err
	}

	count, ok := totalCount(resp.Header)
	if !ok {
		return 0, &ProtocolError{Message: "API did not respond to an empty read query with a parseable `X-Total-Count` header"}
	}
	return count, nil
}

// Me returns the user owning the access token
func (c *Client) Me(ctx context.Context) (User, error) {
	resp, err := c.apiGet(ctx, "/users/me", nil)
	if err != nil {
		return User{}, err
	}

	wrapped, err := decodeJSON[struct {
		User User `json:"user"`
	}](resp, "Could not decode user response as JSON")
	if err != nil {
		return User{}, err
	}
	return wrapped.User, nil
}

// normalize resolves the image type and converts it to a File
func (c *Client) normalize(ctx context.Context, image Image) (File, error) {
	if err := c.fixMP4(ctx, &image); err != nil {
		return File{}, err
	}
	return toFile(image, c.assetURL), nil
}

// fixMP4 rewrites a "gif" type to "mp4" when only the video asset exists.
// A HEAD request does not reveal whether the asset exists, so the probe is a GET
// whose body is discarded. Only cancellation of ctx is returned as an error;
// any other probe failure leaves the type untouched.
func (c *Client) fixMP4(ctx context.Context, image *Image) error {
	if image.Type != "gif" {
		return nil
	}

	probeURL := downloadURL(c.assetURL, image.ImageID, "mp4")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return &RequestError{Message: "Could not create mp4 probe request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &RequestError{Message: "mp4 probe request was cancelled", Err: ctxErr}
		}
		c.logger.Debug().Err(err).Str("image_id", image.ImageID).Msg("mp4 probe failed")
		return nil
	}
	resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug().Str("image_id", image.ImageID).Msg("Reclassified gif as mp4")
		image.Type = "mp4"
	}
	return nil
}

func totalCount(header http.Header) (int, bool) {
	value := header.Get(totalCountHeader)
	if value == "" {
		return 0, false
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}
