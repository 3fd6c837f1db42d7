package gyazo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/s0up4200/gyazo/filetime"
)

const (
	acceptTokenHeader  = "X-Gyazo-Accept-Token"
	sessionTokenHeader = "X-Gyazo-Session-Token"
	deviceHeader       = "X-Gyazo-Id"
)

// formField is a plain text multipart field
type formField struct {
	name  string
	value string
}

// buildForm writes the text fields followed by the file at path into a
// multipart body.
func buildForm(fields []formField, fileField, path string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &FileError{Message: "Could not open upload file", Path: path, Err: err}
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, field := range fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", &FileError{Message: "Could not prepare upload form", Path: path, Err: err}
		}
	}

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", &FileError{Message: "Could not prepare upload form", Path: path, Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", &FileError{Message: "Could not read upload file", Path: path, Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, "", &FileError{Message: "Could not prepare upload form", Path: path, Err: err}
	}

	return body, w.FormDataContentType(), nil
}

// post sends a prepared multipart body
func (c *Client) post(ctx context.Context, endpoint string, body io.Reader, contentType string, header http.Header, sendMsg, verifyMsg string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &RequestError{Message: sendMsg, Err: err}
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, sendMsg, verifyMsg)
}

// UploadImage uploads an image through the CGI endpoint and returns its URL
func (c *Client) UploadImage(ctx context.Context, path string, upload Upload) (*url.URL, error) {
	result, err := c.UploadImageCGI(ctx, path, upload)
	if err != nil {
		return nil, err
	}
	return result.URL, nil
}

// UploadImageCGI uploads a jpg, png or gif the way the desktop uploader does.
// Without a device identifier (or with upload.Anonymous) the server issues a
// new one, returned in the result; persisting it is up to the caller.
func (c *Client) UploadImageCGI(ctx context.Context, path string, upload Upload) (CGIUpload, error) {
	device := ""
	if !upload.Anonymous {
		device = c.creds.Device
	}

	metadata, err := json.Marshal(map[string]string{"app": upload.App})
	if err != nil {
		return CGIUpload{}, &RequestError{Message: "Could not encode upload metadata", Err: err}
	}

	body, contentType, err := buildForm([]formField{
		{name: "id", value: device},
		{name: "metadata", value: string(metadata)},
	}, "imagedata", path)
	if err != nil {
		return CGIUpload{}, err
	}

	header := http.Header{}
	header.Set(acceptTokenHeader, "required")

	resp, err := c.post(ctx, c.cgiUploadURL, body, contentType, header,
		"Could not send CGI image upload request",
		"CGI image upload request failed")
	if err != nil {
		return CGIUpload{}, err
	}

	token := resp.Header.Get(sessionTokenHeader)
	if device == "" {
		device = resp.Header.Get(deviceHeader)
		if device == "" {
			resp.Body.Close()
			return CGIUpload{}, &ProtocolError{Message: "CGI image upload response did not include a device ID"}
		}
	}

	text, err := readText(resp, "CGI image upload response did not contain text")
	if err != nil {
		return CGIUpload{}, err
	}

	u, err := parseURL(text, "CGI image upload response did not contain a URL")
	if err != nil {
		return CGIUpload{}, err
	}
	if token != "" {
		u.RawQuery = "token=" + url.QueryEscape(token)
	}

	c.logger.Debug().Str("url", u.String()).Str("device", device).Msg("Uploaded image through CGI endpoint")

	return CGIUpload{URL: u, Device: device}, nil
}

// UploadImageAPI uploads a jpg, png or gif through the official API.
// mp4 uploads are accepted for Pro and Teams accounts only.
func (c *Client) UploadImageAPI(ctx context.Context, path string, upload Upload) (File, error) {
	key, err := c.ExpectKey()
	if err != nil {
		return File{}, err
	}

	params := url.Values{}
	params.Set("access_token", key)
	params.Set("app", upload.App)
	params.Set("metadata_is_public", strconv.FormatBool(upload.PublicMetadata))
	if created, ok := filetime.Created(path); ok {
		// shown as "Uploaded at"
		seconds := float64(created.UnixNano()) / 1e9
		params.Set("created_at", strconv.FormatFloat(seconds, 'f', -1, 64))
	}

	body, contentType, err := buildForm(nil, "imagedata", path)
	if err != nil {
		return File{}, err
	}

	resp, err := c.post(ctx, c.apiUploadURL+"?"+params.Encode(), body, contentType, nil,
		"Could not send API image upload request",
		"API image upload failed")
	if err != nil {
		return File{}, err
	}

	image, err := decodeJSON[Image](resp, "Could not decode image API upload response as JSON")
	if err != nil {
		return File{}, err
	}
	return c.normalize(ctx, image)
}

// UploadVideo uploads an mp4 to the video endpoint. A device identifier is required.
func (c *Client) UploadVideo(ctx context.Context, path string) (*url.URL, error) {
	device, err := c.ExpectDevice()
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildForm([]formField{{name: "id", value: device}}, "data", path)
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, c.videoUploadURL, body, contentType, nil,
		"Could not send video upload request",
		"Video upload failed")
	if err != nil {
		return nil, err
	}

	text, err := readText(resp, "Video upload response did not contain text")
	if err != nil {
		return nil, err
	}
	return parseURL(text, "Video upload response did not contain a URL")
}

// parseURL accepts only absolute URLs
func parseURL(text, msg string) (*url.URL, error) {
	trimmed := strings.TrimSpace(text)
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &URLError{Message: msg, Text: text, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &URLError{Message: msg, Text: text, Err: fmt.Errorf("not an absolute URL")}
	}
	return u, nil
}
