package gyazo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// missingBody replaces a response body that could not be read while reporting an API error
const missingBody = "TEXT MISSING"

// verify returns resp unchanged on 2xx. Otherwise it consumes and closes the body
// and returns an APIError describing the status.
func verify(resp *http.Response, msg string) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	text := missingBody
	if body, err := io.ReadAll(resp.Body); err == nil {
		text = string(body)
	}

	return nil, &APIError{
		Message:    msg,
		Status:     ClassifyStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Body:       text,
	}
}

// readText reads and closes the response body
func readText(resp *http.Response, msg string) (string, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Message: msg, Err: err}
	}
	return string(body), nil
}

// decodeJSON reads the whole body as text before decoding so the text can be
// reported when the payload does not match T.
func decodeJSON[T any](resp *http.Response, msg string) (T, error) {
	var v T

	text, err := readText(resp, "response contained invalid text")
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return v, &DecodeError{
			Message:  msg,
			Text:     text,
			TypeName: fmt.Sprintf("%T", v),
			Err:      err,
		}
	}
	return v, nil
}

// send performs req and verifies the response status
func (c *Client) send(req *http.Request, sendMsg, verifyMsg string) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Trace().
		Str("method", req.Method).
		Str("url", redact(req.URL)).
		Msg("Making Gyazo request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Message: sendMsg, Err: err}
	}
	return verify(resp, verifyMsg)
}

// apiGet issues an authenticated GET against the official API
func (c *Client) apiGet(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	key, err := c.ExpectKey()
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", key)

	requestURL := fmt.Sprintf("%s%s?%s", c.apiURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &RequestError{Message: "Could not create API get request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req,
		"Could not send API get request",
		fmt.Sprintf("API get request to `%s%s` failed", c.apiURL, endpoint))
}

// internalGet issues a cookie-authenticated GET against the internal API
func (c *Client) internalGet(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	cookie, err := c.ExpectCookie()
	if err != nil {
		return nil, err
	}

	requestURL := c.apiURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &RequestError{Message: "Could not create internal API get request", Err: err}
	}
	req.Header.Set("Cookie", "Gyazo_session="+cookie)
	req.Header.Set("Accept", "application/json")

	return c.send(req,
		"Could not send internal API get request",
		fmt.Sprintf("Internal API get request to `%s` failed", requestURL))
}

// redact hides the access token in logged URLs
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", "REDACTED")
		clone := *u
		clone.RawQuery = q.Encode()
		return clone.String()
	}
	return u.String()
}
