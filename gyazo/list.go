package gyazo

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"
)

// List returns every image in the account, page by page, normalized to File.
// Each page is requested only once the consumer has taken every entity of the
// previous one; breaking out of the loop stops further requests. The sequence
// ends after the first error.
//
//	for file, err := range client.List(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(file.Download)
//	}
func (c *Client) List(ctx context.Context) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		received := 0
		for page := 1; ; page++ {
			images, total, err := c.fetchPage(ctx, page)
			if err != nil {
				yield(File{}, err)
				return
			}
			if len(images) == 0 && received < total {
				yield(File{}, &ProtocolError{Message: fmt.Sprintf(
					"API returned an empty page %d after %d of %d images", page, received, total)})
				return
			}
			received += len(images)

			c.logger.Debug().
				Int("page", page).
				Int("count", len(images)).
				Int("received", received).
				Int("total", total).
				Msg("Retrieved images from Gyazo")

			for _, image := range images {
				file, err := c.normalize(ctx, image)
				if !yield(file, err) || err != nil {
					return
				}
			}

			if received >= total {
				return
			}
		}
	}
}

// fetchPage returns one page of images along with the reported total count
func (c *Client) fetchPage(ctx context.Context, page int) ([]Image, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(PageSize))

	resp, err := c.apiGet(ctx, "/images", params)
	if err != nil {
		return nil, 0, err
	}

	images, err := decodeJSON[[]Image](resp, "Could not decode API get request response as JSON")
	if err != nil {
		return nil, 0, err
	}

	total, ok := totalCount(resp.Header)
	if !ok {
		return nil, 0, &ProtocolError{Message: fmt.Sprintf(
			"API did not respond to page %d with a parseable `X-Total-Count` header", page)}
	}
	return images, total, nil
}

// ListInternal returns the raw entries of the undocumented internal API, which
// requires the session cookie. Paging stops at the first empty page.
func (c *Client) ListInternal(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		for page := 1; ; page++ {
			params := url.Values{}
			params.Set("page", strconv.Itoa(page))
			params.Set("per_page", strconv.Itoa(PageSize))

			resp, err := c.internalGet(ctx, "/internal/images", params)
			if err != nil {
				yield(nil, err)
				return
			}

			entries, err := decodeJSON[[]json.RawMessage](resp, "Could not decode internal API get request response as JSON")
			if err != nil {
				yield(nil, err)
				return
			}
			if len(entries) == 0 {
				return
			}

			c.logger.Debug().
				Int("page", page).
				Int("count", len(entries)).
				Msg("Retrieved internal entries from Gyazo")

			for _, entry := range entries {
				if !yield(entry, nil) {
					return
				}
			}
		}
	}
}
