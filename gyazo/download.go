package gyazo

import (
	"context"
	"io"
	"net/http"
)

// Download streams the asset of file into w and returns the number of bytes written
func (c *Client) Download(ctx context.Context, file File, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Download, nil)
	if err != nil {
		return 0, &RequestError{Message: "Could not create download request", Err: err}
	}

	resp, err := c.send(req,
		"Failed to connect to file download URL",
		"Download of `"+file.Download+"` failed")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &RequestError{Message: "Failed to read bytes from file download URL", Err: err}
	}

	c.logger.Debug().Str("image_id", file.ID).Int64("bytes", n).Msg("Downloaded file")
	return n, nil
}
