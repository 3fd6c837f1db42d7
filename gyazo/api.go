package gyazo

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/url"
)

// API defines the Gyazo operations used by the CLI
type API interface {
	// Get retrieves a single file by id
	Get(ctx context.Context, imageID string) (File, error)

	// Count returns the number of stored files
	Count(ctx context.Context) (int, error)

	// Me returns the authenticated user
	Me(ctx context.Context) (User, error)

	// List lazily pages through every stored file
	List(ctx context.Context) iter.Seq2[File, error]

	// ListInternal lazily pages through the internal API
	ListInternal(ctx context.Context) iter.Seq2[json.RawMessage, error]

	UploadImageCGI(ctx context.Context, path string, upload Upload) (CGIUpload, error)
	UploadImageAPI(ctx context.Context, path string, upload Upload) (File, error)
	UploadVideo(ctx context.Context, path string) (*url.URL, error)

	// Download streams the asset of a file into w
	Download(ctx context.Context, file File, w io.Writer) (int64, error)
}

var _ API = (*Client)(nil)
