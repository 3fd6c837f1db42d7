package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/gyazo/gyazo"
)

// downloadOptions controls where downloads are written
type downloadOptions struct {
	to          string
	force       bool
	concurrency int
}

var downloadOpts downloadOptions

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:     "download <id>...",
	Aliases: []string{"down", "dl"},
	Short:   "Download stored files",
	Long: `Download one or more stored files into the current directory as <id>.<type>,
or into the path given with --to when downloading a single file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadOpts.to, "to", "", "destination path (single file only)")
	downloadCmd.Flags().BoolVarP(&downloadOpts.force, "force", "f", false, "overwrite existing files")
	downloadCmd.Flags().IntVarP(&downloadOpts.concurrency, "concurrency", "j", 4, "number of files downloaded at once")
}

func runDownload(cmd *cobra.Command, args []string) error {
	return downloadFiles(cmd.Context(), client, cmd.OutOrStdout(), args, downloadOpts)
}

func downloadFiles(ctx context.Context, api gyazo.API, w io.Writer, ids []string, opts downloadOptions) error {
	if opts.to != "" && len(ids) > 1 {
		return fmt.Errorf("--to can only be used when downloading a single file")
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)

	// Use mutex to keep output lines whole
	var mu sync.Mutex

	for _, id := range ids {
		g.Go(func() error {
			path, size, err := downloadFile(ctx, api, id, opts.to, opts.force)
			if err != nil {
				logger.Error().Err(err).Str("image_id", id).Msg("Download failed")
				return fmt.Errorf("failed to download %s: %w", id, err)
			}

			mu.Lock()
			fmt.Fprintf(w, "File: %s\nSize: %d bytes\n", path, size)
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// downloadFile resolves id and writes its asset to disk. A failed download
// leaves no file behind.
func downloadFile(ctx context.Context, api gyazo.API, id, to string, force bool) (string, int64, error) {
	file, err := api.Get(ctx, id)
	if err != nil {
		return "", 0, fmt.Errorf("failed to determine file information: %w", err)
	}

	path := to
	if path == "" {
		path = file.Name()
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", 0, fmt.Errorf("file %s already exists, use --force to overwrite", path)
		}
		return "", 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	size, err := api.Download(ctx, file, out)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, size, nil
}
