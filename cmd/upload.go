package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gyazo/config"
	"github.com/s0up4200/gyazo/gyazo"
)

// uploadArgs are the per-invocation overrides of the configured upload defaults
type uploadArgs struct {
	anonymous       bool
	app             string
	publicMetadata  bool
	privateMetadata bool
	api             bool
	saveDevice      bool
}

var uploadOpts uploadArgs

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:     "upload <file>",
	Aliases: []string{"up"},
	Short:   "Upload an image or mp4 video",
	Long: `Upload a jpg, png or gif image, or an mp4 video.

Images go through the same upload endpoint as the desktop uploader. Without a
configured device ID the server issues a new one, which is printed and can be
stored in the config file with --save-device. Use --api to upload through the
official API with the API key instead. Videos always require a device ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	flags := uploadCmd.Flags()
	flags.BoolVarP(&uploadOpts.anonymous, "anonymous", "a", false, "do not send the device ID")
	flags.StringVar(&uploadOpts.app, "app", "", "application the upload is attributed to")
	flags.BoolVar(&uploadOpts.publicMetadata, "public-metadata", false, "make metadata public")
	flags.BoolVar(&uploadOpts.privateMetadata, "private-metadata", false, "keep metadata private")
	flags.BoolVar(&uploadOpts.api, "api", false, "upload through the official API")
	flags.BoolVar(&uploadOpts.saveDevice, "save-device", false, "store a newly issued device ID in the config file")

	uploadCmd.MarkFlagsMutuallyExclusive("public-metadata", "private-metadata")
	uploadCmd.MarkFlagsMutuallyExclusive("anonymous", "save-device")
}

// apply merges the flags over the configured defaults
func (a uploadArgs) apply(upload gyazo.Upload) gyazo.Upload {
	if a.app != "" {
		upload.App = a.app
	}
	if a.publicMetadata {
		upload.PublicMetadata = true
	}
	if a.privateMetadata {
		upload.PublicMetadata = false
	}
	if a.anonymous {
		upload.Anonymous = true
	}
	return upload
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	upload := uploadOpts.apply(cfg.UploadDefaults())

	device, err := uploadFile(cmd.Context(), client, cmd.OutOrStdout(), path, upload, uploadOpts.api)
	if err != nil {
		return err
	}

	if uploadOpts.saveDevice && device != "" && device != cfg.Device {
		configPath := cfgFile
		if configPath == "" {
			if configPath, err = config.Path(); err != nil {
				return err
			}
		}
		if err := config.SetDevice(configPath, device); err != nil {
			return fmt.Errorf("failed to save device ID: %w", err)
		}
		logger.Info().Str("path", configPath).Msg("Saved device ID")
	}
	return nil
}

// uploadFile picks the upload protocol for path and prints the result. It
// returns the device ID the upload was attributed to, if any.
func uploadFile(ctx context.Context, api gyazo.API, w io.Writer, path string, upload gyazo.Upload, useAPI bool) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".mp4") && !useAPI {
		u, err := api.UploadVideo(ctx, path)
		if err != nil {
			return "", fmt.Errorf("failed to upload video file %s: %w", path, err)
		}
		fmt.Fprintf(w, "URL: %s\n", u)
		return "", nil
	}

	if useAPI {
		file, err := api.UploadImageAPI(ctx, path, upload)
		if err != nil {
			return "", fmt.Errorf("failed to upload image file %s: %w", path, err)
		}
		fmt.Fprintf(w, "URL: %s\n", file.Permalink)
		fmt.Fprintf(w, "Download: %s\n", file.Download)
		return "", nil
	}

	result, err := api.UploadImageCGI(ctx, path, upload)
	if err != nil {
		return "", fmt.Errorf("failed to upload image file %s: %w", path, err)
	}
	fmt.Fprintf(w, "Device: %s\n", result.Device)
	fmt.Fprintf(w, "URL: %s\n", result.URL)
	return result.Device, nil
}
