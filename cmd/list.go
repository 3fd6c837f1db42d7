package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gyazo/filter"
	"github.com/s0up4200/gyazo/gyazo"
)

// listOptions controls the list command output
type listOptions struct {
	internal bool
	pretty   bool
	filter   string
	limit    int
}

var listOpts listOptions

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored files, one JSON document per line",
	Long: `List every stored file using the official API, or the raw entries of the
internal API with --internal (requires the session cookie).

Files can be narrowed with an expression, eg.

  gyazo list --filter 'Type == "mp4" and includes(App, "chrome")' --limit 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listOpts.internal, "internal", false, "list using the internal API")
	listCmd.Flags().BoolVar(&listOpts.pretty, "pretty", false, "indent JSON output")
	listCmd.Flags().StringVarP(&listOpts.filter, "filter", "f", "", "filter expression")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0, "stop after this many files (0 for all)")
	listCmd.MarkFlagsMutuallyExclusive("internal", "filter")
}

func runList(cmd *cobra.Command, args []string) error {
	return listFiles(cmd.Context(), client, cmd.OutOrStdout(), listOpts)
}

func listFiles(ctx context.Context, api gyazo.API, w io.Writer, opts listOptions) error {
	if opts.limit < 0 {
		return fmt.Errorf("invalid limit: %d", opts.limit)
	}

	if opts.internal {
		printed := 0
		for entry, err := range api.ListInternal(ctx) {
			if err != nil {
				return fmt.Errorf("failed to determine file information with internal API: %w", err)
			}
			if err := printJSON(w, entry, opts.pretty); err != nil {
				return err
			}
			printed++
			if opts.limit > 0 && printed >= opts.limit {
				break
			}
		}
		return nil
	}

	var f *filter.Filter
	if opts.filter != "" {
		var err error
		if f, err = filter.Compile(opts.filter); err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", f.String()).Msg("Filtering files")
	}

	printed := 0
	for file, err := range api.List(ctx) {
		if err != nil {
			return fmt.Errorf("failed to determine file information with API: %w", err)
		}

		if f != nil {
			matched, err := f.Match(file)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
		}

		if err := printJSON(w, file, opts.pretty); err != nil {
			return err
		}
		printed++
		if opts.limit > 0 && printed >= opts.limit {
			break
		}
	}
	return nil
}
