package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored files",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Print information about the authenticated user",
	Args:  cobra.NoArgs,
	RunE:  runMe,
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:     "get <id>",
	Aliases: []string{"file", "info"},
	Short:   "Print information about a stored file",
	Args:    cobra.ExactArgs(1),
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(getCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	count, err := client.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to determine number of stored files: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), count)
	return nil
}

func runMe(cmd *cobra.Command, args []string) error {
	me, err := client.Me(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to determine user information: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), me, true)
}

func runGet(cmd *cobra.Command, args []string) error {
	file, err := client.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to determine file information: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), file, true)
}
