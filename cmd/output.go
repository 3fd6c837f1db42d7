package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJSON writes v as a single JSON document followed by a newline
func printJSON(w io.Writer, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
