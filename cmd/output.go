package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// printResult writes resp as indented JSON when --json is set, otherwise the
// human-readable text.
func printResult(w io.Writer, resp any, text string) error {
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
