package cmd

import (
	"strings"

	"sift/internal/tools"

	"github.com/spf13/cobra"
)

var (
	flagOffset    int
	flagReadLimit int
)

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Print a window of lines from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		resp, err := e.svc.Read(tools.ReadParams{
			Path:   args[0],
			Offset: flagOffset,
			Limit:  orDefault(flagReadLimit, e.cfg.Limits.Read),
		})
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp, strings.TrimSuffix(resp.Content, "\n"))
	},
}

func init() {
	readCmd.Flags().IntVarP(&flagOffset, "offset", "o", 0, "0-based line to start at")
	readCmd.Flags().IntVarP(&flagReadLimit, "limit", "n", 0, "maximum lines to return (default from config, 200)")
	readCmd.Flags().BoolVar(&flagJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(readCmd)
}
