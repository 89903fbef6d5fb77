package cmd

import (
	"sift/internal/tools"

	"github.com/spf13/cobra"
)

var (
	flagInclude   string
	flagGrepLimit int
)

var grepCmd = &cobra.Command{
	Use:   "grep <pattern> [path]",
	Short: "Search file contents with a regular expression",
	Long: `Search every file under path (default ".") for lines matching pattern.
Results are grouped by file, newest file first, and capped at --limit matches.
.git, node_modules, .venv and venv directories are skipped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		p := tools.SearchParams{
			Pattern: args[0],
			Include: flagInclude,
			Limit:   orDefault(flagGrepLimit, e.cfg.Limits.Grep),
		}
		if len(args) == 2 {
			p.Path = args[1]
		}

		resp, err := e.svc.Search(p)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp, resp.Output)
	},
}

func init() {
	grepCmd.Flags().StringVarP(&flagInclude, "include", "i", "", `only search files matching this glob (e.g. "*.{ts,tsx}")`)
	grepCmd.Flags().IntVarP(&flagGrepLimit, "limit", "n", 0, "maximum matches to return (default from config, 100)")
	grepCmd.Flags().BoolVar(&flagJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(grepCmd)
}
