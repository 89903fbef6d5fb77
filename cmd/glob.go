package cmd

import (
	"sift/internal/tools"

	"github.com/spf13/cobra"
)

var flagGlobLimit int

var globCmd = &cobra.Command{
	Use:   "glob <pattern> [path]",
	Short: "Find files by name pattern, newest first",
	Long: `Find regular files under path (default ".") matching pattern.
"**" matches any number of directories and one {a,b} group is expanded,
e.g. "src/**/*.{go,md}".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		p := tools.GlobParams{
			Pattern: args[0],
			Limit:   orDefault(flagGlobLimit, e.cfg.Limits.Glob),
		}
		if len(args) == 2 {
			p.Path = args[1]
		}

		resp, err := e.svc.Glob(p)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), resp, resp.Output)
	},
}

func init() {
	globCmd.Flags().IntVarP(&flagGlobLimit, "limit", "n", 0, "maximum files to return (default from config, 100)")
	globCmd.Flags().BoolVar(&flagJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(globCmd)
}
