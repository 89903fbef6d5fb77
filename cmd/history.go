package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var historyCellStyle = lipgloss.NewStyle().Padding(0, 1)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded grep, glob and read calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if e.history == nil {
			return errors.New("history is disabled\nSet history_db in .sift.yaml or pass --history <file>")
		}
		entries, err := e.history.Recent(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history recorded yet.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("WHEN", "KIND", "PATTERN", "PATH", "COUNT").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return historyHeaderStyle
				}
				return historyCellStyle
			})
		for _, h := range entries {
			count := fmt.Sprint(h.Count)
			if h.Truncated {
				count += "+"
			}
			pattern := h.Pattern
			if h.Include != "" {
				pattern += " (" + h.Include + ")"
			}
			t.Row(h.CreatedAt.Local().Format("2006-01-02 15:04"), string(h.Kind), pattern, h.Path, count)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
