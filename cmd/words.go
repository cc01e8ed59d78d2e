package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect word lists",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories of the built-in and configured word lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-14s  %-24s  %5s  %s\n", "Category", "Name", "Words", "Levels")
		for _, cat := range e.bank.Categories() {
			entries, err := e.bank.Words(cat)
			if err != nil {
				return err
			}
			lo, hi := levelRange(entries)
			fmt.Fprintf(w, "%-14s  %-24s  %5d  %d-%d\n", cat, e.bank.Name(cat), len(entries), lo, hi)
		}
		fmt.Fprintf(w, "\n%d words in total\n", e.bank.Len())
		return nil
	},
}

var wordsCheckCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate word-list files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			list, err := wordbank.LoadFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(w, "✗ %s\n  %v\n", path, err)
				continue
			}
			fmt.Fprintf(w, "✓ %s: %s (%s), %d words\n", path, list.Name, list.Category, len(list.Words))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsCheckCmd)
}

func levelRange(entries []wordbank.Entry) (lo, hi int) {
	for i, e := range entries {
		if i == 0 || e.Level < lo {
			lo = e.Level
		}
		hi = max(hi, e.Level)
	}
	return lo, hi
}
