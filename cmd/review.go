package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List words due for review and the hardest words",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		svc, err := e.newService(cmd, timerpool.NewLoopClock(1))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		sched := svc.Scheduler()

		due := svc.ReviewQueue(limit)
		if len(due) == 0 {
			fmt.Fprintln(w, "No words are due for review.")
		} else {
			fmt.Fprintf(w, "%-20s  %-12s  %3s  %8s  %s\n", "Word", "Category", "Box", "Accuracy", "Due since")
			for _, word := range due {
				rec, _ := sched.Record(word)
				fmt.Fprintf(w, "%-20s  %-12s  %3d  %7.0f%%  %s\n",
					word, rec.Category, rec.Box, rec.Accuracy()*100,
					rec.NextReview.Local().Format("2006-01-02 15:04"))
			}
		}

		hardest := sched.HardestWords(e.cfg.WordBank.HardestLimit)
		if len(hardest) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Hardest words:")
			for _, word := range hardest {
				rec, _ := sched.Record(word)
				fmt.Fprintf(w, "  %-20s %d/%d\n", word, rec.Correct, rec.Attempts)
			}
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().IntP("limit", "n", 20, "Maximum due words to list (0 for all)")
}
