package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "text", "json", "toml":
		default:
			return fmt.Errorf("unknown format %q (want text, json or toml)", format)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		svc, err := e.newService(cmd, timerpool.NewLoopClock(1))
		if err != nil {
			return err
		}
		st, err := svc.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("collect stats: %w", err)
		}
		return writeStats(cmd.OutOrStdout(), format, st, svc.CategoryName)
	},
}

func init() {
	statsCmd.Flags().StringP("format", "f", "text", "Output format: text, json or toml")
}

func writeStats(w io.Writer, format string, st session.Stats, names func(string) string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "toml":
		return toml.NewEncoder(w).Encode(st)
	}

	p := st.Profile
	sep := strings.Repeat("─", 44)
	fmt.Fprintln(w, "Profile")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-16s %d (floor %d)\n", "Level", p.Level, p.MinLevel)
	fmt.Fprintf(w, "%-16s %d\n", "Shields", p.Shields)
	fmt.Fprintf(w, "%-16s %d\n", "High score", p.HighScore)
	fmt.Fprintf(w, "%-16s %d\n", "Best streak", p.BestStreak)
	daily := "not yet"
	if st.DailyDone {
		daily = "done ✓"
	}
	fmt.Fprintf(w, "%-16s %s\n", "Today's daily", daily)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Words")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-16s %d\n", "Seen", st.Words)
	fmt.Fprintf(w, "%-16s %d\n", "Mastered", st.Mastered)
	fmt.Fprintf(w, "%-16s %d\n", "Due for review", st.Due)
	for i, n := range st.Boxes {
		fmt.Fprintf(w, "  box %d %5d\n", i, n)
	}
	if len(st.Hardest) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "Hardest", strings.Join(st.Hardest, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Answers")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-16s %d\n", "Answered", st.Answers.Answered)
	if st.Answers.Answered > 0 {
		fmt.Fprintf(w, "%-16s %.0f%%\n", "Accuracy", float64(st.Answers.Correct)/float64(st.Answers.Answered)*100)
		fmt.Fprintf(w, "%-16s %dms\n", "Average time", st.Answers.AvgMs)
	}

	if len(st.Recent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent sessions")
		fmt.Fprintln(w, sep)
		for _, s := range st.Recent {
			fmt.Fprintf(w, "%s  %-14s %5d pts  %d/%d  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"), names(s.Category),
				s.Score, s.CorrectAnswers, s.QuestionsServed,
				(time.Duration(s.DurationSecs) * time.Second).String())
		}
	}

	if st.LLM.Requests > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "LLM: %d requests, %d failed, %d in / %d out tokens\n",
			st.LLM.Requests, st.LLM.Failures, st.LLM.InputTokens, st.LLM.OutputTokens)
	}
	return nil
}
