package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: "Start a session straight away. Without --category words come from every\n" +
		"category. Categories include daily, review and hardest; see `spellbee words list`.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := playOptions(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, &opts)
	},
}

func init() {
	playCmd.Flags().String("category", "", "Category to play (daily, review, hardest or a word-list category)")
	playCmd.Flags().Bool("hard", false, "Hard mode: closer misspellings")
	playCmd.Flags().Bool("timed", false, "Put a countdown on every word (timed_limit config)")
	playCmd.Flags().String("challenge", "", "Play the shared challenge set with this code")
}

// playOptions turns the play flags into session options. The timed limit
// is filled in later from config.
func playOptions(cmd *cobra.Command) (session.Options, error) {
	category, _ := cmd.Flags().GetString("category")
	hard, _ := cmd.Flags().GetBool("hard")
	timed, _ := cmd.Flags().GetBool("timed")
	code, _ := cmd.Flags().GetString("challenge")

	opts := session.Options{Category: category, Hard: hard}
	if code != "" {
		if category != "" && category != game.CategoryChallenge {
			return opts, fmt.Errorf("--challenge cannot be combined with --category %s", category)
		}
		opts.Category = game.CategoryChallenge
		opts.Challenge = code
	}
	if timed {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return opts, err
		}
		opts.Timed = cfg.TimedLimit
	}
	return opts, nil
}
