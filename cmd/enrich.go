package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/enrich"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/llm"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich FILE",
	Short: "Ask an LLM for hard-mode misspellings and hints",
	Long: "Fill in distractors and hints for a word-list file using the configured LLM\n" +
		"provider. Without --output the file is rewritten in place.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = in
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		llmCfg := e.cfg.LLM
		if !llmCfg.Discover() {
			return fmt.Errorf("no LLM provider configured: set llm.provider and its api_key, or ANTHROPIC_API_KEY / OPENAI_API_KEY / GEMINI_API_KEY / OPENROUTER_API_KEY")
		}
		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.logger)
		if err != nil {
			return fmt.Errorf("create LLM provider: %w", err)
		}

		rep, err := enrich.New(provider, enrich.DefaultConfig(), e.logger).EnrichFile(ctx, in, out)
		if err != nil {
			return fmt.Errorf("enrich %s: %w", in, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Enriched %d of %d words in %s\n", rep.Enriched, rep.Words, out)
		fmt.Fprintf(w, "  %d distractors added, %d rejected, %d hints\n", rep.Added, rep.Rejected, rep.Hints)
		if rep.FailedBatches > 0 {
			fmt.Fprintf(w, "  %d batches failed; their words were left unchanged\n", rep.FailedBatches)
		}
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringP("output", "o", "", "Write the enriched list here instead of FILE")
}
