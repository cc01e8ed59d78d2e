package enrich

import (
	"fmt"
	"strings"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

const systemPrompt = `You help build spelling practice for children aged 6-11.

For every word you are given, suggest misspellings a child might really write.

Rules:
- Misspellings must sound like the word when read aloud, or be a common letter slip.
- Use lowercase letters a-z only. No spaces, hyphens or apostrophes.
- Never return the correct spelling, and never return another real English word.
- Return the requested number of misspellings per word, most tempting first.
- Also give a short clue for each word that a child can understand. The clue must not contain the word.
- Return every word exactly as given, in the same order.`

func buildUserMessage(category string, words []wordbank.Entry, perWord int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Misspellings per word: %d\n\n", perWord)
	b.WriteString("Words (level 1 = easiest, 10 = hardest):\n")
	for _, e := range words {
		fmt.Fprintf(&b, "- %s (level %d)", e.Word, e.Level)
		if len(e.Distractors) > 0 {
			fmt.Fprintf(&b, " already has: %s", strings.Join(e.Distractors, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
