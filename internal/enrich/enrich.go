// Package enrich asks a language model for misspellings and hints to
// extend a word list.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/llm"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

// Config controls enrichment requests.
type Config struct {
	// BatchSize is the number of words per request.
	BatchSize int
	// PerWord is the number of curated distractors each word should end
	// up with.
	PerWord int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard enrichment settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:   15,
		PerWord:     3,
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// Report summarizes one Enrich call.
type Report struct {
	Words    int
	Enriched int
	Added    int
	Rejected int
	Hints    int

	// FailedBatches counts requests that errored. Their words are left
	// unchanged.
	FailedBatches int
}

// Enricher fills in distractors and hints for word lists.
type Enricher struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// New returns an Enricher using provider.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Enricher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.PerWord <= 0 {
		cfg.PerWord = DefaultConfig().PerWord
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{provider: provider, cfg: cfg, logger: logger}
}

type batchOutput struct {
	Words []struct {
		Word         string   `json:"word"`
		Misspellings []string `json:"misspellings"`
		Hint         string   `json:"hint"`
	} `json:"words"`
}

// Enrich returns a copy of list with distractors topped up to PerWord and
// missing hints filled. Words that already have PerWord distractors and a
// hint are not sent. A failed batch is logged and skipped; Enrich only
// errors when every batch fails or ctx is done.
func (e *Enricher) Enrich(ctx context.Context, list wordbank.WordList) (wordbank.WordList, Report, error) {
	ctx = llm.WithPurpose(ctx, "enrich")

	out := list
	out.Words = make([]wordbank.Entry, len(list.Words))
	for i, w := range list.Words {
		w.Distractors = append([]string(nil), w.Distractors...)
		out.Words[i] = w
	}
	rep := Report{Words: len(out.Words)}

	known := make(map[string]bool, len(out.Words))
	index := make(map[string]int, len(out.Words))
	var pending []int
	for i, w := range out.Words {
		known[w.Word] = true
		index[w.Word] = i
		if len(w.Distractors) < e.cfg.PerWord || w.Hint == "" {
			pending = append(pending, i)
		}
	}

	batches := 0
	for start := 0; start < len(pending); start += e.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return list, rep, err
		}
		end := min(start+e.cfg.BatchSize, len(pending))
		batch := make([]wordbank.Entry, 0, end-start)
		for _, i := range pending[start:end] {
			batch = append(batch, out.Words[i])
		}
		batches++

		res, err := e.request(ctx, list.Category, batch)
		if err != nil {
			rep.FailedBatches++
			e.logger.Warn("enrich batch failed", "category", list.Category, "first_word", batch[0].Word, "error", err)
			continue
		}

		for _, r := range res.Words {
			i, ok := index[strings.ToLower(strings.TrimSpace(r.Word))]
			if !ok {
				e.logger.Debug("enrich ignored unknown word", "word", r.Word)
				continue
			}
			entry := &out.Words[i]
			added, rejected := merge(entry, r.Misspellings, known, e.cfg.PerWord)
			rep.Added += added
			rep.Rejected += rejected
			if entry.Hint == "" {
				if h := cleanHint(r.Hint, entry.Word); h != "" {
					entry.Hint = h
					rep.Hints++
				}
			}
			if added > 0 {
				rep.Enriched++
			}
		}
	}

	if batches > 0 && rep.FailedBatches == batches {
		return list, rep, fmt.Errorf("enrich %s: all %d requests failed", list.Category, batches)
	}
	return out, rep, nil
}

func (e *Enricher) request(ctx context.Context, category string, batch []wordbank.Entry) (*batchOutput, error) {
	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(category, batch, e.cfg.PerWord)}},
		Schema:      DistractorSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate distractors: %w", err)
	}
	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse distractors: %w", err)
	}
	return &out, nil
}

// merge appends acceptable suggestions to entry until it holds perWord
// distractors. A suggestion is rejected when it is not lowercase letters,
// equals any word in the list, or duplicates an existing distractor.
func merge(entry *wordbank.Entry, suggestions []string, known map[string]bool, perWord int) (added, rejected int) {
	have := make(map[string]bool, len(entry.Distractors))
	for _, d := range entry.Distractors {
		have[d] = true
	}
	for _, s := range suggestions {
		if len(entry.Distractors) >= perWord {
			break
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if !acceptable(s) || known[s] || have[s] {
			rejected++
			continue
		}
		have[s] = true
		entry.Distractors = append(entry.Distractors, s)
		added++
	}
	return added, rejected
}

func acceptable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// cleanHint drops hints that give the word away.
func cleanHint(hint, word string) string {
	hint = strings.TrimSpace(hint)
	if strings.Contains(strings.ToLower(hint), word) {
		return ""
	}
	return hint
}

// EnrichFile enriches the word list at in and writes the result to out,
// which may equal in. The format follows each file's extension.
func (e *Enricher) EnrichFile(ctx context.Context, in, out string) (Report, error) {
	list, err := wordbank.LoadFile(in)
	if err != nil {
		return Report{}, err
	}
	enriched, rep, err := e.Enrich(ctx, list)
	if err != nil {
		return rep, err
	}
	if err := wordbank.WriteFile(out, enriched); err != nil {
		return rep, err
	}
	return rep, nil
}
