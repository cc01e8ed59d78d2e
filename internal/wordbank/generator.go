package wordbank

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/leitner"
)

// DefaultPrompt is shown for words without a hint.
const DefaultPrompt = "Pick the correct spelling"

// OptionCount is the number of options per item.
const OptionCount = 3

// Config controls item and finite-set generation.
type Config struct {
	// DailySize is the number of items in the daily set.
	DailySize int `mapstructure:"daily_size"`
	// ChallengeSize is the number of items in a challenge set.
	ChallengeSize int `mapstructure:"challenge_size"`
	// ReviewLimit caps the review set.
	ReviewLimit int `mapstructure:"review_limit"`
	// HardestLimit caps the hardest-words drill.
	HardestLimit int `mapstructure:"hardest_limit"`
	// LevelSpread is how far from the requested level a word may be.
	LevelSpread int `mapstructure:"level_spread"`
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		DailySize:     10,
		ChallengeSize: 10,
		ReviewLimit:   20,
		HardestLimit:  10,
		LevelSpread:   1,
	}
}

// Generator builds game items from a bank. The scheduler, when set,
// feeds the review and hardest sets.
type Generator struct {
	bank  *Bank
	sched *leitner.Scheduler
	cfg   Config

	// Now returns the current time. It picks the daily set and the due
	// review words.
	Now func() time.Time
}

// NewGenerator returns a generator over bank. sched may be nil.
func NewGenerator(bank *Bank, sched *leitner.Scheduler, cfg Config) *Generator {
	return &Generator{bank: bank, sched: sched, cfg: cfg, Now: time.Now}
}

// Item picks a word near level from category and builds a three-option
// item. An unknown category draws from every word.
func (g *Generator) Item(level int, category string, hardMode bool, rng *rand.Rand) game.Item {
	entries, err := g.bank.Words(category)
	if err != nil {
		entries = g.bank.All()
	}
	pool := nearLevel(entries, level, g.cfg.LevelSpread)
	if len(pool) == 0 {
		return game.Item{ID: "empty", Prompt: "No words available"}
	}
	e := pool[rng.IntN(len(pool))]

	cat := category
	if err != nil {
		_, cat, _ = g.bank.Lookup(e.Word)
	}
	return buildItem(cat+"-"+e.Word, e, cat, hardMode, rng)
}

// FiniteSet returns the items of a finite category, or nil when the
// category has nothing to offer.
func (g *Generator) FiniteSet(category, challengeID string) []game.Item {
	now := g.Now()
	switch category {
	case game.CategoryDaily:
		date := now.Format(time.DateOnly)
		return g.sampled(category, "daily-"+date, g.cfg.DailySize, seededRand("daily:"+date))
	case game.CategoryChallenge:
		if challengeID == "" {
			return nil
		}
		return g.sampled(category, "challenge-"+challengeID, g.cfg.ChallengeSize, seededRand("challenge:"+challengeID))
	case game.CategoryReview:
		if g.sched == nil {
			return nil
		}
		keys := g.sched.ReviewQueue(now)
		if g.cfg.ReviewLimit > 0 && len(keys) > g.cfg.ReviewLimit {
			keys = keys[:g.cfg.ReviewLimit]
		}
		return g.fromKeys(category, keys, seededRand("review:"+now.Format(time.DateOnly)))
	case game.CategoryHardest:
		if g.sched == nil {
			return nil
		}
		keys := g.sched.HardestWords(g.cfg.HardestLimit)
		return g.fromKeys(category, keys, seededRand("hardest:"+now.Format(time.DateOnly)))
	}
	return nil
}

// sampled draws n distinct words from the whole bank, easiest first.
func (g *Generator) sampled(category, prefix string, n int, rng *rand.Rand) []game.Item {
	all := g.bank.All()
	if n <= 0 || len(all) == 0 {
		return nil
	}
	perm := rng.Perm(len(all))
	n = min(n, len(all))
	picked := make([]Entry, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, all[i])
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Level < picked[j].Level })

	items := make([]game.Item, 0, n)
	for i, e := range picked {
		_, cat, _ := g.bank.Lookup(e.Word)
		it := buildItem(prefix+"-"+strconv.Itoa(i), e, cat, false, rng)
		it.Meta["set"] = category
		items = append(items, it)
	}
	return items
}

// fromKeys builds hard-mode items for tracked words. Words no longer in
// the bank still get an item with generated misspellings.
func (g *Generator) fromKeys(category string, keys []string, rng *rand.Rand) []game.Item {
	items := make([]game.Item, 0, len(keys))
	for i, k := range keys {
		e, cat, ok := g.bank.Lookup(k)
		if !ok {
			e = Entry{Word: k, Level: MinLevel}
			if rec, found := g.sched.Record(k); found {
				cat = rec.Category
			}
		}
		it := buildItem(category+"-"+strconv.Itoa(i)+"-"+k, e, cat, true, rng)
		it.Meta["set"] = category
		items = append(items, it)
	}
	return items
}

func buildItem(id string, e Entry, category string, hard bool, rng *rand.Rand) game.Item {
	opts := append([]string{e.Word}, Misspellings(e.Word, OptionCount-1, hard, e.Distractors, rng)...)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	correct := 0
	for i, o := range opts {
		if o == e.Word {
			correct = i
		}
	}
	prompt := e.Hint
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return game.Item{
		ID:           id,
		Prompt:       prompt,
		Options:      opts,
		CorrectIndex: correct,
		Answer:       e.Word,
		Meta: map[string]string{
			"word":     e.Word,
			"category": category,
			"level":    strconv.Itoa(e.Level),
		},
	}
}

// nearLevel returns the entries within spread of level, or the entries
// closest to level when none are.
func nearLevel(entries []Entry, level, spread int) []Entry {
	var out []Entry
	best := -1
	for _, e := range entries {
		d := abs(e.Level - level)
		if d <= spread {
			out = append(out, e)
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, e := range entries {
		if abs(e.Level-level) == best {
			out = append(out, e)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func seededRand(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
