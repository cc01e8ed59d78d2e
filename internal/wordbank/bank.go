package wordbank

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned for a category the bank has no words for.
var ErrUnknownCategory = errors.New("unknown category")

// Bank holds word lists keyed by category. Lists added under an existing
// category are merged into it; a later entry replaces an earlier one with
// the same word.
type Bank struct {
	order []string
	words map[string][]Entry
	names map[string]string
}

// NewBank returns a bank holding lists. Each list is validated.
func NewBank(lists ...WordList) (*Bank, error) {
	b := &Bank{
		words: make(map[string][]Entry),
		names: make(map[string]string),
	}
	for _, l := range lists {
		if err := b.Add(l); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// BuiltinBank returns a bank holding the built-in lists.
func BuiltinBank() *Bank {
	b, err := NewBank(Builtin()...)
	if err != nil {
		panic(fmt.Sprintf("wordbank: built-in lists invalid: %v", err))
	}
	return b
}

// Add validates l and merges it into the bank.
func (b *Bank) Add(l WordList) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("word list %q: %w", l.Category, err)
	}
	existing, ok := b.words[l.Category]
	if !ok {
		b.order = append(b.order, l.Category)
		b.names[l.Category] = l.Name
	}
	idx := make(map[string]int, len(existing))
	for i, e := range existing {
		idx[e.Word] = i
	}
	for _, e := range l.Words {
		if i, dup := idx[e.Word]; dup {
			existing[i] = e
			continue
		}
		idx[e.Word] = len(existing)
		existing = append(existing, e)
	}
	b.words[l.Category] = existing
	return nil
}

// Categories returns the category ids in the order they were added.
func (b *Bank) Categories() []string {
	return append([]string(nil), b.order...)
}

// Name returns the display name of a category, falling back to its id.
func (b *Bank) Name(category string) string {
	if n := b.names[category]; n != "" {
		return n
	}
	return category
}

// HasCategory reports whether the bank has words for category.
func (b *Bank) HasCategory(category string) bool {
	_, ok := b.words[category]
	return ok
}

// Words returns a copy of the entries of category.
func (b *Bank) Words(category string) ([]Entry, error) {
	ws, ok := b.words[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return append([]Entry(nil), ws...), nil
}

// All returns every distinct word sorted by level and then word. A word
// listed in several categories appears once, from the first category.
func (b *Bank) All() []Entry {
	var out []Entry
	seen := make(map[string]bool)
	for _, c := range b.order {
		for _, e := range b.words[c] {
			if !seen[e.Word] {
				seen[e.Word] = true
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// Lookup finds word in any category.
func (b *Bank) Lookup(word string) (Entry, string, bool) {
	for _, c := range b.order {
		for _, e := range b.words[c] {
			if e.Word == word {
				return e, c, true
			}
		}
	}
	return Entry{}, "", false
}

// Len returns the number of entries across all categories.
func (b *Bank) Len() int {
	n := 0
	for _, ws := range b.words {
		n += len(ws)
	}
	return n
}
