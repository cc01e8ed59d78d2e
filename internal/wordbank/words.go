package wordbank

import (
	"errors"
	"fmt"
	"strings"
)

// Entry is one word in a word list.
type Entry struct {
	Word  string `yaml:"word" toml:"word" json:"word"`
	Level int    `yaml:"level" toml:"level" json:"level"`
	Hint  string `yaml:"hint,omitempty" toml:"hint,omitempty" json:"hint,omitempty"`

	// Distractors are curated misspellings preferred in hard mode.
	Distractors []string `yaml:"distractors,omitempty" toml:"distractors,omitempty" json:"distractors,omitempty"`
}

// WordList is a named set of words belonging to one category.
type WordList struct {
	Category string  `yaml:"category" toml:"category" json:"category"`
	Name     string  `yaml:"name" toml:"name" json:"name"`
	Words    []Entry `yaml:"words" toml:"words" json:"words"`
}

// Validate checks the list and returns every problem found.
func (l *WordList) Validate() error {
	var errs []error
	if strings.TrimSpace(l.Category) == "" {
		errs = append(errs, errors.New("category is required"))
	}
	if len(l.Words) == 0 {
		errs = append(errs, errors.New("word list is empty"))
	}
	seen := make(map[string]bool, len(l.Words))
	for i, e := range l.Words {
		switch {
		case e.Word == "":
			errs = append(errs, fmt.Errorf("word %d: empty word", i))
			continue
		case !isLetters(e.Word):
			errs = append(errs, fmt.Errorf("word %q: only lowercase letters are allowed", e.Word))
		}
		if seen[e.Word] {
			errs = append(errs, fmt.Errorf("word %q: duplicate", e.Word))
		}
		seen[e.Word] = true
		if e.Level < MinLevel || e.Level > MaxLevel {
			errs = append(errs, fmt.Errorf("word %q: level %d outside %d..%d", e.Word, e.Level, MinLevel, MaxLevel))
		}
		for _, d := range e.Distractors {
			if d == e.Word {
				errs = append(errs, fmt.Errorf("word %q: distractor equals the word", e.Word))
			} else if !isLetters(d) {
				errs = append(errs, fmt.Errorf("word %q: distractor %q has non-letters", e.Word, d))
			}
		}
	}
	return errors.Join(errs...)
}

// Level bounds of built-in and loaded lists.
const (
	MinLevel = 1
	MaxLevel = 10
)

func isLetters(s string) bool {
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

// Builtin returns the word lists shipped with the game.
func Builtin() []WordList {
	return []WordList{
		{
			Category: "cvc",
			Name:     "Short vowel words",
			Words: []Entry{
				{Word: "cat", Level: 1, Hint: "A pet that says meow"},
				{Word: "dog", Level: 1, Hint: "A pet that barks"},
				{Word: "sun", Level: 1, Hint: "It shines in the sky by day"},
				{Word: "pig", Level: 1, Hint: "A pink farm animal"},
				{Word: "hat", Level: 1, Hint: "You wear it on your head"},
				{Word: "bed", Level: 1, Hint: "You sleep in it"},
				{Word: "cup", Level: 1, Hint: "You drink from it"},
				{Word: "map", Level: 2, Hint: "It shows you the way"},
				{Word: "net", Level: 2, Hint: "Used to catch fish"},
				{Word: "fox", Level: 2, Hint: "A clever orange animal"},
				{Word: "jam", Level: 2, Hint: "Sweet fruit spread"},
				{Word: "web", Level: 2, Hint: "A spider spins it"},
			},
		},
		{
			Category: "sight",
			Name:     "Sight words",
			Words: []Entry{
				{Word: "the", Level: 1, Hint: "___ cat sat down"},
				{Word: "said", Level: 2, Hint: "She ___ hello", Distractors: []string{"sed", "siad"}},
				{Word: "was", Level: 2, Hint: "It ___ fun", Distractors: []string{"wos", "wuz"}},
				{Word: "they", Level: 2, Hint: "___ went home", Distractors: []string{"thay", "thei"}},
				{Word: "come", Level: 2, Hint: "Please ___ here", Distractors: []string{"cum", "kome"}},
				{Word: "what", Level: 3, Hint: "___ is your name?", Distractors: []string{"wat", "whut"}},
				{Word: "where", Level: 3, Hint: "___ do you live?", Distractors: []string{"wear", "were"}},
				{Word: "could", Level: 3, Hint: "I ___ swim last year", Distractors: []string{"cood", "culd"}},
				{Word: "people", Level: 3, Hint: "Lots of persons", Distractors: []string{"peple", "peopel"}},
				{Word: "because", Level: 3, Hint: "I smiled ___ I was happy", Distractors: []string{"becuase", "becos"}},
			},
		},
		{
			Category: "blends",
			Name:     "Consonant blends",
			Words: []Entry{
				{Word: "frog", Level: 3, Hint: "A green animal that hops"},
				{Word: "stop", Level: 3, Hint: "A red sign says this"},
				{Word: "flag", Level: 3, Hint: "It waves on a pole"},
				{Word: "crab", Level: 3, Hint: "It walks sideways on the beach"},
				{Word: "drum", Level: 3, Hint: "You bang it to make music"},
				{Word: "plant", Level: 4, Hint: "It grows in soil"},
				{Word: "string", Level: 4, Hint: "A kite flies on it"},
				{Word: "splash", Level: 4, Hint: "The sound of jumping in water"},
				{Word: "spring", Level: 4, Hint: "The season after winter"},
				{Word: "blanket", Level: 4, Hint: "It keeps you warm in bed"},
			},
		},
		{
			Category: "digraphs",
			Name:     "Digraphs",
			Words: []Entry{
				{Word: "ship", Level: 4, Hint: "A big boat"},
				{Word: "chin", Level: 4, Hint: "It is below your mouth"},
				{Word: "thumb", Level: 5, Hint: "Your shortest finger", Distractors: []string{"thum", "thumm"}},
				{Word: "whale", Level: 5, Hint: "The biggest sea animal", Distractors: []string{"wale", "whail"}},
				{Word: "phone", Level: 5, Hint: "You call people with it", Distractors: []string{"fone", "phoan"}},
				{Word: "duck", Level: 4, Hint: "A bird that quacks", Distractors: []string{"duk", "ducc"}},
				{Word: "knife", Level: 5, Hint: "You cut food with it", Distractors: []string{"nife", "knif"}},
				{Word: "wrist", Level: 5, Hint: "Between your hand and arm", Distractors: []string{"rist", "wrest"}},
				{Word: "lunch", Level: 4, Hint: "The meal in the middle of the day"},
				{Word: "graph", Level: 6, Hint: "A chart with lines or bars", Distractors: []string{"graf", "grapf"}},
			},
		},
		{
			Category: "vowel-teams",
			Name:     "Vowel teams",
			Words: []Entry{
				{Word: "rain", Level: 5, Hint: "Water falling from clouds", Distractors: []string{"rane", "rayn"}},
				{Word: "boat", Level: 5, Hint: "It floats on water", Distractors: []string{"bote", "bowt"}},
				{Word: "tree", Level: 5, Hint: "It has leaves and a trunk", Distractors: []string{"trea", "tre"}},
				{Word: "play", Level: 5, Hint: "What you do at recess", Distractors: []string{"plai", "plae"}},
				{Word: "night", Level: 6, Hint: "When the moon is out", Distractors: []string{"nite", "nigt"}},
				{Word: "cloud", Level: 6, Hint: "White and fluffy in the sky", Distractors: []string{"clowd", "clood"}},
				{Word: "beach", Level: 6, Hint: "Sand next to the sea", Distractors: []string{"beech", "beche"}},
				{Word: "snow", Level: 6, Hint: "White flakes in winter", Distractors: []string{"sno", "snoe"}},
				{Word: "fruit", Level: 7, Hint: "Apples and pears are this", Distractors: []string{"froot", "frute"}},
				{Word: "breakfast", Level: 7, Hint: "The first meal of the day", Distractors: []string{"brekfast", "breckfast"}},
			},
		},
		{
			Category: "tricky",
			Name:     "Tricky words",
			Words: []Entry{
				{Word: "friend", Level: 7, Hint: "Someone you like to play with", Distractors: []string{"freind", "frend"}},
				{Word: "answer", Level: 7, Hint: "The reply to a question", Distractors: []string{"anser", "answere"}},
				{Word: "island", Level: 8, Hint: "Land with water all around", Distractors: []string{"iland", "ireland"}},
				{Word: "thought", Level: 8, Hint: "An idea in your head", Distractors: []string{"thougt", "thot"}},
				{Word: "separate", Level: 8, Hint: "To keep apart", Distractors: []string{"seperate", "separete"}},
				{Word: "necessary", Level: 9, Hint: "Something you must have", Distractors: []string{"neccessary", "necesary"}},
				{Word: "rhythm", Level: 9, Hint: "The beat in music", Distractors: []string{"rythm", "rhythem"}},
				{Word: "definitely", Level: 9, Hint: "Without any doubt", Distractors: []string{"definately", "definitly"}},
				{Word: "conscience", Level: 10, Hint: "The voice that tells right from wrong", Distractors: []string{"concience", "conscence"}},
				{Word: "mischievous", Level: 10, Hint: "Playfully naughty", Distractors: []string{"mischievious", "mischevous"}},
			},
		},
	}
}
