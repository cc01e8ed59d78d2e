package wordbank

import (
	"math/rand/v2"
	"strings"
)

const vowels = "aeiou"

// phoneticPairs are spellings that sound alike. Each is tried in both
// directions.
var phoneticPairs = [][2]string{
	{"ph", "f"},
	{"ck", "k"},
	{"ee", "ea"},
	{"ai", "ay"},
	{"ai", "a"},
	{"oa", "o"},
	{"ow", "ou"},
	{"igh", "ie"},
	{"igh", "i"},
	{"ie", "ei"},
	{"wh", "w"},
	{"kn", "n"},
	{"wr", "r"},
	{"mb", "m"},
	{"tion", "shun"},
	{"ous", "us"},
	{"c", "k"},
	{"c", "s"},
	{"s", "z"},
	{"er", "ur"},
	{"le", "el"},
	{"ch", "tch"},
}

// Misspellings returns n distinct misspellings of word. Hard mode draws
// from curated distractors and sound-alike spellings before falling back
// to letter slips. The result depends only on the inputs and rng state.
func Misspellings(word string, n int, hard bool, curated []string, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	seen := map[string]bool{word: true}
	add := func(cands []string) {
		rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
		for _, c := range cands {
			if len(out) == n {
				return
			}
			if c == "" || seen[c] || !isLetters(c) {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}

	if hard {
		add(append([]string(nil), curated...))
		add(phoneticCandidates(word))
	}
	add(slipCandidates(word))

	for i := 0; len(out) < n; i++ {
		c := word + suffix(i)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// slipCandidates are single-letter mistakes: a dropped, doubled, swapped
// or wrong vowel.
func slipCandidates(word string) []string {
	var out []string
	for i := 0; i < len(word); i++ {
		if len(word) > 2 {
			out = append(out, word[:i]+word[i+1:])
		}
		out = append(out, word[:i+1]+word[i:])
		if i+1 < len(word) && word[i] != word[i+1] {
			out = append(out, word[:i]+word[i+1:i+2]+word[i:i+1]+word[i+2:])
		}
		if strings.IndexByte(vowels, word[i]) >= 0 {
			for _, v := range []byte(vowels) {
				if v != word[i] {
					out = append(out, word[:i]+string(v)+word[i+1:])
				}
			}
		}
	}
	return out
}

// phoneticCandidates replace one occurrence of a sound-alike spelling or
// collapse one doubled consonant.
func phoneticCandidates(word string) []string {
	var out []string
	for _, p := range phoneticPairs {
		out = append(out, replaceEach(word, p[0], p[1])...)
		out = append(out, replaceEach(word, p[1], p[0])...)
	}
	for i := 0; i+1 < len(word); i++ {
		if word[i] == word[i+1] && strings.IndexByte(vowels, word[i]) < 0 {
			out = append(out, word[:i]+word[i+1:])
		}
	}
	return out
}

func replaceEach(word, from, to string) []string {
	var out []string
	for start := 0; start < len(word); {
		idx := strings.Index(word[start:], from)
		if idx < 0 {
			break
		}
		idx += start
		out = append(out, word[:idx]+to+word[idx+len(from):])
		start = idx + 1
	}
	return out
}

// suffix maps i to a, b, ..., z, aa, ab, ...
func suffix(i int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
		if i < 0 {
			return string(b)
		}
	}
}
