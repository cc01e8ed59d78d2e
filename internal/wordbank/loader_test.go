package wordbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlList = `category: space
name: Space words
words:
  - word: Planet
    level: 4
    hint: Earth is one
    distractors: [planit, " plannet "]
  - word: moon
    level: 2
`

const tomlList = `category = "ocean"
name = "Ocean words"

[[words]]
word = "shark"
level = 4
hint = "A fish with sharp teeth"

[[words]]
word = "coral"
level = 5
distractors = ["corral", "corel"]
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadFile_YAML(t *testing.T) {
	l, err := LoadFile(writeTemp(t, "space.yaml", yamlList))
	require.NoError(t, err)
	assert.Equal(t, "space", l.Category)
	assert.Equal(t, "Space words", l.Name)
	require.Len(t, l.Words, 2)
	assert.Equal(t, "planet", l.Words[0].Word)
	assert.Equal(t, []string{"planit", "plannet"}, l.Words[0].Distractors)
	assert.Equal(t, "Earth is one", l.Words[0].Hint)
}

func TestLoadFile_TOML(t *testing.T) {
	l, err := LoadFile(writeTemp(t, "ocean.toml", tomlList))
	require.NoError(t, err)
	assert.Equal(t, "ocean", l.Category)
	require.Len(t, l.Words, 2)
	assert.Equal(t, Entry{Word: "coral", Level: 5, Distractors: []string{"corral", "corel"}}, l.Words[1])
}

func TestLoadFile_CategoryFromFileName(t *testing.T) {
	l, err := LoadFile(writeTemp(t, "farm.yml", "words:\n  - word: cow\n    level: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "farm", l.Category)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read word list")

	_, err = LoadFile(writeTemp(t, "list.json", "{}"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadFile(writeTemp(t, "bad.yaml", "words: [\n"))
	assert.ErrorContains(t, err, "parse YAML")

	_, err = LoadFile(writeTemp(t, "bad.toml", "words = = 1"))
	assert.ErrorContains(t, err, "parse TOML")

	_, err = LoadFile(writeTemp(t, "lvl.yaml", "words:\n  - word: cow\n    level: 42\n"))
	assert.ErrorContains(t, err, "level 42")
}

func TestLoadInto(t *testing.T) {
	b := BuiltinBank()
	require.NoError(t, LoadInto(b, writeTemp(t, "space.yaml", yamlList), writeTemp(t, "ocean.toml", tomlList)))
	assert.True(t, b.HasCategory("space"))
	assert.True(t, b.HasCategory("ocean"))
	_, cat, ok := b.Lookup("coral")
	require.True(t, ok)
	assert.Equal(t, "ocean", cat)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := WordList{Category: "space", Name: "Space", Words: []Entry{
		{Word: "comet", Level: 5, Hint: "An icy visitor", Distractors: []string{"commet", "comit"}},
		{Word: "star", Level: 2},
	}}
	for _, name := range []string{"out.yaml", "nested/out.toml"} {
		p := filepath.Join(dir, name)
		require.NoError(t, WriteFile(p, src))
		got, err := LoadFile(p)
		require.NoError(t, err)
		assert.Equal(t, src, got, name)
	}
	require.Error(t, WriteFile(filepath.Join(dir, "out.txt"), src))
}
