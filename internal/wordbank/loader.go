package wordbank

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a word list from a .yaml, .yml or .toml file and
// validates it. Words are lowercased and trimmed first.
func LoadFile(path string) (WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WordList{}, fmt.Errorf("read word list: %w", err)
	}

	var l WordList
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &l); err != nil {
			return WordList{}, fmt.Errorf("parse YAML %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &l); err != nil {
			return WordList{}, fmt.Errorf("parse TOML %s: %w", path, err)
		}
	default:
		return WordList{}, fmt.Errorf("unsupported word list format %q", ext)
	}

	normalize(&l)
	if l.Category == "" {
		l.Category = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := l.Validate(); err != nil {
		return WordList{}, fmt.Errorf("word list %s: %w", path, err)
	}
	return l, nil
}

// LoadInto loads each file and adds it to bank.
func LoadInto(bank *Bank, paths ...string) error {
	for _, p := range paths {
		l, err := LoadFile(p)
		if err != nil {
			return err
		}
		if err := bank.Add(l); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile encodes l by the extension of path and replaces the file
// atomically.
func WriteFile(path string, l WordList) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(l)
	case ".toml":
		data, err = toml.Marshal(l)
	default:
		return fmt.Errorf("unsupported word list format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create word list directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".wordlist-*")
	if err != nil {
		return fmt.Errorf("create temp word list: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp word list: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp word list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp word list: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace word list: %w", err)
	}
	cleanup = false
	return nil
}

func normalize(l *WordList) {
	l.Category = strings.TrimSpace(l.Category)
	for i := range l.Words {
		e := &l.Words[i]
		e.Word = strings.ToLower(strings.TrimSpace(e.Word))
		for j, d := range e.Distractors {
			e.Distractors[j] = strings.ToLower(strings.TrimSpace(d))
		}
	}
}
