// Package testutil provides scripted fakes and helpers shared by tests
// across the module.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteWordList writes words (one per line) to a temp file and returns
// its path
func WriteWordList(t *testing.T, words ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	content := strings.Join(words, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}
	return path
}

// TranslationRule scripts a translation reply for a word
func TranslationRule(word, reply string) *ScriptedRule {
	return &ScriptedRule{
		Contains: []string{"Translate the", quoted(word)},
		Reply:    reply,
	}
}

// TranslationError scripts a translation failure for a word
func TranslationError(word string, err error) *ScriptedRule {
	return &ScriptedRule{
		Contains: []string{"Translate the", quoted(word)},
		Err:      err,
	}
}

// ExampleRule scripts an example sentence reply for a word
func ExampleRule(word, reply string) *ScriptedRule {
	return &ScriptedRule{
		Contains: []string{"example sentence", quoted(word)},
		Reply:    reply,
	}
}

// ExampleError scripts an example sentence failure for a word
func ExampleError(word string, err error) *ScriptedRule {
	return &ScriptedRule{
		Contains: []string{"example sentence", quoted(word)},
		Err:      err,
	}
}

func quoted(word string) string {
	return fmt.Sprintf("'%s'", word)
}
