// Package wordlist reads the plain-text input file: one word or phrase per
// line, UTF-8, blank lines skipped. A line of the form "word = translation"
// carries its own translation, so no translation request is made for it.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry represents a word with an optional pre-supplied translation
type Entry struct {
	Word        string
	Translation string
}

// Read reads words from a file and returns Entry slice
// Supported formats:
// - Word only: "amigo" (will be translated)
// - With translation: "amigo = friend" (translation request skipped)
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			word := strings.TrimSpace(parts[0])
			translation := strings.TrimSpace(parts[1])

			// Ignore lines with an empty word part
			if word != "" {
				entries = append(entries, Entry{
					Word:        word,
					Translation: translation,
				})
			}
			continue
		}

		entries = append(entries, Entry{Word: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return entries, nil
}
