package anki

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Card represents a single flashcard in the deck
type Card struct {
	Word        string // The source-language word/phrase
	Translation string // Target-language translation
	// Example is the example sentence in the source language; empty when
	// example generation failed for this word
	Example string
	// ExampleTranslation is the target-language rendering of Example
	ExampleTranslation string
}

// HasExample reports whether example generation succeeded for this card
func (c Card) HasExample() bool {
	return c.Example != ""
}

// GeneratorOptions configures the deck export
type GeneratorOptions struct {
	DeckName       string
	SourceLanguage string // Field name for the word side
	TargetLanguage string // Field name for the translation side
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		DeckName:       "Vocabulary",
		SourceLanguage: "Spanish",
		TargetLanguage: "English",
		IncludeHeaders: true,
	}
}

// Generator collects cards and writes Anki-importable files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new deck generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard appends a card to the deck; card order is preserved in the output
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// Cards returns all collected cards in insertion order
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		headers := []string{
			g.options.SourceLanguage,
			g.options.TargetLanguage,
			fmt.Sprintf("Example (%s)", g.options.SourceLanguage),
			fmt.Sprintf("Example (%s)", g.options.TargetLanguage),
		}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Translation,
			card.Example,
			card.ExampleTranslation,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	return nil
}

// GenerateAPKG creates an .apkg package file
func (g *Generator) GenerateAPKG(outputPath string) error {
	apkg := newAPKGGenerator(g.options)
	for _, card := range g.cards {
		apkg.addCard(card)
	}
	return apkg.write(outputPath)
}

// Stats returns counts of cards total and with example sentences
func (g *Generator) Stats() (total, withExamples int) {
	total = len(g.cards)
	for _, card := range g.cards {
		if card.HasExample() {
			withExamples++
		}
	}
	return total, withExamples
}
