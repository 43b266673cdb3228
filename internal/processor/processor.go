package processor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"codeberg.org/snonux/ankiforge/internal/anki"
	"codeberg.org/snonux/ankiforge/internal/config"
	"codeberg.org/snonux/ankiforge/internal/translate"
	"codeberg.org/snonux/ankiforge/internal/wordlist"
)

// Processor handles the main deck generation logic
type Processor struct {
	cfg    *config.Config
	client *translate.Client
	logger *zap.Logger
}

// Summary reports per-word outcomes of a run
type Summary struct {
	Total    int // words read from the input file
	Complete int // translation and example both produced
	Partial  int // translation only, example generation failed
	Skipped  int // excluded from the deck, translation failed
}

// New creates a new deck processor
func New(cfg *config.Config, client *translate.Client, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Run reads the word list, fetches translations and examples for each
// word in input order, and writes the deck file. A single word's remote
// failure skips only that word (or its example); authentication failures
// and file errors abort the run with no output file.
func (p *Processor) Run(ctx context.Context, inputPath, deckName, outputPath string) (*Summary, error) {
	entries, err := wordlist.Read(inputPath)
	if err != nil {
		return nil, err
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		DeckName:       deckName,
		SourceLanguage: p.cfg.SourceLanguage,
		TargetLanguage: p.cfg.TargetLanguage,
		IncludeHeaders: true,
	})

	summary := &Summary{Total: len(entries)}

	for i, entry := range entries {
		fmt.Printf("Processing %d/%d: %s\n", i+1, len(entries), entry.Word)

		card, outcome, err := p.processWord(ctx, entry)
		if err != nil {
			return nil, err
		}

		switch outcome {
		case outcomeComplete:
			summary.Complete++
		case outcomePartial:
			summary.Partial++
		case outcomeSkipped:
			summary.Skipped++
			continue
		}

		gen.AddCard(card)
	}

	if p.cfg.CSV {
		err = gen.GenerateCSV(outputPath)
	} else {
		err = gen.GenerateAPKG(outputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write deck: %w", err)
	}

	p.printSummary(summary, outputPath)
	return summary, nil
}

type wordOutcome int

const (
	outcomeComplete wordOutcome = iota
	outcomePartial
	outcomeSkipped
)

// processWord fetches the translation and example for one word. The
// returned error is non-nil only for fatal conditions.
func (p *Processor) processWord(ctx context.Context, entry wordlist.Entry) (anki.Card, wordOutcome, error) {
	card := anki.Card{Word: entry.Word}

	// Use the pre-supplied translation if the input line carried one
	if entry.Translation != "" {
		card.Translation = entry.Translation
		p.logger.Debug("using provided translation",
			zap.String("word", entry.Word),
			zap.String("translation", entry.Translation))
	} else {
		translation, err := p.client.Translate(ctx, entry.Word)
		if err != nil {
			if errors.Is(err, translate.ErrAuthentication) {
				return card, outcomeSkipped, fmt.Errorf("aborting run: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Skipping '%s': translation failed: %v\n", entry.Word, err)
			p.logger.Warn("word skipped",
				zap.String("word", entry.Word),
				zap.Error(err))
			return card, outcomeSkipped, nil
		}

		card.Translation = translation
		p.logger.Debug("translated word",
			zap.String("word", entry.Word),
			zap.String("translation", translation))
	}

	example, exampleTranslation, err := p.client.ExampleSentence(ctx, entry.Word)
	if err != nil {
		if errors.Is(err, translate.ErrAuthentication) {
			return card, outcomeSkipped, fmt.Errorf("aborting run: %w", err)
		}

		// Keep the card, just without its example sentence
		fmt.Fprintf(os.Stderr, "No example for '%s': %v\n", entry.Word, err)
		p.logger.Warn("example generation failed",
			zap.String("word", entry.Word),
			zap.Error(err))
		return card, outcomePartial, nil
	}

	card.Example = example
	card.ExampleTranslation = exampleTranslation
	p.logger.Debug("generated example",
		zap.String("word", entry.Word),
		zap.String("example", example))

	return card, outcomeComplete, nil
}

func (p *Processor) printSummary(summary *Summary, outputPath string) {
	fmt.Printf("\n=== Deck Generation Summary ===\n")
	fmt.Printf("Total words: %d\n", summary.Total)
	fmt.Printf("Complete cards: %d\n", summary.Complete)
	if summary.Partial > 0 {
		fmt.Printf("Cards without example: %d\n", summary.Partial)
	}
	if summary.Skipped > 0 {
		fmt.Printf("Skipped words: %d\n", summary.Skipped)
	}
	fmt.Printf("Deck written to: %s\n", outputPath)
	fmt.Printf("===============================\n")
}
