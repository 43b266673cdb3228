package processor

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/ankiforge/internal/config"
	"codeberg.org/snonux/ankiforge/internal/testutil"
	"codeberg.org/snonux/ankiforge/internal/translate"
)

func testConfig(csvOutput bool) *config.Config {
	return &config.Config{
		APIKey:         "sk-test",
		Provider:       "openai",
		Model:          "gpt-4o-mini",
		SourceLanguage: "Spanish",
		TargetLanguage: "English",
		Proficiency:    "Beginner",
		MaxRetries:     1,
		BaseDelay:      time.Millisecond,
		CSV:            csvOutput,
	}
}

func newTestProcessor(cfg *config.Config, provider translate.Provider) *Processor {
	client := translate.New(provider, translate.Options{
		SourceLanguage: cfg.SourceLanguage,
		TargetLanguage: cfg.TargetLanguage,
		Proficiency:    cfg.Proficiency,
		Retry: translate.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.BaseDelay,
			MaxDelay:   10 * cfg.BaseDelay,
		},
	}, zap.NewNop())

	return New(cfg, client, zap.NewNop())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output deck: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse output deck: %v", err)
	}
	return records
}

func TestRun_AllWordsSucceed(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.TranslationRule("amigo", "friend"),
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
		testutil.TranslationRule("coche", "car"),
		testutil.ExampleRule("coche", "El coche es rojo. (The car is red.)"),
		testutil.TranslationRule("gato", "cat"),
		testutil.ExampleRule("gato", "El gato duerme. (The cat sleeps.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo", "coche", "gato")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Total != 3 || summary.Complete != 3 || summary.Partial != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 3 total, 3 complete", summary)
	}

	records := readCSV(t, outputPath)
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 records, got %d rows", len(records))
	}

	// Output order equals input order
	wantOrder := []string{"amigo", "coche", "gato"}
	for i, want := range wantOrder {
		if records[i+1][0] != want {
			t.Errorf("record[%d] word = %s, want %s", i, records[i+1][0], want)
		}
	}

	if records[1][1] != "friend" || records[1][2] != "Mi amigo es alto." || records[1][3] != "My friend is tall." {
		t.Errorf("amigo record = %v", records[1])
	}
}

func TestRun_TranslationFailureSkipsWord(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.TranslationRule("amigo", "friend"),
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
		// coche rate-limits on every attempt
		testutil.TranslationError("coche", fmt.Errorf("%w: 429", translate.ErrRateLimited)),
		testutil.TranslationRule("gato", "cat"),
		testutil.ExampleRule("gato", "El gato duerme. (The cat sleeps.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo", "coche", "gato")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	cfg := testConfig(true)
	proc := newTestProcessor(cfg, provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v (one failing word must not abort the batch)", err)
	}

	if summary.Skipped != 1 || summary.Complete != 2 {
		t.Errorf("summary = %+v, want 2 complete and 1 skipped", summary)
	}

	records := readCSV(t, outputPath)
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 records, got %d rows", len(records))
	}
	if records[1][0] != "amigo" || records[2][0] != "gato" {
		t.Errorf("Deck should hold amigo and gato in order, got %v, %v", records[1][0], records[2][0])
	}

	// 1 initial attempt + MaxRetries retries for the failing word
	if got := provider.CallCount("'coche'"); got != cfg.MaxRetries+1 {
		t.Errorf("coche attempts = %d, want %d", got, cfg.MaxRetries+1)
	}
}

func TestRun_ExampleFailureKeepsTranslation(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.TranslationRule("amigo", "friend"),
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
		testutil.TranslationRule("coche", "car"),
		// only coche's example generation fails
		testutil.ExampleError("coche", fmt.Errorf("%w: boom", translate.ErrService)),
		testutil.TranslationRule("gato", "cat"),
		testutil.ExampleRule("gato", "El gato duerme. (The cat sleeps.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo", "coche", "gato")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Complete != 2 || summary.Partial != 1 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 2 complete and 1 partial", summary)
	}

	records := readCSV(t, outputPath)
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 records, got %d rows", len(records))
	}
	if records[2][0] != "coche" || records[2][1] != "car" {
		t.Errorf("coche record = %v, want translation kept", records[2])
	}
	if records[2][2] != "" || records[2][3] != "" {
		t.Errorf("coche record = %v, want empty example fields", records[2])
	}
}

func TestRun_RateLimitClearsAfterRetry(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		{
			Contains:  []string{"Translate the", "'amigo'"},
			Reply:     "friend",
			Err:       fmt.Errorf("%w: 429", translate.ErrRateLimited),
			FailTimes: 1,
		},
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Complete != 1 {
		t.Errorf("summary = %+v, want 1 complete after retry", summary)
	}
}

func TestRun_AuthenticationFailureIsFatal(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.TranslationError("amigo", fmt.Errorf("%w: bad key", translate.ErrAuthentication)),
		testutil.TranslationRule("coche", "car"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo", "coche")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	_, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err == nil {
		t.Fatal("Expected fatal error for authentication failure")
	}

	// The run must stop before processing further words
	if got := provider.CallCount("'coche'"); got != 0 {
		t.Errorf("coche was processed %d times after fatal auth error", got)
	}

	// No output file is produced on a fatal error
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Error("Output file must not exist after fatal error")
	}
}

func TestRun_UnreadableInputIsFatal(t *testing.T) {
	provider := &testutil.ScriptedProvider{}
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	_, err := proc.Run(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "Test Deck", outputPath)
	if err == nil {
		t.Fatal("Expected fatal error for unreadable input file")
	}

	if len(provider.Calls) != 0 {
		t.Errorf("No remote calls expected, got %d", len(provider.Calls))
	}
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Error("Output file must not exist after fatal error")
	}
}

func TestRun_ProvidedTranslationSkipsTranslateCall(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo = friend")
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Complete != 1 {
		t.Errorf("summary = %+v, want 1 complete", summary)
	}
	if got := provider.CallCount("Translate the"); got != 0 {
		t.Errorf("Translation was requested %d times despite provided translation", got)
	}

	records := readCSV(t, outputPath)
	if records[1][1] != "friend" {
		t.Errorf("Translation = %s, want provided 'friend'", records[1][1])
	}
}

func TestRun_WritesAPKG(t *testing.T) {
	provider := &testutil.ScriptedProvider{Rules: []*testutil.ScriptedRule{
		testutil.TranslationRule("amigo", "friend"),
		testutil.ExampleRule("amigo", "Mi amigo es alto. (My friend is tall.)"),
	}}

	inputPath := testutil.WriteWordList(t, "amigo")
	outputPath := filepath.Join(t.TempDir(), "deck.apkg")

	proc := newTestProcessor(testConfig(false), provider)
	if _, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("Output deck missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Output deck is empty")
	}
}

func TestRun_EmptyWordListStillWritesDeck(t *testing.T) {
	provider := &testutil.ScriptedProvider{}

	inputPath := testutil.WriteWordList(t) // blank file
	outputPath := filepath.Join(t.TempDir(), "deck.csv")

	proc := newTestProcessor(testConfig(true), provider)
	summary, err := proc.Run(context.Background(), inputPath, "Test Deck", outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Total != 0 {
		t.Errorf("summary.Total = %d, want 0", summary.Total)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("Expected deck file even for an empty word list: %v", err)
	}
}
