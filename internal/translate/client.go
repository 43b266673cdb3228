package translate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// requestTimeout bounds a single remote call including transport time
const requestTimeout = 30 * time.Second

// Options configures a Client
type Options struct {
	SourceLanguage string
	TargetLanguage string
	Proficiency    string
	Retry          RetryPolicy
}

// Result holds what the remote service produced for one word
type Result struct {
	Word        string
	Translation string
	// Example is the example sentence in the source language
	Example string
	// ExampleTranslation is the target-language rendering of Example,
	// extracted from the trailing parentheses of the model reply
	ExampleTranslation string
}

// Client wraps a Provider with retry, backoff and a circuit breaker
type Client struct {
	provider Provider
	opts     Options
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger

	// replaced in tests to avoid real backoff sleeps
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a new translation client
func New(provider Provider, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    fmt.Sprintf("translate-%s", provider.Name()),
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Rate limits have their own backoff and bad input is the
		// caller's problem; only hard service errors may trip.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrRateLimited) ||
				errors.Is(err, ErrInvalidInput)
		},
	})

	return &Client{
		provider: provider,
		opts:     opts,
		breaker:  breaker,
		logger:   logger,
		sleep:    sleep,
	}
}

// Translate asks the provider for a target-language translation of word
func (c *Client) Translate(ctx context.Context, word string) (string, error) {
	if strings.TrimSpace(word) == "" {
		return "", fmt.Errorf("%w: empty word", ErrInvalidInput)
	}

	prompt := fmt.Sprintf(
		"Translate the %s word '%s' to %s. Respond with only the %s translation, nothing else.",
		c.opts.SourceLanguage, word, c.opts.TargetLanguage, c.opts.TargetLanguage)

	return c.complete(ctx, word, prompt)
}

// ExampleSentence asks the provider for an example sentence using word,
// returning the source-language sentence and its target-language
// rendering. The second value is empty when the model reply carried no
// parenthesized translation.
func (c *Client) ExampleSentence(ctx context.Context, word string) (string, string, error) {
	if strings.TrimSpace(word) == "" {
		return "", "", fmt.Errorf("%w: empty word", ErrInvalidInput)
	}

	prompt := fmt.Sprintf(
		"Generate an example sentence for the word '%s' in %s. "+
			"The sentence should be appropriate for %s-level learners studying %s. "+
			"The format must be: '%s sentence. (%s sentence)'.",
		word, c.opts.SourceLanguage,
		c.opts.Proficiency, c.opts.SourceLanguage,
		c.opts.SourceLanguage, c.opts.TargetLanguage)

	raw, err := c.complete(ctx, word, prompt)
	if err != nil {
		return "", "", err
	}

	example, exampleTranslation := SplitExample(raw)
	return example, exampleTranslation, nil
}

// complete runs one prompt through the provider, retrying rate-limited
// attempts per the retry policy
func (c *Client) complete(ctx context.Context, word, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.opts.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.opts.Retry.Delay(attempt - 1)
			c.logger.Debug("rate limited, backing off",
				zap.String("word", word),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			if err := c.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("%w: %v", ErrService, err)
			}
		}

		reply, err := c.execute(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("rate limit retries exhausted after %d attempts: %w",
		c.opts.Retry.MaxRetries+1, lastErr)
}

// execute performs a single attempt through the circuit breaker
func (c *Client) execute(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply, err := c.breaker.Execute(func() (interface{}, error) {
		return c.provider.Complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit breaker open", ErrService)
		}
		return "", err
	}

	return reply.(string), nil
}

var exampleTranslationRe = regexp.MustCompile(`\(([^)]+)\)`)

// SplitExample splits a model reply of the form "Sentence. (Translation.)"
// into its source sentence and parenthesized translation. Replies without
// parentheses come back whole with an empty translation.
func SplitExample(raw string) (string, string) {
	match := exampleTranslationRe.FindStringSubmatch(raw)
	if match == nil {
		return strings.TrimSpace(raw), ""
	}

	sentence := strings.TrimSpace(strings.SplitN(raw, "(", 2)[0])
	return sentence, strings.TrimSpace(match[1])
}
