package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/ankiforge/internal/cli"
)

// Provider names accepted by the settings
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Proficiency levels accepted for example sentence generation
const (
	ProficiencyBeginner = "Beginner"
	ProficiencyAdvanced = "Advanced"
	ProficiencyExpert   = "Expert"
)

// Default models per provider, used when neither flag nor config set one
const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.5-flash"
)

// Config is the effective, immutable run configuration after merging
// built-in defaults, config file values and explicit command-line flags.
type Config struct {
	APIKey   string
	Provider string
	Model    string

	SourceLanguage string
	TargetLanguage string
	Proficiency    string

	MaxRetries int
	BaseDelay  time.Duration

	Verbose bool
	CSV     bool
}

// Resolve merges flag values with config file values into a validated
// Config. Precedence: explicit flag > config file > built-in default.
// flagChanged reports whether the named flag was set on the command line.
func Resolve(flags *cli.Flags, flagChanged func(string) bool) (*Config, error) {
	cfg := &Config{
		APIKey:         flags.APIKey,
		Provider:       flags.Provider,
		Model:          flags.Model,
		SourceLanguage: flags.SourceLanguage,
		TargetLanguage: flags.TargetLanguage,
		Proficiency:    flags.Proficiency,
		MaxRetries:     flags.MaxRetries,
		BaseDelay:      flags.RetryDelay,
		Verbose:        flags.Verbose,
		CSV:            flags.CSV,
	}

	// Config file values apply only where the flag was left at its default
	if !flagChanged("provider") && viper.IsSet("settings.provider") {
		cfg.Provider = viper.GetString("settings.provider")
	}
	if !flagChanged("model") && viper.IsSet("settings.model") {
		cfg.Model = viper.GetString("settings.model")
	}
	if !flagChanged("source-language") && viper.IsSet("settings.source_language") {
		cfg.SourceLanguage = viper.GetString("settings.source_language")
	}
	if !flagChanged("target-language") && viper.IsSet("settings.target_language") {
		cfg.TargetLanguage = viper.GetString("settings.target_language")
	}
	if !flagChanged("proficiency") && viper.IsSet("settings.proficiency") {
		cfg.Proficiency = viper.GetString("settings.proficiency")
	}
	if !flagChanged("max-retries") && viper.IsSet("retry.max_attempts") {
		cfg.MaxRetries = viper.GetInt("retry.max_attempts")
	}
	if !flagChanged("retry-delay") && viper.IsSet("retry.base_delay") {
		cfg.BaseDelay = viper.GetDuration("retry.base_delay")
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if cfg.APIKey == "" {
		cfg.APIKey = cli.GetAPIKey(cfg.Provider)
	}

	if cfg.Model == "" {
		switch cfg.Provider {
		case ProviderGemini:
			cfg.Model = defaultGeminiModel
		default:
			cfg.Model = defaultOpenAIModel
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (supported: openai, gemini)", c.Provider)
	}

	proficiency, err := CanonicalProficiency(c.Proficiency)
	if err != nil {
		return err
	}
	c.Proficiency = proficiency

	if c.APIKey == "" {
		return fmt.Errorf("API key is required (use --api-key, the config file, or the environment)")
	}
	if c.SourceLanguage == "" || c.TargetLanguage == "" {
		return fmt.Errorf("source and target languages must not be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("retry base delay must be positive, got %v", c.BaseDelay)
	}

	return nil
}

// CanonicalProficiency normalizes a proficiency label, accepting any
// casing of the known levels.
func CanonicalProficiency(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return ProficiencyBeginner, nil
	case "advanced":
		return ProficiencyAdvanced, nil
	case "expert":
		return ProficiencyExpert, nil
	default:
		return "", fmt.Errorf("unknown proficiency %q (supported: Beginner, Advanced, Expert)", s)
	}
}
