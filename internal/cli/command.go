package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankiforge/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankiforge",
		Short: "Anki Flashcard Deck Generator",
		Long: `ankiforge turns a plain word list into an Anki flashcard deck.

For every word it asks a language-model API for a translation and an
example sentence at the requested proficiency level, then packages the
results into an importable .apkg file.

Examples:
  ankiforge generate words.txt "Spanish Vocabulary" spanish.apkg
  ankiforge generate words.txt "Spanish Vocabulary" cards.csv --csv
  ankiforge generate words.txt Vocab deck.apkg --proficiency Advanced -v`,
		Version: internal.Version,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is config.ini in the working directory or home)")

	return rootCmd
}

// CreateGenerateCommand creates the generate subcommand
func CreateGenerateCommand(flags *Flags) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate <input-file> <deck-name> <output-file>",
		Short: "Generate a flashcard deck from a word list",
		Long: `generate reads one word per line from the input file, fetches a
translation and an example sentence for each word, and writes the deck
to the output file. Words whose remote calls fail are skipped with a
diagnostic; a single failing word never aborts the run.`,
		Args: cobra.ExactArgs(3),
	}

	setupFlags(generateCmd, flags)

	return generateCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVar(&flags.APIKey, "api-key", "", "API key for the translation provider")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider (openai or gemini)")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model override (default depends on provider)")
	cmd.Flags().StringVar(&flags.SourceLanguage, "source-language", flags.SourceLanguage, "Language of the input words")
	cmd.Flags().StringVar(&flags.TargetLanguage, "target-language", flags.TargetLanguage, "Language to translate into")
	cmd.Flags().StringVar(&flags.Proficiency, "proficiency", flags.Proficiency, "Example sentence level: Beginner, Advanced or Expert")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Extra attempts after a rate-limited request")
	cmd.Flags().DurationVar(&flags.RetryDelay, "retry-delay", flags.RetryDelay, "Base backoff delay between retries (doubles each attempt)")
	cmd.Flags().BoolVar(&flags.CSV, "csv", false, "Write a CSV import file instead of an .apkg package")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Increase output verbosity")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("openai.api_key", cmd.Flags().Lookup("api-key"))
	viper.BindPFlag("settings.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("settings.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("settings.source_language", cmd.Flags().Lookup("source-language"))
	viper.BindPFlag("settings.target_language", cmd.Flags().Lookup("target-language"))
	viper.BindPFlag("settings.proficiency", cmd.Flags().Lookup("proficiency"))
	viper.BindPFlag("retry.max_attempts", cmd.Flags().Lookup("max-retries"))
	viper.BindPFlag("retry.base_delay", cmd.Flags().Lookup("retry-delay"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// Environment variables
	viper.SetEnvPrefix("ANKIFORGE")
	viper.AutomaticEnv()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("ini")
	} else {
		// Search config.ini in the working directory, then in home
		viper.SetConfigType("ini")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the provider API key from environment or config
func GetAPIKey(provider string) string {
	// First check environment variables
	switch provider {
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}
