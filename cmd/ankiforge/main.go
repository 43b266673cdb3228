package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/ankiforge/internal/cli"
	"codeberg.org/snonux/ankiforge/internal/config"
	"codeberg.org/snonux/ankiforge/internal/processor"
	"codeberg.org/snonux/ankiforge/internal/translate"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	generateCmd := cli.CreateGenerateCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	generateCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, flags)
	}
	rootCmd.AddCommand(generateCmd)

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cfg, err := config.Resolve(flags, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	defer logger.Sync()

	ctx := cmd.Context()

	provider, err := translate.NewProvider(ctx, &translate.ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	})
	if err != nil {
		return err
	}

	client := translate.New(provider, translate.Options{
		SourceLanguage: cfg.SourceLanguage,
		TargetLanguage: cfg.TargetLanguage,
		Proficiency:    cfg.Proficiency,
		Retry: translate.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.BaseDelay,
			MaxDelay:   30 * time.Second,
		},
	}, logger)

	proc := processor.New(cfg, client, logger)

	inputPath, deckName, outputPath := args[0], args[1], args[2]
	fmt.Printf("Generating deck '%s' (%s -> %s, %s level) via %s\n",
		deckName, cfg.SourceLanguage, cfg.TargetLanguage, cfg.Proficiency, provider.Name())

	if _, err := proc.Run(ctx, inputPath, deckName, outputPath); err != nil {
		return err
	}
	return nil
}

// newLogger builds the diagnostic logger: chatty in verbose mode,
// warnings only otherwise. Progress output stays on stdout either way.
func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
