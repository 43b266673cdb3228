package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Verbose bool
	CSV     bool

	// Provider flags
	APIKey   string
	Provider string
	Model    string

	// Deck content flags
	SourceLanguage string
	TargetLanguage string
	Proficiency    string

	// Retry flags
	MaxRetries int
	RetryDelay time.Duration
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider:       "openai",
		SourceLanguage: "Spanish",
		TargetLanguage: "English",
		Proficiency:    "Beginner",
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}
