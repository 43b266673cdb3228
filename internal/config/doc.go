// Package config merges command-line flags, config file values and
// built-in defaults into the effective run configuration. Explicit flags
// win over the config file, which wins over the defaults. The result is
// a plain value that is never mutated after Resolve returns.
package config
