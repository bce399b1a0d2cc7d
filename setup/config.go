package setup

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags names the CLI flags of a [Config].
type Flags struct {
	File string
}

// NewConfig creates a [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds the setup file flag value.
type Config struct {
	File  string
	Flags Flags
}

// NewConfig returns a [Config] with the flag name --setup.
func NewConfig() *Config {
	return Flags{File: "setup"}.NewConfig()
}

// RegisterFlags adds the setup flag to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.File, c.Flags.File, c.File, "path to a YAML setup file")
}

// RegisterCompletions restricts completion of the setup flag to YAML files.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.MarkFlagFilename(c.Flags.File, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	return nil
}

// Load returns the configured setup, or an empty [Setup] when no file was
// given.
func (c *Config) Load() (*Setup, error) {
	if c.File == "" {
		return &Setup{}, nil
	}

	return Load(c.File)
}
