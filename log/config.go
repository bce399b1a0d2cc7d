package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags names the CLI flags of a [Config]. An empty File leaves the file
// flag unregistered.
type Flags struct {
	Level  string
	Format string
	File   string
}

// NewConfig creates a [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Level:  string(LevelWarn),
		Format: string(FormatText),
		Flags:  f,
	}
}

// Config holds the flag values for logview's own diagnostics: viewers
// added or replaced, window surfaces failing to open, stylesheets failing
// to load. These are separate from the messages routed to viewers, so the
// default level is warn.
//
// Create instances with [NewConfig], register flags with
// [Config.RegisterFlags] and build the logger with [Config.NewLogger].
type Config struct {
	Level  string
	Format string
	// File receives diagnostics instead of the fallback writer. Set it when
	// a window viewer owns the terminal.
	File  string
	Flags Flags
}

// NewConfig returns a [Config] with the flags --log-level, --log-format
// and --log-file.
func NewConfig() *Config {
	f := Flags{
		Level:  "log-level",
		Format: "log-format",
		File:   "log-file",
	}

	return f.NewConfig()
}

// RegisterFlags adds the diagnostics flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("minimum level of logview diagnostics, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		fmt.Sprintf("format of logview diagnostics, one of: %s", GetAllFormatStrings()))

	if c.Flags.File != "" {
		flags.StringVar(&c.File, c.Flags.File, c.File,
			"append logview diagnostics to this file instead of stderr")
	}
}

// RegisterCompletions registers shell completions for the flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	if c.Flags.File == "" {
		return nil
	}

	err = cmd.MarkFlagFilename(c.Flags.File)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	return nil
}

// NewHandler creates a handler writing to w from the stored level and
// format. File is ignored.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}

// NewLogger creates the diagnostics logger. It writes to File when set and
// to fallback otherwise. The returned close function releases the file and
// is safe to call when no file was opened.
func (c *Config) NewLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	if c.File == "" {
		h, err := c.NewHandler(fallback)
		if err != nil {
			return nil, nil, err
		}

		return slog.New(h), func() error { return nil }, nil
	}

	//nolint:gosec // Diagnostics path comes from a CLI flag.
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open diagnostics file: %w", err)
	}

	h, err := c.NewHandler(f)
	if err != nil {
		closeErr := f.Close()
		if closeErr != nil {
			return nil, nil, fmt.Errorf("%w (closing %s: %w)", err, c.File, closeErr)
		}

		return nil, nil, err
	}

	return slog.New(h), f.Close, nil
}
