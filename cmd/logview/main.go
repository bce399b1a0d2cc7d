// Package main provides the CLI entry point for logview, which routes lines
// read from stdin to the viewers described by a setup file.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/logview/log"
	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
	"go.jacobcolvin.com/logview/setup"
	"go.jacobcolvin.com/logview/view/builtin"
	"go.jacobcolvin.com/logview/view/console"
	"go.jacobcolvin.com/logview/view/window"
)

type options struct {
	level string
	topic string
}

func main() {
	logCfg := log.NewConfig()
	setupCfg := setup.NewConfig()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "logview [flags]",
		Short: "Route log lines to viewers",
		Long: `logview reads lines from stdin and routes each one to the viewers
described by a setup file. A line is either plain text or a YAML/JSON
mapping with msg, level and topic keys. Without views in the setup file,
lines are written to the console.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.InOrStdin(), logCfg, setupCfg, opts)
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	setupCfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&opts.level, "level", "", "level of plain text lines (default: the setup default level)")
	rootCmd.Flags().StringVar(&opts.topic, "topic", "", "topic of plain text lines (default: the setup default topic)")

	for _, register := range []func(*cobra.Command) error{logCfg.RegisterCompletions, setupCfg.RegisterCompletions} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of setup files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printSchema(cmd.OutOrStdout())
		},
	})

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, logCfg *log.Config, setupCfg *setup.Config, opts *options) error {
	diag, closeDiag, err := logCfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	s, err := setupCfg.Load()
	if err != nil {
		return errors.Join(err, closeDiag())
	}

	lc := logger.New(
		logger.WithFactories(builtin.Factories(openTTY)),
		logger.WithLogger(diag),
	)

	if len(s.Views) == 0 {
		s.Views = []setup.View{{ID: "console", Type: console.Kind}}
	}

	err = s.Apply(lc, nil)
	if err != nil {
		return errors.Join(fmt.Errorf("apply setup: %w", err), lc.Close(), closeDiag())
	}

	pumpErr := pump(in, lc, opts.level, opts.topic)

	return errors.Join(pumpErr, lc.Close(), closeDiag())
}

// pump dispatches every line of r. Plain text lines get level and topic;
// empty values leave the context defaults in charge.
func pump(r io.Reader, lc *logger.Context, level, topic string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		lc.Dispatch(parseLine(line, level, topic))
	}

	err := sc.Err()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

// line is a structured input line.
type line struct {
	Msg   *string `yaml:"msg"`
	Level string  `yaml:"level"`
	Topic string  `yaml:"topic"`
}

// parseLine decodes a YAML or JSON mapping carrying a msg key. Anything
// else is a plain text message.
func parseLine(text, level, topic string) logger.Entry {
	var l line

	err := yaml.Unmarshal([]byte(text), &l)
	if err == nil && l.Msg != nil {
		return logger.Entry{Msg: *l.Msg, Level: l.Level, Topic: l.Topic}
	}

	return logger.Entry{Msg: text, Level: level, Topic: topic}
}

// openTTY opens window surfaces on the controlling terminal, since stdin
// carries the input lines.
func openTTY() (page.Surface, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", window.ErrNoTerminal, err)
	}

	s, err := window.Terminal{In: tty, Out: tty, Title: "logview", CloseFiles: true}.Open()
	if err != nil {
		return nil, errors.Join(err, tty.Close())
	}

	return s, nil
}

func printSchema(w io.Writer) error {
	s, err := setup.Schema()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}
