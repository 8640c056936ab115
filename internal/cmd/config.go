package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/egypt/internal/config"
	"github.com/Iron-Ham/egypt/internal/errors"
)

// configKeys lists the keys `config set` accepts and their value types.
var configKeys = map[string]string{
	"decompose.limit":     "int",
	"decompose.merge":     "bool",
	"decompose.reverse":   "bool",
	"decompose.bisect":    "bool",
	"decompose.raw":       "bool",
	"output.format":       "string",
	"output.silent":       "bool",
	"output.stats":        "bool",
	"batch.workers":       "int",
	"batch.chunk_size":    "int",
	"logging.level":       "string",
	"logging.file":        "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
	"logging.compress":    "bool",
}

func newConfigCommand(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify egypt configuration",
		Long: `View or modify egypt configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
		Args: cobra.NoArgs,
		RunE: a.runConfigShow,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigShow,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Keys use dot notation, e.g.:
  egypt config set decompose.limit 16
  egypt config set decompose.merge true
  egypt config set output.format pretty

Valid keys:
  decompose.limit     - Longest run kept before bisection (min 2)
  decompose.merge     - Coalesce spans summing to a unit fraction (true/false)
  decompose.reverse   - Merge from the largest denominator (true/false)
  decompose.bisect    - Bisect raw output (true/false)
  decompose.raw       - Print symbolic terms (true/false)
  output.format       - Options: ` + strings.Join(config.ValidOutputFormats(), ", ") + `
  output.silent       - Suppress results (true/false)
  output.stats        - Include pipeline statistics (true/false)
  batch.workers       - Concurrent batch decompositions (0 = one per CPU)
  batch.chunk_size    - Lines decomposed between flushes
  logging.level       - Options: ` + strings.Join(config.ValidLogLevels(), ", ") + `
  logging.file        - Log file path (empty for stderr)
  logging.max_size_mb - Log file size that triggers rotation
  logging.max_backups - Rotated log files to keep
  logging.compress    - Gzip rotated log files (true/false)`,
		Args: cobra.ExactArgs(2),
		RunE: a.runConfigSet,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a default config file at ~/.config/egypt/config.yaml, or at --config when given.`,
		Args:  cobra.NoArgs,
		// The file does not exist yet, so there is nothing to read
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              a.runConfigInit,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigPath,
	})

	return configCmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	out := cmd.OutOrStdout()
	// Show where config is being read from
	if used := a.v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}
	_, err = out.Write(data)
	return err
}

func (a *app) runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	value := args[1]

	keyType, ok := configKeys[key]
	if !ok {
		return errors.NewValidationError("unknown configuration key; run 'egypt config set --help' to see valid keys").
			WithField("key").
			WithValue(args[0])
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewValidationError("expected true or false").WithField(key).WithValue(value)
		}
		typedValue = b
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewValidationError("expected an integer").WithField(key).WithValue(value)
		}
		typedValue = n
	}

	a.v.Set(key, typedValue)
	if _, err := config.Load(a.v); err != nil {
		return err
	}

	configFile := a.v.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := a.v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

func (a *app) runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := a.cfgFile
	if configFile == "" {
		configFile = config.ConfigFile()
	}

	if err := config.Default().WriteFile(configFile); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.NewValidationError("config file already exists; use 'egypt config set' to modify values").
				WithField("config").
				WithValue(configFile)
		}
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize egypt's defaults.")
	return nil
}

func (a *app) runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := a.v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: EGYPT_* (e.g., EGYPT_DECOMPOSE_LIMIT)")
	return nil
}
