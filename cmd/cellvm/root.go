package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/cellvm/internal/logger"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "CELLVM"
	// The config file name searched in the working directory, without extension.
	defaultConfigName = "cellvm"
)

// rootConfig holds the global flags.
type rootConfig struct {
	Verbose  bool
	Quiet    bool
	LogLevel string
	LogFile  string
	CfgFile  string
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	rootCmd := &cobra.Command{
		Use:   "cellvm",
		Short: "Run array scripts on a fixed-size simulated memory",
		Long: `cellvm interprets line-based array scripts against a fixed number of
integer cells. Arrays are carved out of the cells by a best-fit allocator and
every access is checked for bounds and liveness.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd, cfg); err != nil {
				return err
			}
			return initLogging(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output and logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress all output except program output and errors")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "Write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&cfg.CfgFile, "config", "", "Config file (default ./cellvm.{yaml,json,toml} if present)")

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newReplCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// initializeConfig reads the config file and CELLVM_* environment variables
// and applies them to every flag the user did not set.
func initializeConfig(cmd *cobra.Command, cfg *rootConfig) error {
	v := viper.New()

	if cfg.CfgFile != "" {
		v.SetConfigFile(cfg.CfgFile)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
	}

	// A missing default config file is fine; an explicit one must exist and parse.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// bindFlags applies each viper value to its cobra flag unless the flag was
// set on the command line. Dashed flags are bound to underscored variables,
// e.g. --log-level to CELLVM_LOG_LEVEL.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if strings.Contains(f.Name, "-") {
			envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, envVar); err != nil {
				bindErr = err
				return
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				bindErr = fmt.Errorf("flag --%s: %w", f.Name, err)
			}
		}
	})
	return bindErr
}

func initLogging(cmd *cobra.Command, cfg *rootConfig) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", cfg.LogLevel)
	}
	return logger.Init(logger.Options{
		Enabled: cfg.LogFile != "" || (cfg.Verbose && !cfg.Quiet),
		File:    cfg.LogFile,
		Level:   level,
		Stderr:  cmd.ErrOrStderr(),
	})
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func (c *rootConfig) printInfo(w io.Writer, format string, args ...any) {
	if !c.Quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func (c *rootConfig) printVerbose(w io.Writer, format string, args ...any) {
	if c.Verbose && !c.Quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printError prints an error message
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Error: "+format, args...)
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
