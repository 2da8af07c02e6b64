// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/tokengate/cmd/discovercmd"
	"github.com/luxfi/tokengate/cmd/feecmd"
	"github.com/luxfi/tokengate/cmd/simulatecmd"
	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	app *application.Gate

	Version  = "0.3.0"
	cfgFile  string
	logLevel string
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: constants.AppName,
		Long: `tokengate - transfer policy engine for launch-guarded fee tokens.

Every transfer is run through an ordered rule chain: infrastructure
exemption, standard exemption, trading gate, anti-snipe limits and the
time-varying buy fee.

COMMAND OVERVIEW:

  simulate    Replay a YAML scenario against a fresh token
  fee         Quote the fee for an amount and rate
  discover    Look up Uniswap V3 pools for the token

For detailed command help, use: tokengate <command> --help`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tokengate/tokengate.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("initializer", "", "account receiving the supply and owning the token")
	rootCmd.PersistentFlags().String("self", "", "the token's own account")
	rootCmd.PersistentFlags().String("fee-recipient", "", "account receiving buy fees (default: initializer)")
	rootCmd.PersistentFlags().String("rounding", "", "fee rounding mode: ceil or floor")

	rootCmd.AddCommand(simulatecmd.NewCmd(app))
	rootCmd.AddCommand(feecmd.NewCmd(app))
	rootCmd.AddCommand(discovercmd.NewCmd(app))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := initConfig(v); err != nil {
		return err
	}
	for key, flag := range map[string]string{
		config.KeyInitializer:  "initializer",
		config.KeySelf:         "self",
		config.KeyFeeRecipient: "fee-recipient",
		config.KeyRounding:     "rounding",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	level := v.GetString(config.KeyLogLevel)
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	log, err := setupLogging(level)
	if err != nil {
		return err
	}
	app.Setup(log, v)
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("config-file", used))
	}
	return nil
}

func setupLogging(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// User output goes to stdout, logs go to stderr
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed setting up logging: %w", err)
	}
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// initConfig reads in the config file if one is found.
// Priority: flags > env vars > config file > defaults
func initConfig(v *viper.Viper) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		v.AddConfigPath(filepath.Join(home, constants.BaseDirName))
		v.AddConfigPath(".")
		v.SetConfigType(constants.DefaultConfigFileType)
		v.SetConfigName(constants.DefaultConfigFileName)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed reading config: %w", err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if ux.Logger != nil {
			ux.Logger.PrintError("%s", err)
		} else {
			fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		}
		os.Exit(1)
	}
}
