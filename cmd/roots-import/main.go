// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the roots-import CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/roots-import/internal/config"
	"github.com/pdiddy/roots-import/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose bool
	logger  *zap.Logger
)

// rootCmd is the base command for the roots-import CLI.
var rootCmd = &cobra.Command{
	Use:   "roots-import",
	Short: "Import word-to-root morphology corpora into a relational store",
	Long: `roots-import reads a corpus that attributes morphological roots to words
and stores every (word, root, index) triple in a SQLite database, tagged with
a per-run quality label.

Two line formats are supported:

  morphemes  word<TAB>text:TAG/text:TAG/...   (one record per ROOT morpheme)
  psql       root | {word,word,...}           (one record per word, index -1)

Settings come from flags, a roots-import.yaml config file, or ROOTS_*
environment variables, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./roots-import.yaml or ~/.config/roots-import/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including database errors for duplicate keys")
	rootCmd.PersistentFlags().String(config.KeyDatabase, "", "SQLite database path (default roots.db, env ROOTS_DATABASE)")
	viper.BindPFlag(config.KeyDatabase, rootCmd.PersistentFlags().Lookup(config.KeyDatabase))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("roots-import")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "roots-import"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openStore resolves the database settings and opens the store.
func openStore() (*store.Store, error) {
	cfg, err := config.LoadStore(viper.GetViper(), os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
