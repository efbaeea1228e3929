// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rdfkit CLI, a toolkit for
// streaming reaction records out of RDF container files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwalton/rdfkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rdfkit CLI.
var rootCmd = &cobra.Command{
	Use:   "rdfkit",
	Short: "Parse, inspect, and index RDF reaction files",
	Long: `rdfkit streams reaction records out of RDF container files (the
Chemical Table File family: RDF containers, RXN reaction blocks, MOL
structure blocks) and exposes them as structured records.

Each operation is a subcommand: parse streams records to stdout, info
summarizes a container, split rewrites selected records into a new
container, and index loads records into a SQLite database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rdfkit.yaml or ~/.config/rdfkit/config.yaml)")
	rootCmd.PersistentFlags().String("header-format", "", "reaction header layout: ctf or spresi")
	rootCmd.PersistentFlags().Bool("skip-invalid", false, "skip records that fail to parse instead of aborting")
	rootCmd.PersistentFlags().Bool("skip-invalid-molecules", false, "drop structures the structure parser rejects")
	rootCmd.PersistentFlags().Bool("strict-dates", false, "fail records with out-of-range header dates")
	rootCmd.PersistentFlags().Bool("no-properties", false, "skip the trailing property stream")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rdfkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rdfkit"))
		}
	}

	viper.SetEnvPrefix("RDFKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// parserConfig builds the parsing settings from flags with config-file
// values as the fallback layer.
func parserConfig(cmd *cobra.Command) types.ParserConfig {
	cfg := types.DefaultParserConfig()

	if v := viper.GetString("parser.header_format"); v != "" {
		cfg.HeaderFormat = types.HeaderFormat(v)
	}
	if viper.IsSet("parser.skip_invalid_reactions") {
		cfg.SkipInvalidReactions = viper.GetBool("parser.skip_invalid_reactions")
	}
	if viper.IsSet("parser.skip_invalid_molecules") {
		cfg.SkipInvalidMolecules = viper.GetBool("parser.skip_invalid_molecules")
	}

	if v, _ := cmd.Flags().GetString("header-format"); v != "" {
		cfg.HeaderFormat = types.HeaderFormat(v)
	}
	if v, _ := cmd.Flags().GetBool("skip-invalid"); v {
		cfg.SkipInvalidReactions = true
	}
	if v, _ := cmd.Flags().GetBool("skip-invalid-molecules"); v {
		cfg.SkipInvalidMolecules = true
	}
	if v, _ := cmd.Flags().GetBool("strict-dates"); v {
		cfg.StrictDates = true
	}
	if v, _ := cmd.Flags().GetBool("no-properties"); v {
		cfg.ParseProperties = false
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
