// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwalton/rdfkit/internal/fetch"
	"github.com/mwalton/rdfkit/internal/rdfile"
	"github.com/mwalton/rdfkit/internal/store"
)

const defaultDatabase = "rdfkit.db"

var indexCmd = &cobra.Command{
	Use:   "index <file.rdf|url>",
	Short: "Load parsed records into a SQLite index",
	Long: `Index parses a container in tolerant mode and inserts every record
into a SQLite database: one row per reaction plus its molecules and
properties. Records that fail to parse are counted and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("db", "", "SQLite database file (default rdfkit.db)")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("index.database_path")
	}
	if dbPath == "" {
		dbPath = defaultDatabase
	}

	f, err := fetch.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	cfg := parserConfig(cmd)
	cfg.SkipInvalidReactions = true
	reactions, err := rdfile.NewReader(f, cfg).ReadAll()
	if err != nil {
		return err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if _, err := s.Load(ctx, reactions, os.Stdout); err != nil {
		return err
	}

	nr, nm, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("database %s now holds %d reactions and %d molecules\n", dbPath, nr, nm)
	return nil
}
