// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwalton/rdfkit/internal/fetch"
	"github.com/mwalton/rdfkit/internal/rdfile"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.rdf|url>",
	Short: "Summarize an RDF container",
	Long: `Info reads the whole container in tolerant mode and reports its
header metadata plus record and failure counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := fetch.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	cfg := parserConfig(cmd)
	cfg.SkipInvalidReactions = true
	reader := rdfile.NewReader(f, cfg)

	parsed, failed := 0, 0
	for {
		rxn, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if rxn == nil {
			failed++
		} else {
			parsed++
		}
	}

	meta := reader.Metadata()
	fmt.Printf("file:       %s\n", args[0])
	fmt.Printf("version:    %s\n", meta.Version)
	fmt.Printf("date stamp: %s\n", meta.DateStamp)
	fmt.Printf("records:    %d\n", parsed+failed)
	if failed > 0 {
		fmt.Printf("unparsable: %d\n", failed)
	}
	return nil
}
