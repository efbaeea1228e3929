// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwalton/rdfkit/internal/fetch"
	"github.com/mwalton/rdfkit/internal/rdfile"
)

var splitCmd = &cobra.Command{
	Use:   "split <file.rdf|url>",
	Short: "Rewrite selected records into a new container",
	Long: `Split copies records out of a container into a new RDF file with a
fresh header. Records are selected by registry id with --ids; without it
every record is copied. With --renumber the output gets sequential
zero-padded ids instead of the source ids.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("out", "", "output file (required)")
	splitCmd.Flags().StringSlice("ids", nil, "registry ids to copy")
	splitCmd.Flags().Bool("renumber", false, "assign sequential ids in the output")
	splitCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	ids, _ := cmd.Flags().GetStringSlice("ids")
	renumber, _ := cmd.Flags().GetBool("renumber")

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	f, err := fetch.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reader := rdfile.NewReader(f, parserConfig(cmd))

	var blocks, outIDs []string
	for {
		raw, err := reader.NextRaw()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(wanted) > 0 && !wanted[raw.ID] {
			continue
		}
		blocks = append(blocks, raw.Block)
		outIDs = append(outIDs, raw.ID)
	}

	if len(blocks) == 0 {
		return fmt.Errorf("no matching records in %s", args[0])
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if renumber {
		outIDs = nil
	}
	if err := rdfile.Write(out, blocks, outIDs); err != nil {
		return err
	}
	fmt.Printf("wrote %d record(s) to %s\n", len(blocks), outPath)
	return nil
}
