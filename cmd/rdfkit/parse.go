// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mwalton/rdfkit/internal/fetch"
	"github.com/mwalton/rdfkit/internal/rdfile"
	"github.com/mwalton/rdfkit/internal/rxnblock"
	"github.com/mwalton/rdfkit/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.rdf|url>",
	Short: "Stream reaction records from an RDF container",
	Long: `Parse reads an RDF container, from a local file or an http(s) URL,
and writes one structured record per reaction to stdout. With --skip-invalid,
records that fail to parse appear as skipped markers instead of aborting the
stream.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	parseCmd.Flags().Int("max", 0, "stop after N records (0 means all)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	max, _ := cmd.Flags().GetInt("max")

	f, err := fetch.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reader := rdfile.NewReader(f, parserConfig(cmd))

	var views []recordView
	skipped := 0
	for max <= 0 || len(views)+skipped < max {
		rxn, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if rxn == nil {
			skipped++
			continue
		}
		views = append(views, newRecordView(rxn))
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			return err
		}
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(views); err != nil {
			return err
		}
	case "table":
		writeTable(views, os.Stdout)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "%d record(s) skipped\n", skipped)
	}
	return nil
}

// recordView is the flattened output shape of one reaction record.
type recordView struct {
	ID         string            `json:"id" yaml:"id"`
	Line       int               `json:"line" yaml:"line"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Registry   string            `json:"registry_number,omitempty" yaml:"registry_number,omitempty"`
	DateTime   string            `json:"date_time,omitempty" yaml:"date_time,omitempty"`
	Reactants  int               `json:"reactants" yaml:"reactants"`
	Products   int               `json:"products" yaml:"products"`
	Reagents   int               `json:"reagents" yaml:"reagents"`
	Equation   string            `json:"equation,omitempty" yaml:"equation,omitempty"`
	Yield      *float64          `json:"yield,omitempty" yaml:"yield,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func newRecordView(rxn *types.Reaction) recordView {
	v := recordView{
		ID:         rxn.ID,
		Line:       rxn.LineNo,
		Name:       rxn.Metadata.String("reaction_name"),
		Registry:   rxn.Metadata.String("registry_number"),
		Reactants:  len(rxn.Reactants),
		Products:   len(rxn.Products),
		Reagents:   len(rxn.Reagents()),
		Equation:   rxn.Equation(),
		Properties: rxn.Properties,
	}
	if t, ok := rxn.Metadata.Time(types.DateTimeKey); ok {
		v.DateTime = t.Format(time.RFC3339)
	}
	for _, key := range sortedKeys(rxn.Properties) {
		if strings.Contains(key, "yield") {
			if y, ok := rxnblock.ParseYield(rxn.Properties[key]); ok {
				v.Yield = &y
				break
			}
		}
	}
	return v
}

func writeTable(views []recordView, w io.Writer) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No records parsed.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-6s  %-30s  %-4s  %-4s  %-4s  %s\n",
		"ID", "Line", "Name", "R", "P", "Rgt", "Equation")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, v := range views {
		name := v.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		eq := v.Equation
		if len(eq) > 30 {
			eq = eq[:27] + "..."
		}
		fmt.Fprintf(w, "%-10s  %-6d  %-30s  %-4d  %-4d  %-4d  %s\n",
			v.ID, v.Line, name, v.Reactants, v.Products, v.Reagents, eq)
	}
	fmt.Fprintf(w, "\n%d records\n", len(views))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
