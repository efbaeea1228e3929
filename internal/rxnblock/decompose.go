// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rxnblock

import (
	"errors"
	"fmt"

	"github.com/mwalton/rdfkit/internal/chem"
	"github.com/mwalton/rdfkit/internal/ctab"
	"github.com/mwalton/rdfkit/pkg/types"
)

// ErrInvalidReaction reports a record whose structures the structure parser
// failed to interpret entirely.
var ErrInvalidReaction = errors.New("no structure in the reaction could be interpreted")

// Options configures decomposition. The zero value selects the CTF reaction
// header layout, the default field table, the built-in structure parser,
// and strict handling of invalid structures.
type Options struct {
	// HeaderFormat is the format string for the reaction header line.
	// Empty selects ctab.RxnHeaderFormat.
	HeaderFormat string

	// Fields maps format letters to field specs. Nil selects
	// ctab.DefaultFieldTable().
	Fields ctab.FieldTable

	// Parser interprets structure blocks. Nil selects chem.NewTableParser().
	Parser chem.Parser

	// SkipInvalidMolecules drops rejected structures from their list
	// instead of failing the reaction.
	SkipInvalidMolecules bool

	// SkipProperties leaves the property stream unscanned.
	SkipProperties bool

	// StrictDates propagates date-time synthesis failures.
	StrictDates bool
}

func (o Options) withDefaults() Options {
	if o.HeaderFormat == "" {
		o.HeaderFormat = ctab.RxnHeaderFormat
	}
	if o.Fields == nil {
		o.Fields = ctab.DefaultFieldTable()
	}
	if o.Parser == nil {
		o.Parser = chem.NewTableParser()
	}
	return o
}

// Decompose builds a complete Reaction from one raw reaction block: header
// metadata, reactant and product structure blocks, property stream, and a
// final interpretation check through the structure parser. The block must
// begin with the $RXN marker.
func Decompose(block, id string, lineno int, file *types.FileMetadata, opts Options) (*types.Reaction, error) {
	opts = opts.withDefaults()

	if err := Validate(block); err != nil {
		return nil, err
	}

	md, err := Metadata(block, opts.HeaderFormat, opts.Fields, opts.StrictDates)
	if err != nil {
		return nil, err
	}

	rxn := &types.Reaction{
		ID:         id,
		LineNo:     lineno,
		File:       file,
		Metadata:   md,
		Properties: make(map[string]string),
	}

	reactants, products, err := MolBlocks(block, md.Int("reactant_count"), md.Int("product_count"))
	if err != nil {
		return nil, err
	}
	for _, text := range reactants {
		rxn.Reactants = append(rxn.Reactants, &types.StructureBlock{Text: text, Role: types.RoleReactant})
	}
	for _, text := range products {
		rxn.Products = append(rxn.Products, &types.StructureBlock{Text: text, Role: types.RoleProduct})
	}

	if !opts.SkipProperties {
		scanner := NewPropertyScanner(block)
		for scanner.Scan() {
			prop := scanner.Property()
			if prop.Structure != nil {
				if err := rxn.AddReagent(prop.Structure); err != nil {
					return nil, err
				}
				continue
			}
			// A name that sanitized to nothing has no usable key; dropping
			// the pair keeps empty-string fields out of downstream output.
			if prop.Key == "" {
				continue
			}
			rxn.Properties[prop.Key] = prop.Value
		}
	}

	if err := interpret(rxn, opts); err != nil {
		return nil, err
	}
	return rxn, nil
}

// interpret runs every structure through the parser, filling canonical
// strings. A rejected structure fails the reaction, or is dropped from its
// list under SkipInvalidMolecules. A record where nothing at all can be
// interpreted fails regardless; a partially populated reaction is never
// returned silently.
func interpret(rxn *types.Reaction, opts Options) error {
	total, parsed := 0, 0

	check := func(blocks []*types.StructureBlock) ([]*types.StructureBlock, error) {
		kept := blocks[:0]
		for _, b := range blocks {
			total++
			s, err := opts.Parser.ParseStructure(b.Text)
			if err != nil {
				if opts.SkipInvalidMolecules {
					continue
				}
				return nil, fmt.Errorf("%s structure: %w", b.Role, err)
			}
			parsed++
			if canonical, ok := opts.Parser.CanonicalString(s); ok {
				b.Canonical = canonical
			}
			kept = append(kept, b)
		}
		return kept, nil
	}

	var err error
	for _, list := range []*[]*types.StructureBlock{
		&rxn.Reactants, &rxn.Products, &rxn.Catalysts, &rxn.Solvents, &rxn.OtherReagents,
	} {
		if *list, err = check(*list); err != nil {
			return err
		}
	}

	if total > 0 && parsed == 0 {
		return ErrInvalidReaction
	}
	return nil
}
