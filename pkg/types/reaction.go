// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Role classifies a structure block by its function in a reaction.
type Role string

const (
	RoleReactant     Role = "reactant"
	RoleProduct      Role = "product"
	RoleCatalyst     Role = "catalyst"
	RoleSolvent      Role = "solvent"
	RoleOtherReagent Role = "other_reagent"
	RoleUntagged     Role = "untagged"
)

// StructureBlock is one chemical-structure sub-record: the opaque block text
// plus the role it plays in its reaction. Canonical is filled in during
// reaction validation when the structure parser can interpret the block;
// header metadata is extracted on demand, not stored here.
type StructureBlock struct {
	Text      string `json:"text" yaml:"text"`
	Role      Role   `json:"role" yaml:"role"`
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

// FileMetadata holds the container-level header fields, parsed once per file
// and shared read-only across every reaction from one reader.
type FileMetadata struct {
	Version   string `json:"version" yaml:"version"`
	DateStamp string `json:"date_stamp" yaml:"date_stamp"`
}

// Reaction is one reaction record: identity, provenance, header metadata,
// role-partitioned structures, and the trailing key/value properties.
// A Reaction is constructed atomically from one raw block and is not
// modified afterwards.
type Reaction struct {
	// ID is the registry id from the container delimiter line; may be empty.
	ID string `json:"id" yaml:"id"`

	// LineNo is the line number in the container file where the record starts.
	LineNo int `json:"line_no" yaml:"line_no"`

	// File points at the shared container metadata.
	File *FileMetadata `json:"file,omitempty" yaml:"file,omitempty"`

	// Metadata holds the decoded 5-line reaction header.
	Metadata *Metadata `json:"metadata" yaml:"metadata"`

	Reactants []*StructureBlock `json:"reactants" yaml:"reactants"`
	Products  []*StructureBlock `json:"products" yaml:"products"`

	Catalysts     []*StructureBlock `json:"catalysts,omitempty" yaml:"catalysts,omitempty"`
	Solvents      []*StructureBlock `json:"solvents,omitempty" yaml:"solvents,omitempty"`
	OtherReagents []*StructureBlock `json:"other_reagents,omitempty" yaml:"other_reagents,omitempty"`

	// Properties maps sanitized property keys to plain-text values.
	// Structure-valued properties land in the reagent lists instead.
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// AddReagent appends s to the reagent list matching role. The dispatch is a
// fixed role table; unknown roles are rejected rather than guessed.
func (r *Reaction) AddReagent(s *StructureBlock) error {
	switch s.Role {
	case RoleCatalyst:
		r.Catalysts = append(r.Catalysts, s)
	case RoleSolvent:
		r.Solvents = append(r.Solvents, s)
	case RoleOtherReagent:
		r.OtherReagents = append(r.OtherReagents, s)
	default:
		return fmt.Errorf("no reagent list for role %q", s.Role)
	}
	return nil
}

// Reagents returns catalysts, solvents, and other reagents as one list,
// in that order.
func (r *Reaction) Reagents() []*StructureBlock {
	out := make([]*StructureBlock, 0, len(r.Catalysts)+len(r.Solvents)+len(r.OtherReagents))
	out = append(out, r.Catalysts...)
	out = append(out, r.Solvents...)
	out = append(out, r.OtherReagents...)
	return out
}

// Equation returns the reaction as canonical strings joined
// reactants>reagents>products. Structures the parser could not interpret
// have no canonical string and are omitted.
func (r *Reaction) Equation() string {
	return strings.Join([]string{
		joinCanonical(r.Reactants),
		joinCanonical(r.Reagents()),
		joinCanonical(r.Products),
	}, ">")
}

// EquationNoReagents is Equation with the middle term left empty.
func (r *Reaction) EquationNoReagents() string {
	return strings.Join([]string{
		joinCanonical(r.Reactants),
		"",
		joinCanonical(r.Products),
	}, ">")
}

func joinCanonical(blocks []*StructureBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Canonical != "" {
			parts = append(parts, b.Canonical)
		}
	}
	return strings.Join(parts, ".")
}
