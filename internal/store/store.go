// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed reaction records in a SQLite index so large
// containers can be queried without reparsing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mwalton/rdfkit/internal/molblock"
	"github.com/mwalton/rdfkit/internal/rxnblock"
	"github.com/mwalton/rdfkit/pkg/types"
)

// Store manages the reaction index SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index database at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reactions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			reg_id TEXT,
			line_no INTEGER,
			name TEXT,
			registry_number TEXT,
			date_time TEXT,
			reactant_count INTEGER,
			product_count INTEGER,
			equation TEXT,
			yield REAL
		)`,
		`CREATE TABLE IF NOT EXISTS molecules (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			reaction_id INTEGER NOT NULL REFERENCES reactions(rowid),
			role TEXT NOT NULL,
			name TEXT,
			registry_number TEXT,
			formula TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_molecules_reaction ON molecules(reaction_id)`,
		`CREATE TABLE IF NOT EXISTS properties (
			reaction_id INTEGER NOT NULL REFERENCES reactions(rowid),
			key TEXT NOT NULL,
			value TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_reaction ON properties(reaction_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// LoadSummary holds counts from one index run.
type LoadSummary struct {
	Inserted int
	Skipped  int
}

// Load inserts a sequence of parsed reactions. Nil slots (absent records
// from a tolerant parse) count as skipped so positions stay accounted for.
func (s *Store) Load(ctx context.Context, reactions []*types.Reaction, w io.Writer) (LoadSummary, error) {
	var summary LoadSummary
	for _, rxn := range reactions {
		if rxn == nil {
			summary.Skipped++
			continue
		}
		if err := s.insertReaction(ctx, rxn); err != nil {
			return summary, fmt.Errorf("inserting record %q: %w", rxn.ID, err)
		}
		summary.Inserted++
	}
	fmt.Fprintf(w, "indexed: %d, skipped: %d\n", summary.Inserted, summary.Skipped)
	return summary, nil
}

func (s *Store) insertReaction(ctx context.Context, rxn *types.Reaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	dateStr := ""
	if t, ok := rxn.Metadata.Time(types.DateTimeKey); ok {
		dateStr = t.Format(time.RFC3339)
	}

	var yieldVal sql.NullFloat64
	if v, ok := rxnblock.ParseYield(yieldProperty(rxn)); ok {
		yieldVal = sql.NullFloat64{Float64: v, Valid: true}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reactions (reg_id, line_no, name, registry_number, date_time,
			reactant_count, product_count, equation, yield)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rxn.ID, rxn.LineNo,
		rxn.Metadata.String("reaction_name"),
		rxn.Metadata.String("registry_number"),
		dateStr,
		rxn.Metadata.Int("reactant_count"),
		rxn.Metadata.Int("product_count"),
		rxn.Equation(), yieldVal,
	)
	if err != nil {
		return fmt.Errorf("inserting reaction: %w", err)
	}
	reactionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading reaction rowid: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO molecules (reaction_id, role, name, registry_number, formula)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing molecule insert: %w", err)
	}
	defer stmt.Close()

	all := append(append(append([]*types.StructureBlock{}, rxn.Reactants...), rxn.Products...), rxn.Reagents()...)
	for _, sb := range all {
		name, regno := "", ""
		if md, err := molblock.Metadata(sb.Text); err == nil {
			name = md.String("molecule_name")
			regno = md.String("registry_number")
		}
		if _, err := stmt.ExecContext(ctx, reactionID, string(sb.Role), name, regno, sb.Canonical); err != nil {
			return fmt.Errorf("inserting %s molecule: %w", sb.Role, err)
		}
	}

	for key, value := range rxn.Properties {
		if key == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO properties (reaction_id, key, value) VALUES (?, ?, ?)`,
			reactionID, key, value); err != nil {
			return fmt.Errorf("inserting property %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Counts returns the number of indexed reactions and molecules.
func (s *Store) Counts(ctx context.Context) (reactions, molecules int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM reactions`).Scan(&reactions); err != nil {
		return 0, 0, fmt.Errorf("counting reactions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM molecules`).Scan(&molecules); err != nil {
		return 0, 0, fmt.Errorf("counting molecules: %w", err)
	}
	return reactions, molecules, nil
}

// yieldProperty returns the value of the first property key naming a yield
// field, preferring the bare "yield" key.
func yieldProperty(rxn *types.Reaction) string {
	if v, ok := rxn.Properties["yield"]; ok {
		return v
	}
	var keys []string
	for key := range rxn.Properties {
		if strings.Contains(key, "yield") {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return rxn.Properties[keys[0]]
}
