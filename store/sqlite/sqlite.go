/*
Package sqlite persists graph documents in a SQLite database.

Graphs are stored whole, as their portable JSON document, keyed by a name.
The driver is the pure Go modernc.org/sqlite, so no C toolchain is needed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/csm-adapt/karon/graph"
	"github.com/npillmayer/schuko/tracing"

	_ "modernc.org/sqlite"
)

// tracer traces with key 'karon.store'.
func tracer() tracing.Trace {
	return tracing.Select("karon.store")
}

// ErrNotFound is returned when loading a graph which has not been saved.
var ErrNotFound = errors.New("graph not found")

// Store is a named collection of graphs.
type Store struct {
	db *sql.DB
}

// Entry describes a stored graph.
type Entry struct {
	Name  string
	Nodes int
	Edges int
}

// Open opens or creates the database at path. Use ":memory:" for a
// transient store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // every connection to ":memory:" would be a database of its own
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	tracer().Debugf("opened graph store %q", path)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS graphs (
		name TEXT PRIMARY KEY,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		document JSON NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores g under name, replacing a graph saved under the same name.
func (s *Store) Save(ctx context.Context, name string, g *graph.Graph) error {
	if name == "" {
		return fmt.Errorf("cannot save graph without a name")
	}
	data, err := json.Marshal(g.ToDocument())
	if err != nil {
		return fmt.Errorf("failed to marshal graph %q: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO graphs (name, node_count, edge_count, document)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			node_count = excluded.node_count,
			edge_count = excluded.edge_count,
			document = excluded.document
	`, name, g.Len(), g.EdgeCount(), string(data))
	if err != nil {
		return fmt.Errorf("failed to save graph %q: %w", name, err)
	}
	tracer().Infof("saved graph %q with %d nodes", name, g.Len())
	return nil
}

// Load restores the graph saved under name.
func (s *Store) Load(ctx context.Context, name string) (*graph.Graph, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM graphs WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load graph %q: %w", name, err)
	}
	var doc graph.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph %q: %w", name, err)
	}
	return graph.FromDocument(doc)
}

// List describes all stored graphs, ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, node_count, edge_count FROM graphs ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query graphs: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Nodes, &e.Edges); err != nil {
			return nil, fmt.Errorf("failed to scan graph entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the graph saved under name. It returns false if there was
// no such graph.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM graphs WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete graph %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
