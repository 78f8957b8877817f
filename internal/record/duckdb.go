package record

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/jyesselm/find-pair-sub002/internal/pair"
)

// DuckDB persists snapshots into a `validations` table, one row per
// evaluated candidate pair, so whole runs can be diffed with SQL.
type DuckDB struct {
	db   *sql.DB
	stmt *sql.Stmt
}

const duckdbSchema = `
CREATE TABLE IF NOT EXISTS validations (
	index1         INTEGER,
	index2         INTEGER,
	name1          VARCHAR,
	name2          VARCHAR,
	bp_type_id     INTEGER,
	valid          BOOLEAN,
	dorg           DOUBLE,
	d_v            DOUBLE,
	plane_angle    DOUBLE,
	d_nn           DOUBLE,
	overlap        DOUBLE,
	base_hbonds    INTEGER,
	score          DOUBLE,
	adjusted_score DOUBLE
)`

// OpenDuckDB opens (or creates) a DuckDB snapshot database.
func OpenDuckDB(path string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("record: open duckdb: %w", err)
	}
	if _, err := db.Exec(duckdbSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: create validations table: %w", err)
	}
	stmt, err := db.Prepare(`
		INSERT INTO validations VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("record: prepare insert: %w", err)
	}
	return &DuckDB{db: db, stmt: stmt}, nil
}

// Record inserts one snapshot row.
func (d *DuckDB) Record(s pair.Snapshot) error {
	_, err := d.stmt.Exec(
		s.Index1, s.Index2, s.Name1, s.Name2,
		s.TypeID, s.Result.Valid,
		s.Result.Dorg, s.Result.Dv, s.Result.PlaneAngle,
		s.Result.DNN, s.Result.Overlap, s.Result.BaseHBonds,
		s.Result.Score, s.AdjustedScore,
	)
	if err != nil {
		return fmt.Errorf("record: insert snapshot: %w", err)
	}
	return nil
}

// Close releases the prepared statement and database handle.
func (d *DuckDB) Close() error {
	d.stmt.Close()
	return d.db.Close()
}
