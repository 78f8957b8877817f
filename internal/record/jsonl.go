// Package record provides write-only sinks for per-pair validation
// snapshots, for external persistence and run-to-run comparison. The
// analysis core never reads anything back.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jyesselm/find-pair-sub002/internal/pair"
)

// Sink is a closeable snapshot recorder.
type Sink interface {
	pair.Recorder
	io.Closer
}

// Open creates a sink for the given path, selecting the backend by file
// extension: .duckdb/.db opens a DuckDB table, anything else JSON Lines.
func Open(path string) (Sink, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".duckdb") || strings.HasSuffix(lower, ".db") {
		return OpenDuckDB(path)
	}
	return OpenJSONL(path)
}

// snapshotRow is the serialized form of one validation snapshot.
type snapshotRow struct {
	Index1        int     `json:"index1"`
	Index2        int     `json:"index2"`
	Name1         string  `json:"name1"`
	Name2         string  `json:"name2"`
	TypeID        int     `json:"bp_type_id"`
	Valid         bool    `json:"valid"`
	Dorg          float64 `json:"dorg"`
	Dv            float64 `json:"d_v"`
	PlaneAngle    float64 `json:"plane_angle"`
	DNN           float64 `json:"d_nn"`
	Overlap       float64 `json:"overlap"`
	BaseHBonds    int     `json:"base_hbonds"`
	Score         float64 `json:"score"`
	AdjustedScore float64 `json:"adjusted_score"`
	HBonds        []hbondRow `json:"hbonds,omitempty"`
}

type hbondRow struct {
	Atom1    string  `json:"atom1"`
	Atom2    string  `json:"atom2"`
	Distance float64 `json:"distance"`
	Class    string  `json:"class"`
}

func makeRow(s pair.Snapshot) snapshotRow {
	row := snapshotRow{
		Index1:        s.Index1,
		Index2:        s.Index2,
		Name1:         s.Name1,
		Name2:         s.Name2,
		TypeID:        s.TypeID,
		Valid:         s.Result.Valid,
		Dorg:          s.Result.Dorg,
		Dv:            s.Result.Dv,
		PlaneAngle:    s.Result.PlaneAngle,
		DNN:           s.Result.DNN,
		Overlap:       s.Result.Overlap,
		BaseHBonds:    s.Result.BaseHBonds,
		Score:         s.Result.Score,
		AdjustedScore: s.AdjustedScore,
	}
	for _, b := range s.Result.HBonds {
		row.HBonds = append(row.HBonds, hbondRow{
			Atom1:    b.Atom1,
			Atom2:    b.Atom2,
			Distance: b.Distance,
			Class:    b.Class.String(),
		})
	}
	return row
}

// JSONL streams snapshots as one JSON object per line.
type JSONL struct {
	f *os.File
	w *bufio.Writer
}

// OpenJSONL creates (or truncates) a JSON Lines snapshot file.
func OpenJSONL(path string) (*JSONL, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("record: create %s: %w", path, err)
	}
	return &JSONL{f: f, w: bufio.NewWriter(f)}, nil
}

// Record appends one snapshot.
func (j *JSONL) Record(s pair.Snapshot) error {
	data, err := json.Marshal(makeRow(s))
	if err != nil {
		return fmt.Errorf("record: marshal snapshot: %w", err)
	}
	if _, err := j.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("record: write snapshot: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (j *JSONL) Close() error {
	if err := j.w.Flush(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}
