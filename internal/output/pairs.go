// Package output provides result formatters for base pairs and helices.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// PairWriter defines the writing contract shared by the output formats.
type PairWriter interface {
	WriteHeader() error
	Write(s *pdb.Structure, bp pair.BasePair) error
	Flush() error
}

// TabWriter writes base pairs in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#index1",
			"index2",
			"residue1",
			"residue2",
			"bp_type",
			"hbonds",
			"score",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single base pair.
func (tw *TabWriter) Write(s *pdb.Structure, bp pair.BasePair) error {
	hbonds := make([]string, 0, len(bp.HBonds))
	for _, b := range bp.HBonds {
		if b.Class == hbond.Invalid {
			continue
		}
		hbonds = append(hbonds, fmt.Sprintf("%s-%s(%.2f)", b.Atom1, b.Atom2, b.Distance))
	}
	hb := "-"
	if len(hbonds) > 0 {
		hb = strings.Join(hbonds, ",")
	}

	_, err := fmt.Fprintf(tw.w, "%d\t%d\t%s\t%s\t%s\t%s\t%.3f\n",
		bp.Index1, bp.Index2,
		residueLabel(bp.Residue1), residueLabel(bp.Residue2),
		typeLabel(bp.TypeID), hb, bp.Score)
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// residueLabel formats a residue as chain.NAMEseq, e.g. A.G42.
func residueLabel(r *pdb.Residue) string {
	chain := r.Chain
	if chain == "" {
		chain = "?"
	}
	return fmt.Sprintf("%s.%s%d%s", chain, r.Name, r.Seq, r.ICode)
}

func typeLabel(typeID int) string {
	switch typeID {
	case pair.BPTypeWC:
		return "WC"
	case pair.BPTypeWobble:
		return "wobble"
	case pair.BPTypeInvalid:
		return "other"
	}
	return "unknown"
}
