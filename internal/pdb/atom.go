// Package pdb provides the in-memory structure model (chains, residues,
// atoms) and the PDB coordinate-file parser.
package pdb

import (
	"strings"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
)

// Atom is a single atom record from a coordinate file.
type Atom struct {
	// Serial is the legacy 1-based index assigned in parse order. It is
	// the stable identity key used instead of pointers.
	Serial int
	// Name is the trimmed atom name (e.g. "C1'", "OP1").
	Name string
	// PaddedName preserves the original 4-character column form so that
	// round-trip output reproduces the input layout.
	PaddedName string
	AltLoc     string
	Element    string
	Pos        geom.Vec
	Occupancy  float64
	BFactor    float64
}

// phosphate oxygen names, both modern and legacy spellings.
var phosphateOxygens = map[string]bool{
	"OP1": true, "OP2": true, "OP3": true,
	"O1P": true, "O2P": true, "O3P": true,
}

// IsPhosphateOxygen reports whether the atom is one of the phosphate
// oxygens (OP1/OP2/OP3 or the legacy O1P/O2P/O3P spellings).
func (a *Atom) IsPhosphateOxygen() bool {
	return phosphateOxygens[a.Name]
}

// IsBackbone reports whether the atom belongs to the nucleic-acid backbone
// (phosphate group or sugar) rather than the base.
func (a *Atom) IsBackbone() bool {
	if a.Name == "P" || a.IsPhosphateOxygen() {
		return true
	}
	return strings.ContainsAny(a.Name, "'*") // sugar atoms: C1', O4', legacy C1* etc.
}

// ElementFromName derives the element symbol from a padded PDB atom name
// when columns 77-78 are absent. Column 13 is blank for C/N/O/P/S names
// and holds the first letter of two-letter elements.
func ElementFromName(padded string) string {
	name := strings.TrimLeft(padded, " 0123456789")
	if name == "" {
		return ""
	}
	return string(name[0])
}
