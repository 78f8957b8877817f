package pdb

import "github.com/jyesselm/find-pair-sub002/internal/geom"

// Kind is the closed set of residue categories. Behavior that used to hang
// off a class hierarchy is resolved by switching on the tag instead.
type Kind int

const (
	KindUnknown Kind = iota
	KindRNA
	KindDNA
	KindProtein
	KindLigand
	KindWater
)

// String returns a short label for the residue kind.
func (k Kind) String() string {
	switch k {
	case KindRNA:
		return "rna"
	case KindDNA:
		return "dna"
	case KindProtein:
		return "protein"
	case KindLigand:
		return "ligand"
	case KindWater:
		return "water"
	}
	return "unknown"
}

// Frame is a local orthonormal coordinate system attached to a base:
// the rotation columns are the local x/y/z axes and the origin sits at the
// standard base-frame origin. The z-axis is the base-plane normal.
type Frame struct {
	Rotation geom.Matrix
	Origin   geom.Vec
}

// X returns the frame's x-axis.
func (f Frame) X() geom.Vec { return f.Rotation.Col(0) }

// Y returns the frame's y-axis.
func (f Frame) Y() geom.Vec { return f.Rotation.Col(1) }

// Z returns the frame's z-axis (base-plane normal).
func (f Frame) Z() geom.Vec { return f.Rotation.Col(2) }

// FlipYZ returns a copy of the frame with the y and z axes negated. Used
// transiently when deriving pair parameters for anti-parallel bases; the
// residue's stored frame is never modified.
func (f Frame) FlipYZ() Frame {
	r := f.Rotation
	r.SetCol(1, f.Y().Neg())
	r.SetCol(2, f.Z().Neg())
	return Frame{Rotation: r, Origin: f.Origin}
}

// Residue is one residue of the structure together with its optional
// computed reference frame.
type Residue struct {
	Name  string
	Seq   int
	Chain string
	ICode string
	Kind  Kind
	// Index is the legacy 1-based index assigned in file order; it is the
	// key every component uses to refer to this residue.
	Index int
	Atoms []*Atom

	// Frame is set once during the frame-calculation phase and is nil for
	// residues that could not be fitted. FrameRMS and FrameAtoms record
	// the fit quality for diagnostics.
	Frame      *Frame
	FrameRMS   float64
	FrameAtoms int
}

// Atom returns the residue's atom with the given trimmed name.
func (r *Residue) Atom(name string) (*Atom, bool) {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// baseCodes maps residue names to one-letter base codes. Covers RNA, DNA
// and the common long-form names.
var baseCodes = map[string]byte{
	"A": 'A', "DA": 'A', "ADE": 'A',
	"G": 'G', "DG": 'G', "GUA": 'G',
	"C": 'C', "DC": 'C', "CYT": 'C',
	"U": 'U', "URA": 'U', "URI": 'U',
	"T": 'T', "DT": 'T', "THY": 'T',
	"I": 'I', "DI": 'I', "INO": 'I',
}

// BaseCode returns the one-letter base code for a nucleotide residue, or 0
// for residues with no recognized base identity.
func BaseCode(r *Residue) byte {
	return baseCodes[r.Name]
}

// IsNucleotide reports whether the residue takes part in base pairing.
// The test is independent of whether a frame was computed.
func IsNucleotide(r *Residue) bool {
	return r.Kind == KindRNA || r.Kind == KindDNA
}

// IsPurine reports whether the residue's base is a purine (A, G, I).
func IsPurine(r *Residue) bool {
	switch BaseCode(r) {
	case 'A', 'G', 'I':
		return true
	}
	// Modified bases keep purine geometry if N9 bonds the sugar.
	if _, ok := r.Atom("N9"); ok {
		return IsNucleotide(r)
	}
	return false
}

// GlycosidicNitrogen returns the base nitrogen bonded to the sugar:
// N9 for purines, N1 for pyrimidines.
func GlycosidicNitrogen(r *Residue) (*Atom, bool) {
	if IsPurine(r) {
		return r.Atom("N9")
	}
	return r.Atom("N1")
}

// SugarCenter returns the mean position of the residue's sugar-ring atoms,
// falling back to C1' alone when the full ring is absent.
func SugarCenter(r *Residue) (geom.Vec, bool) {
	names := []string{"C1'", "C2'", "C3'", "C4'", "O4'"}
	var sum geom.Vec
	n := 0
	for _, name := range names {
		if a, ok := r.Atom(name); ok {
			sum = sum.Add(a.Pos)
			n++
		}
	}
	if n == 0 {
		return geom.Vec{}, false
	}
	return sum.Scale(1 / float64(n)), true
}

// aminoAcids is the standard 20 plus common variants, for kind tagging.
var aminoAcids = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	"MSE": true, "SEC": true, "PYL": true,
}

// classifyKind tags a residue from its name and atom inventory.
func classifyKind(r *Residue) Kind {
	switch r.Name {
	case "HOH", "WAT", "DOD":
		return KindWater
	}
	if aminoAcids[r.Name] {
		return KindProtein
	}
	if _, known := baseCodes[r.Name]; known || looksLikeNucleotide(r) {
		switch r.Name {
		case "DA", "DC", "DG", "DT", "DI":
			return KindDNA
		}
		if _, ok := r.Atom("O2'"); ok {
			return KindRNA
		}
		return KindDNA
	}
	return KindLigand
}

// looksLikeNucleotide checks for base-ring plus sugar atoms so that
// modified nucleotides with nonstandard names are still paired.
func looksLikeNucleotide(r *Residue) bool {
	if _, ok := r.Atom("C1'"); !ok {
		return false
	}
	ring := 0
	for _, name := range []string{"N1", "C2", "N3", "C4", "C5", "C6"} {
		if _, ok := r.Atom(name); ok {
			ring++
		}
	}
	return ring >= 4
}
