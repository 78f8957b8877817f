// Package frames computes local reference frames for nucleotide bases by
// least-squares superposition of standard ring templates onto the
// experimental ring atoms.
package frames

import "github.com/jyesselm/find-pair-sub002/internal/geom"

// Template holds the atom names and standard-frame coordinates of one base
// type. Coordinates follow the standard base reference frame: origin on the
// pseudo-dyad in the base plane, y-axis toward the glycosidic bond side,
// z = 0 for all base atoms.
type Template struct {
	Names  []string
	Coords []geom.Vec
}

// Ring-atom ordering: purines list the nine ring atoms, pyrimidines the
// six. C1' is appended for the nucleic-acid-specific variant.
var (
	purineRing     = []string{"C4", "N3", "C2", "N1", "C6", "C5", "N7", "C8", "N9"}
	pyrimidineRing = []string{"C4", "N3", "C2", "N1", "C6", "C5"}
)

var templates = map[byte]Template{
	'A': {
		Names: purineRing,
		Coords: []geom.Vec{
			{X: -1.267, Y: 3.124}, {X: -2.320, Y: 2.290}, {X: -1.912, Y: 1.023},
			{X: -0.668, Y: 0.532}, {X: 0.369, Y: 1.398}, {X: 0.071, Y: 2.771},
			{X: 0.877, Y: 3.902}, {X: 0.024, Y: 4.897}, {X: -1.291, Y: 4.498},
		},
	},
	'G': {
		Names: purineRing,
		Coords: []geom.Vec{
			{X: -1.265, Y: 3.177}, {X: -2.342, Y: 2.364}, {X: -1.999, Y: 1.087},
			{X: -0.700, Y: 0.641}, {X: 0.424, Y: 1.460}, {X: 0.071, Y: 2.833},
			{X: 0.870, Y: 3.969}, {X: 0.023, Y: 4.962}, {X: -1.289, Y: 4.551},
		},
	},
	'C': {
		Names: pyrimidineRing,
		Coords: []geom.Vec{
			{X: 0.837, Y: 2.868}, {X: -0.391, Y: 2.344}, {X: -1.472, Y: 3.158},
			{X: -1.285, Y: 4.542}, {X: -0.023, Y: 5.068}, {X: 1.056, Y: 4.275},
		},
	},
	'U': {
		Names: pyrimidineRing,
		Coords: []geom.Vec{
			{X: 0.989, Y: 2.884}, {X: -0.302, Y: 2.397}, {X: -1.462, Y: 3.131},
			{X: -1.284, Y: 4.500}, {X: -0.024, Y: 5.053}, {X: 1.089, Y: 4.311},
		},
	},
	'T': {
		Names: pyrimidineRing,
		Coords: []geom.Vec{
			{X: 0.994, Y: 2.897}, {X: -0.298, Y: 2.407}, {X: -1.462, Y: 3.135},
			{X: -1.284, Y: 4.500}, {X: -0.024, Y: 5.057}, {X: 1.106, Y: 4.338},
		},
	},
}

// c1Coords holds the standard C1' position for the nucleic-acid variant of
// each template.
var c1Coords = map[byte]geom.Vec{
	'A': {X: -2.479, Y: 5.346},
	'G': {X: -2.477, Y: 5.399},
	'C': {X: -2.477, Y: 5.402},
	'U': {X: -2.481, Y: 5.354},
	'T': {X: -2.481, Y: 5.354},
}

func init() {
	// Inosine shares the guanine ring geometry.
	templates['I'] = templates['G']
	c1Coords['I'] = c1Coords['G']
}

// For returns the standard template for a one-letter base code. When
// includeC1 is set, the C1' position is appended to the ring atoms.
func For(base byte, includeC1 bool) (Template, bool) {
	t, ok := templates[base]
	if !ok {
		return Template{}, false
	}
	if !includeC1 {
		return t, true
	}
	out := Template{
		Names:  make([]string, 0, len(t.Names)+1),
		Coords: make([]geom.Vec, 0, len(t.Coords)+1),
	}
	out.Names = append(out.Names, t.Names...)
	out.Coords = append(out.Coords, t.Coords...)
	out.Names = append(out.Names, "C1'")
	out.Coords = append(out.Coords, c1Coords[base])
	return out, true
}

// RingAtoms returns the ring-atom names for a base code (no C1'), used by
// the validator to build base-ring projections.
func RingAtoms(base byte) []string {
	t, ok := templates[base]
	if !ok {
		return nil
	}
	return t.Names
}
