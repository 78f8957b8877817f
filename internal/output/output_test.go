package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/helix"
	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

func sampleStructure() (*pdb.Structure, []pair.BasePair) {
	s := &pdb.Structure{ID: "1abc"}
	g := &pdb.Residue{Name: "G", Seq: 42, Chain: "A", Kind: pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: geom.Identity}}
	c := &pdb.Residue{Name: "C", Seq: 7, Chain: "B", Kind: pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: geom.Identity, Origin: geom.Vec{X: 1}}}
	a := &pdb.Residue{Name: "A", Seq: 43, Chain: "A", Kind: pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: geom.Identity, Origin: geom.Vec{Z: 3.4}}}
	u := &pdb.Residue{Name: "U", Seq: 6, Chain: "B", Kind: pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: geom.Identity, Origin: geom.Vec{X: 1, Z: 3.4}}}
	for _, r := range []*pdb.Residue{g, c, a, u} {
		s.AddResidue(r)
	}

	pairs := []pair.BasePair{
		{
			Index1: 1, Index2: 2, Residue1: g, Residue2: c,
			Frame1: *g.Frame, Frame2: *c.Frame,
			TypeID: pair.BPTypeWC, Score: -4.25,
			HBonds: []hbond.Bond{
				{Atom1: "N1", Atom2: "N3", Distance: 2.91, Class: hbond.Standard},
				{Atom1: "N2", Atom2: "O2", Distance: 4.3, Class: hbond.Invalid},
			},
		},
		{
			Index1: 3, Index2: 4, Residue1: a, Residue2: u,
			Frame1: *a.Frame, Frame2: *u.Frame,
			TypeID: pair.BPTypeWobble, Score: -1.5,
		},
	}
	return s, pairs
}

func TestTabWriter(t *testing.T) {
	s, pairs := sampleStructure()

	var buf bytes.Buffer
	tw := NewTabWriter(&buf)
	require.NoError(t, tw.WriteHeader())
	for _, bp := range pairs {
		require.NoError(t, tw.Write(s, bp))
	}
	require.NoError(t, tw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#index1\tindex2\tresidue1\tresidue2\tbp_type\thbonds\tscore", lines[0])
	// Invalid bonds are excluded from the hbond column.
	assert.Equal(t, "1\t2\tA.G42\tB.C7\tWC\tN1-N3(2.91)\t-4.250", lines[1])
	assert.Equal(t, "3\t4\tA.A43\tB.U6\twobble\t-\t-1.500", lines[2])
}

func TestWriteJSON(t *testing.T) {
	s, pairs := sampleStructure()
	segments := []helix.Segment{{Pairs: []int{0, 1}, Swapped: []bool{false, true}}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s, pairs, segments))

	var doc struct {
		Structure string `json:"structure"`
		Pairs     []struct {
			Index1   int     `json:"index1"`
			Residue1 string  `json:"residue1"`
			Type     string  `json:"bp_type"`
			TypeID   int     `json:"bp_type_id"`
			Score    float64 `json:"score"`
			HBonds   []struct {
				Class string `json:"class"`
			} `json:"hbonds"`
		} `json:"pairs"`
		Helices []struct {
			Pairs   []int  `json:"pairs"`
			Swapped []bool `json:"swapped"`
		} `json:"helices"`
		Frames []struct {
			Index  int    `json:"index"`
			Origin [3]float64 `json:"origin"`
		} `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "1abc", doc.Structure)
	require.Len(t, doc.Pairs, 2)
	assert.Equal(t, "A.G42", doc.Pairs[0].Residue1)
	assert.Equal(t, "WC", doc.Pairs[0].Type)
	assert.Equal(t, 2, doc.Pairs[0].TypeID)
	require.Len(t, doc.Pairs[0].HBonds, 1, "invalid bond dropped")
	assert.Equal(t, "standard", doc.Pairs[0].HBonds[0].Class)

	require.Len(t, doc.Helices, 1)
	assert.Equal(t, []int{0, 1}, doc.Helices[0].Pairs)
	assert.Equal(t, []bool{false, true}, doc.Helices[0].Swapped)

	require.Len(t, doc.Frames, 4)
	assert.InDelta(t, 3.4, doc.Frames[2].Origin[2], 1e-12)
}

func TestWriteInp(t *testing.T) {
	s, pairs := sampleStructure()
	segments := []helix.Segment{{Pairs: []int{0, 1}, Swapped: []bool{false, true}}}

	var buf bytes.Buffer
	require.NoError(t, WriteInp(&buf, "1abc.pdb", s, pairs, segments))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "1abc.pdb", lines[0])
	assert.Equal(t, "1abc.out", lines[1])
	assert.Contains(t, lines[3], "2         # number of base-pairs")

	// First pair keeps its order and continues the helix (flag 0).
	assert.Equal(t, "    1     1     2     0 # A.G42 - B.C7", lines[5])
	// Second pair is swapped and closes the helix (flag 9).
	assert.Equal(t, "    2     4     3     9 # A.A43 - B.U6", lines[6])
}

func TestResidueLabel(t *testing.T) {
	r := &pdb.Residue{Name: "G", Seq: 12, Chain: "", ICode: "A"}
	assert.Equal(t, "?.G12A", residueLabel(r))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "WC", typeLabel(pair.BPTypeWC))
	assert.Equal(t, "wobble", typeLabel(pair.BPTypeWobble))
	assert.Equal(t, "other", typeLabel(pair.BPTypeInvalid))
	assert.Equal(t, "unknown", typeLabel(pair.BPTypeUnknown))
}
