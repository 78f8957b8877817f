package output

import (
	"encoding/json"
	"io"

	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/helix"
	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Document is the full analysis result serialized as one JSON object.
type Document struct {
	Structure string        `json:"structure"`
	Pairs     []pairJSON    `json:"pairs"`
	Helices   []segmentJSON `json:"helices,omitempty"`
	Frames    []frameJSON   `json:"frames,omitempty"`
}

type pairJSON struct {
	Index1   int         `json:"index1"`
	Index2   int         `json:"index2"`
	Residue1 string      `json:"residue1"`
	Residue2 string      `json:"residue2"`
	Type     string      `json:"bp_type"`
	TypeID   int         `json:"bp_type_id"`
	Score    float64     `json:"score"`
	HBonds   []hbondJSON `json:"hbonds,omitempty"`
}

type hbondJSON struct {
	Atom1    string  `json:"atom1"`
	Atom2    string  `json:"atom2"`
	Distance float64 `json:"distance"`
	Class    string  `json:"class"`
}

type segmentJSON struct {
	Pairs   []int  `json:"pairs"`
	Swapped []bool `json:"swapped"`
}

type frameJSON struct {
	Index    int           `json:"index"`
	Residue  string        `json:"residue"`
	Origin   [3]float64    `json:"origin"`
	Rotation [3][3]float64 `json:"rotation"`
	RMS      float64       `json:"rms"`
	Atoms    int           `json:"atoms"`
}

// WriteJSON serializes the full analysis result to w with indentation.
func WriteJSON(w io.Writer, s *pdb.Structure, pairs []pair.BasePair, segments []helix.Segment) error {
	doc := Document{Structure: s.ID}

	for _, bp := range pairs {
		pj := pairJSON{
			Index1:   bp.Index1,
			Index2:   bp.Index2,
			Residue1: residueLabel(bp.Residue1),
			Residue2: residueLabel(bp.Residue2),
			Type:     typeLabel(bp.TypeID),
			TypeID:   bp.TypeID,
			Score:    bp.Score,
		}
		for _, b := range bp.HBonds {
			if b.Class == hbond.Invalid {
				continue
			}
			pj.HBonds = append(pj.HBonds, hbondJSON{
				Atom1:    b.Atom1,
				Atom2:    b.Atom2,
				Distance: b.Distance,
				Class:    b.Class.String(),
			})
		}
		doc.Pairs = append(doc.Pairs, pj)
	}

	for _, seg := range segments {
		doc.Helices = append(doc.Helices, segmentJSON{Pairs: seg.Pairs, Swapped: seg.Swapped})
	}

	for _, r := range s.Residues() {
		if r.Frame == nil {
			continue
		}
		fj := frameJSON{
			Index:   r.Index,
			Residue: residueLabel(r),
			Origin:  [3]float64{r.Frame.Origin.X, r.Frame.Origin.Y, r.Frame.Origin.Z},
			RMS:     r.FrameRMS,
			Atoms:   r.FrameAtoms,
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				fj.Rotation[i][j] = r.Frame.Rotation[i][j]
			}
		}
		doc.Frames = append(doc.Frames, fj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
