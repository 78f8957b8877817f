package pair

import (
	"math"

	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Base-pair type classification values, matching the original tool.
const (
	BPTypeUnknown = -1
	BPTypeInvalid = 0
	BPTypeWobble  = 1
	BPTypeWC      = 2
)

// wcPairs are the complementary base combinations eligible for the
// Watson-Crick classification.
var wcPairs = map[[2]byte]bool{
	{'A', 'T'}: true, {'T', 'A'}: true,
	{'A', 'U'}: true, {'U', 'A'}: true,
	{'G', 'C'}: true, {'C', 'G'}: true,
}

// isWobbleKeto reports whether the base donates the keto side of a wobble
// pair (G or I against U/T).
func isWobbleKeto(b byte) bool { return b == 'G' || b == 'I' }

func isWobbleEnol(b byte) bool { return b == 'U' || b == 'T' }

// TypeID classifies a candidate pair as Watson-Crick (2), wobble (1),
// invalid geometry (0) or unknown (-1). The classification only applies
// when the two frames satisfy the strict direction precondition
// dir_x > 0, dir_y < 0, dir_z < 0.
//
// The values fed into the shear/stretch/opening windows below are actually
// the shift/slide/twist step parameters of the raw frames. The original
// find_pair does exactly this, and every published output depends on which
// pairs earn the Watson-Crick score bonus, so the mismapping is kept.
// Correcting it changes pair selection on real structures.
func TypeID(r1, r2 *pdb.Residue) int {
	if r1.Frame == nil || r2.Frame == nil {
		return BPTypeUnknown
	}
	f1, f2 := *r1.Frame, *r2.Frame

	dirX := f1.X().Dot(f2.X())
	dirY := f1.Y().Dot(f2.Y())
	dirZ := f1.Z().Dot(f2.Z())
	if !(dirX > 0 && dirY < 0 && dirZ < 0) {
		return BPTypeUnknown
	}

	// The precondition guarantees an anti-parallel partner, so the step is
	// always taken against the y/z-flipped strand-2 frame.
	p, _ := StepParams(f1, f2.FlipYZ())

	shear := p.Shift
	stretch := p.Slide
	opening := p.Twist

	if math.Abs(stretch) > 2.0 || math.Abs(opening) > 60.0 {
		return BPTypeInvalid
	}

	b1, b2 := pdb.BaseCode(r1), pdb.BaseCode(r2)
	if math.Abs(shear) <= 2.0 {
		if wcPairs[[2]byte{b1, b2}] {
			return BPTypeWC
		}
		return BPTypeInvalid
	}
	// The wobble window is sign-specific: the G (keto) base shears toward
	// the minor groove, so the sign flips with strand order.
	switch {
	case isWobbleKeto(b1) && isWobbleEnol(b2) && shear >= 1.8 && shear <= 2.8:
		return BPTypeWobble
	case isWobbleEnol(b1) && isWobbleKeto(b2) && shear <= -1.8 && shear >= -2.8:
		return BPTypeWobble
	}
	return BPTypeInvalid
}
