package helix

import (
	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Direction-check thresholds.
const (
	// o3ContinuityMax is the widest O3'(i) -> P(i+1) distance still taken
	// as same-strand continuity between stacked pairs.
	o3ContinuityMax = 4.5
	// sugarContinuityMax bounds consecutive C1'-C1' distances on one strand.
	sugarContinuityMax = 7.0
	// phosphateContinuityMax bounds consecutive P-P distances.
	phosphateContinuityMax = 7.5
)

// strand returns the residue on the given strand (1 or 2) of a pair,
// honoring its swap flag.
func strand(p pair.BasePair, swapped bool, n int) *pdb.Residue {
	if (n == 1) != swapped {
		return p.Residue1
	}
	return p.Residue2
}

// normalizeDirections fixes the 5'->3' strand assignment of one helix
// through the fixed multi-pass sequence inherited from the original tool:
// initial swap from the first-step heuristic, a forward walk with four
// orientation checks plus a chain-1 direction check, a Watson-Crick-only
// recheck that may toggle the earlier pair, a linkage tally, tally-based
// strand-2 corrections, and a final tally recomputation. The final tally
// duplicates the first when the strand-2 pass changed nothing, but the
// output swap-flag state feeds frame ordering downstream, so every step
// runs unconditionally and in this order.
func (o *Organizer) normalizeDirections(s *pdb.Structure, pairs []pair.BasePair, chains []Chain, seg []int) []bool {
	swap := make([]bool, len(seg))
	if len(seg) == 0 {
		return swap
	}

	o.stepInitialSwap(pairs, seg, swap)
	o.stepCheckDirection(pairs, seg, swap)
	o.stepRecheckWC(pairs, seg, swap)
	fwd, rev, ind := o.stepTallyLinkage(pairs, seg, swap)
	o.stepCheckStrand2(pairs, chains, seg, swap, fwd, rev)
	fwd, rev, ind = o.stepTallyLinkage(pairs, seg, swap)

	o.logger.Debug("helix direction normalized",
		zap.Int("pairs", len(seg)),
		zap.Int("forward", fwd),
		zap.Int("reverse", rev),
		zap.Int("indeterminate", ind))
	return swap
}

// stepInitialSwap seeds the first pair's swap flag from backbone proximity
// of the first step: whichever strand assignment puts the first pair's
// O3' closer to the second pair's P wins.
func (o *Organizer) stepInitialSwap(pairs []pair.BasePair, seg []int, swap []bool) {
	if len(seg) < 2 {
		return
	}
	p0, p1 := pairs[seg[0]], pairs[seg[1]]

	direct, okD := backboneStep(p0.Residue1, p1.Residue1)
	crossed, okC := backboneStep(p0.Residue2, p1.Residue1)
	if okD && okC && crossed < direct {
		swap[0] = true
	} else if !okD && okC {
		swap[0] = true
	}
}

// stepCheckDirection walks consecutive pair positions once. Four
// independent checks can each signal a strand reversal of the later pair:
// Watson-Crick base orientation, O3' continuity, sugar-chain continuity
// and phosphate continuity. The chain-1 direction check runs afterward and
// can toggle the flag again.
func (o *Organizer) stepCheckDirection(pairs []pair.BasePair, seg []int, swap []bool) {
	for k := 1; k < len(seg); k++ {
		pi, pj := pairs[seg[k-1]], pairs[seg[k]]

		reversal := checkWCOrientation(pi, pj, swap[k-1], swap[k]) ||
			checkO3Continuity(pi, pj, swap[k-1], swap[k]) ||
			checkSugarContinuity(pi, pj, swap[k-1], swap[k]) ||
			checkPhosphateContinuity(pi, pj, swap[k-1], swap[k])
		if reversal {
			swap[k] = !swap[k]
		}

		// Chain-1 direction: the strand-1 residues of consecutive pairs
		// must run 5'->3'; a reverse backbone bond toggles once more.
		if Connected(strand(pj, swap[k], 1), strand(pi, swap[k-1], 1)) > 0 {
			swap[k] = !swap[k]
		}
	}
}

// stepRecheckWC re-runs only the Watson-Crick orientation test, toggling
// the earlier pair of a mismatching step.
func (o *Organizer) stepRecheckWC(pairs []pair.BasePair, seg []int, swap []bool) {
	for k := 1; k < len(seg); k++ {
		pi, pj := pairs[seg[k-1]], pairs[seg[k]]
		if checkWCOrientation(pi, pj, swap[k-1], swap[k]) {
			swap[k-1] = !swap[k-1]
		}
	}
}

// stepTallyLinkage counts forward, reverse and indeterminate strand-1
// backbone linkages across the whole helix.
func (o *Organizer) stepTallyLinkage(pairs []pair.BasePair, seg []int, swap []bool) (fwd, rev, ind int) {
	for k := 1; k < len(seg); k++ {
		s1 := strand(pairs[seg[k-1]], swap[k-1], 1)
		s2 := strand(pairs[seg[k]], swap[k], 1)
		switch Connected(s1, s2) {
		case 1:
			fwd++
		case -1:
			rev++
		default:
			ind++
		}
	}
	return fwd, rev, ind
}

// stepCheckStrand2 applies the tally-based correction: when reverse
// linkages dominate, the whole helix was walked against the strand-1
// direction and every swap flag flips. A tied, non-empty tally falls back
// to the detected-chain ordering of the terminal strand-1 residues.
func (o *Organizer) stepCheckStrand2(pairs []pair.BasePair, chains []Chain, seg []int, swap []bool, fwd, rev int) {
	flip := rev > fwd
	if !flip && rev > 0 && rev == fwd {
		first := strand(pairs[seg[0]], swap[0], 1)
		last := strand(pairs[seg[len(seg)-1]], swap[len(seg)-1], 1)
		c1, p1, ok1 := chainRank(chains, first.Index)
		c2, p2, ok2 := chainRank(chains, last.Index)
		flip = ok1 && ok2 && c1 == c2 && p2 < p1
	}
	if flip {
		for k := range swap {
			swap[k] = !swap[k]
		}
	}
}

// chainRank locates a residue inside the detected chains, returning its
// chain number and position.
func chainRank(chains []Chain, residueIndex int) (chain, pos int, ok bool) {
	for ci, c := range chains {
		for pi, idx := range c.Indices {
			if idx == residueIndex {
				return ci, pi, true
			}
		}
	}
	return 0, 0, false
}

// checkWCOrientation signals a reversal when the strand-1 normals of two
// consecutive pairs point against each other.
func checkWCOrientation(pi, pj pair.BasePair, si, sj bool) bool {
	f1 := pairFrame(pi, si)
	f2 := pairFrame(pj, sj)
	return f1.Z().Dot(f2.Z()) < 0
}

func pairFrame(p pair.BasePair, swapped bool) pdb.Frame {
	if swapped {
		return p.Frame2
	}
	return p.Frame1
}

// checkO3Continuity signals a reversal when strand 1 of the later pair is
// not O3'-continuous with strand 1 of the earlier pair but its partner
// strand is.
func checkO3Continuity(pi, pj pair.BasePair, si, sj bool) bool {
	direct, okD := backboneStep(strand(pi, si, 1), strand(pj, sj, 1))
	crossed, okC := backboneStep(strand(pi, si, 1), strand(pj, sj, 2))
	if okD && direct <= o3ContinuityMax {
		return false
	}
	return okC && crossed <= o3ContinuityMax
}

// checkSugarContinuity compares consecutive C1'-C1' distances along strand
// 1 against the crossed assignment.
func checkSugarContinuity(pi, pj pair.BasePair, si, sj bool) bool {
	direct, okD := atomStep(strand(pi, si, 1), strand(pj, sj, 1), "C1'", "C1'")
	crossed, okC := atomStep(strand(pi, si, 1), strand(pj, sj, 2), "C1'", "C1'")
	if !okD || !okC {
		return false
	}
	return direct > sugarContinuityMax && crossed <= sugarContinuityMax
}

// checkPhosphateContinuity is the same comparison over the P-P distances.
func checkPhosphateContinuity(pi, pj pair.BasePair, si, sj bool) bool {
	direct, okD := atomStep(strand(pi, si, 1), strand(pj, sj, 1), "P", "P")
	crossed, okC := atomStep(strand(pi, si, 1), strand(pj, sj, 2), "P", "P")
	if !okD || !okC {
		return false
	}
	return direct > phosphateContinuityMax && crossed <= phosphateContinuityMax
}

// backboneStep returns the O3'(a) -> P(b) distance.
func backboneStep(a, b *pdb.Residue) (float64, bool) {
	return atomStep(a, b, "O3'", "P")
}

func atomStep(a, b *pdb.Residue, nameA, nameB string) (float64, bool) {
	aa, ok1 := a.Atom(nameA)
	ab, ok2 := b.Atom(nameB)
	if !ok1 || !ok2 {
		return 0, false
	}
	return aa.Pos.Dist(ab.Pos), true
}
