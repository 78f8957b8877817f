// Package helix organizes selected base pairs into ordered helical
// segments and normalizes their 5'->3' strand direction. It also provides
// the backbone chain detector used as a connectivity oracle.
package helix

import (
	"sort"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Backbone connectivity thresholds.
const (
	// o3pBondMax is the O3'(i) -> P(i+1) distance signalling 5'->3'
	// nucleic-acid connectivity.
	o3pBondMax = 2.75
	// cnBondMax is the C(i) -> N(i+1) peptide-bond distance.
	cnBondMax = 2.0
	// chainMergeMax is the terminal sugar-center / C-alpha distance under
	// which two detected chains are merged.
	chainMergeMax = 8.0
)

// Chain is one physically connected run of residues, identified by their
// legacy indices in 5'->3' (or N->C) order.
type Chain struct {
	Indices []int
}

// Connected reports the backbone linkage between residues a and b:
// +1 when a precedes b (O3'(a)->P(b) or C(a)->N(b) bonded), -1 when b
// precedes a, 0 when unlinked. The sign is the direction of the check, not
// of sequence numbering.
func Connected(a, b *pdb.Residue) int {
	if pdb.IsNucleotide(a) && pdb.IsNucleotide(b) {
		if o3, ok := a.Atom("O3'"); ok {
			if p, ok := b.Atom("P"); ok && o3.Pos.Dist(p.Pos) < o3pBondMax {
				return 1
			}
		}
		if o3, ok := b.Atom("O3'"); ok {
			if p, ok := a.Atom("P"); ok && o3.Pos.Dist(p.Pos) < o3pBondMax {
				return -1
			}
		}
		return 0
	}
	if a.Kind == pdb.KindProtein && b.Kind == pdb.KindProtein {
		if c, ok := a.Atom("C"); ok {
			if n, ok := b.Atom("N"); ok && c.Pos.Dist(n.Pos) < cnBondMax {
				return 1
			}
		}
		if c, ok := b.Atom("C"); ok {
			if n, ok := a.Atom("N"); ok && c.Pos.Dist(n.Pos) < cnBondMax {
				return -1
			}
		}
	}
	return 0
}

// DetectChains determines physical chain connectivity from backbone bond
// distances alone, without trusting sequence numbers. Candidates are
// ordered by (chain id, sequence number, insertion code) and chains grow
// greedily from unassigned residues through the connectivity test; chains
// whose termini fall within the merge threshold are then joined.
func DetectChains(s *pdb.Structure) []Chain {
	var candidates []*pdb.Residue
	for _, r := range s.Residues() {
		if pdb.IsNucleotide(r) || r.Kind == pdb.KindProtein {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Chain != b.Chain {
			return a.Chain < b.Chain
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.ICode < b.ICode
	})

	assigned := make(map[int]bool)
	var chains []Chain
	for _, start := range candidates {
		if assigned[start.Index] {
			continue
		}
		chain := Chain{Indices: []int{start.Index}}
		assigned[start.Index] = true

		cur := start
		for {
			next := extend(cur, candidates, assigned)
			if next == nil {
				break
			}
			chain.Indices = append(chain.Indices, next.Index)
			assigned[next.Index] = true
			cur = next
		}
		chains = append(chains, chain)
	}

	return mergeChains(s, chains)
}

// extend finds the unassigned residue bonded downstream of cur.
func extend(cur *pdb.Residue, candidates []*pdb.Residue, assigned map[int]bool) *pdb.Residue {
	for _, r := range candidates {
		if assigned[r.Index] {
			continue
		}
		if Connected(cur, r) > 0 {
			return r
		}
	}
	return nil
}

// mergeChains joins chains whose facing termini are within the merge
// threshold, bridging chain breaks from missing backbone atoms.
func mergeChains(s *pdb.Structure, chains []Chain) []Chain {
	for {
		merged := false
		for i := 0; i < len(chains) && !merged; i++ {
			for j := i + 1; j < len(chains) && !merged; j++ {
				if terminiClose(s, chains[i], chains[j]) {
					chains[i].Indices = append(chains[i].Indices, chains[j].Indices...)
					chains = append(chains[:j], chains[j+1:]...)
					merged = true
				}
			}
		}
		if !merged {
			return chains
		}
	}
}

// terminiClose measures the tail of a against the head of b using the
// sugar center for nucleotides and C-alpha for amino acids.
func terminiClose(s *pdb.Structure, a, b Chain) bool {
	tail, ok1 := s.ResidueByIndex(a.Indices[len(a.Indices)-1])
	head, ok2 := s.ResidueByIndex(b.Indices[0])
	if !ok1 || !ok2 {
		return false
	}
	if tail.Chain != head.Chain {
		return false
	}
	p1, ok1 := residueAnchor(tail)
	p2, ok2 := residueAnchor(head)
	if !ok1 || !ok2 {
		return false
	}
	return p1.Dist(p2) < chainMergeMax
}

func residueAnchor(r *pdb.Residue) (pos geom.Vec, ok bool) {
	if pdb.IsNucleotide(r) {
		return pdb.SugarCenter(r)
	}
	if ca, found := r.Atom("CA"); found {
		return ca.Pos, true
	}
	return pos, false
}
