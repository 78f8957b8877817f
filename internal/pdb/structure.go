package pdb

// Chain groups the residues sharing one chain identifier, in file order.
type Chain struct {
	ID       string
	Residues []*Residue
}

// Structure is a parsed coordinate file: an owned arena of residues
// addressed by their legacy 1-based index, grouped into chains. All
// analysis components share one Structure and refer to residues by index.
type Structure struct {
	ID     string
	Chains []*Chain

	// residues[i-1] is the residue with legacy index i.
	residues []*Residue
}

// NumResidues returns the residue count.
func (s *Structure) NumResidues() int {
	return len(s.residues)
}

// Residues returns all residues in legacy-index order. The slice is owned
// by the structure; callers must not reorder it.
func (s *Structure) Residues() []*Residue {
	return s.residues
}

// ResidueByIndex returns the residue with the given legacy 1-based index.
func (s *Structure) ResidueByIndex(i int) (*Residue, bool) {
	if i < 1 || i > len(s.residues) {
		return nil, false
	}
	return s.residues[i-1], true
}

// Nucleotides returns the residues eligible for base pairing, in
// legacy-index order.
func (s *Structure) Nucleotides() []*Residue {
	var out []*Residue
	for _, r := range s.residues {
		if IsNucleotide(r) {
			out = append(out, r)
		}
	}
	return out
}

// AddResidue appends a residue to the arena and its chain, assigning the
// next legacy index. The parser calls this in file order; synthetic
// structures can be assembled the same way.
func (s *Structure) AddResidue(r *Residue) {
	r.Index = len(s.residues) + 1
	s.residues = append(s.residues, r)

	if n := len(s.Chains); n > 0 && s.Chains[n-1].ID == r.Chain {
		s.Chains[n-1].Residues = append(s.Chains[n-1].Residues, r)
		return
	}
	s.Chains = append(s.Chains, &Chain{ID: r.Chain, Residues: []*Residue{r}})
}
