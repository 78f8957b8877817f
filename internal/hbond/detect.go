package hbond

import (
	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Classification is the outcome of the donor/acceptor analysis for one bond.
type Classification int8

const (
	Unclassified Classification = iota
	Standard
	NonStandard
	// Invalid marks bonds beyond the post-filter distance ceiling; they are
	// kept in the record for diagnostics but excluded from counts.
	Invalid
)

// String returns a short label for the classification.
func (c Classification) String() string {
	switch c {
	case Standard:
		return "standard"
	case NonStandard:
		return "non-standard"
	case Invalid:
		return "invalid"
	}
	return "unclassified"
}

// Bond is one detected hydrogen bond between two residues. Atom1 belongs to
// the first residue passed to Detect, Atom2 to the second.
type Bond struct {
	Atom1, Atom2 string
	Role1, Role2 Role
	Distance     float64
	Class        Classification
	// Angle1/Angle2 are the approach angles at each atom relative to its
	// nearest covalently bound neighbor, when angle scoring is enabled.
	Angle1, Angle2 float64
}

// Config holds the distance windows of the detection pipeline. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// MinDist is the global floor rejecting covalent-bond-distance
	// false positives.
	MinDist float64
	// MaxDistBase bounds base-base candidates; it is the tighter window.
	// MaxDistBackbone is the looser ceiling applied when either atom
	// belongs to the backbone.
	MaxDistBase     float64
	MaxDistBackbone float64
	// MaxDistValid is the looser post-filter ceiling; surviving bonds
	// beyond it are marked Invalid.
	MaxDistValid float64
	// Elements restricts candidate atoms; empty means O and N.
	Elements []string
	// ComputeAngles enables the optional approach-angle scoring.
	ComputeAngles bool
}

// DefaultConfig returns the legacy-compatible detection thresholds.
func DefaultConfig() Config {
	return Config{
		MinDist:         1.8,
		MaxDistBase:     3.5,
		MaxDistBackbone: 4.0,
		MaxDistValid:    4.0,
	}
}

// Detector runs the four-stage hydrogen-bond pipeline.
type Detector struct {
	cfg    Config
	logger *zap.Logger
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for per-bond diagnostics.
func (d *Detector) SetLogger(l *zap.Logger) {
	d.logger = l
}

// Detect finds the hydrogen bonds between two residues. With baseOnly set,
// only base-moiety atoms and the O2' hydroxyl are considered; O2' bonds
// are tallied apart from the base-base count by CountByKind. Every stage
// runs even when a previous one found nothing, so the result is always
// fully classified.
func (d *Detector) Detect(r1, r2 *pdb.Residue, baseOnly bool) []Bond {
	bonds := d.candidates(r1, r2, baseOnly)
	bonds = d.resolveConflicts(r1, r2, bonds)
	d.classify(r1, r2, bonds)
	d.postFilter(bonds)
	return bonds
}

// CountPotential runs only the candidate and conflict stages and returns
// the surviving bond count. Used as a cheap pre-filter before full
// validation.
func (d *Detector) CountPotential(r1, r2 *pdb.Residue, baseOnly bool) int {
	bonds := d.candidates(r1, r2, baseOnly)
	bonds = d.resolveConflicts(r1, r2, bonds)
	return len(bonds)
}

// CountByKind splits classified bonds into base-base bonds and bonds
// involving an O2' hydroxyl, skipping Invalid entries.
func CountByKind(bonds []Bond) (base, o2prime int) {
	for _, b := range bonds {
		if b.Class == Invalid {
			continue
		}
		if b.Atom1 == "O2'" || b.Atom2 == "O2'" {
			o2prime++
			continue
		}
		base++
	}
	return base, o2prime
}

// Stage 1: candidate detection by element, backbone exclusion and the
// context-dependent distance window.
func (d *Detector) candidates(r1, r2 *pdb.Residue, baseOnly bool) []Bond {
	var out []Bond
	for _, a1 := range r1.Atoms {
		if !d.allowedElement(a1) || (baseOnly && baseOnlyExcluded(a1)) {
			continue
		}
		for _, a2 := range r2.Atoms {
			if !d.allowedElement(a2) || (baseOnly && baseOnlyExcluded(a2)) {
				continue
			}
			// Phosphate-oxygen pairs are never hydrogen bonded to each
			// other, whatever the distance.
			if a1.IsPhosphateOxygen() && a2.IsPhosphateOxygen() {
				continue
			}
			dist := a1.Pos.Dist(a2.Pos)
			if dist < d.cfg.MinDist {
				continue
			}
			limit := d.cfg.MaxDistBase
			if a1.IsBackbone() || a2.IsBackbone() {
				limit = d.cfg.MaxDistBackbone
			}
			if dist > limit {
				continue
			}
			out = append(out, Bond{Atom1: a1.Name, Atom2: a2.Name, Distance: dist})
		}
	}
	return out
}

// baseOnlyExcluded reports whether an atom sits out of base-only
// detection. The O2' hydroxyl stays in: its bonds feed the separate O2'
// tally rather than the base-base count.
func baseOnlyExcluded(a *pdb.Atom) bool {
	return a.IsBackbone() && a.Name != "O2'"
}

func (d *Detector) allowedElement(a *pdb.Atom) bool {
	if len(d.cfg.Elements) == 0 {
		return a.Element == "O" || a.Element == "N"
	}
	for _, e := range d.cfg.Elements {
		if a.Element == e {
			return true
		}
	}
	return false
}

// Stage 2: conflict resolution. First the longest of any two bonds sharing
// an atom loses, repeated until every atom keeps at most one bond; then
// bonds whose donor/acceptor linkage type is disallowed are dropped.
func (d *Detector) resolveConflicts(r1, r2 *pdb.Residue, bonds []Bond) []Bond {
	alive := make([]bool, len(bonds))
	for i := range alive {
		alive[i] = true
	}

	for {
		loser := d.findConflictLoser(bonds, alive)
		if loser < 0 {
			break
		}
		alive[loser] = false
	}

	var out []Bond
	for i, b := range bonds {
		if !alive[i] {
			continue
		}
		a1, _ := r1.Atom(b.Atom1)
		a2, _ := r2.Atom(b.Atom2)
		if a1 != nil && a2 != nil {
			lt := linkageType(roleFor(r1, a1), roleFor(r2, a2))
			if disallowedLinkages[lt] {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// findConflictLoser returns the index of the longest bond that shares an
// atom with a shorter surviving bond, or -1 when no conflicts remain.
func (d *Detector) findConflictLoser(bonds []Bond, alive []bool) int {
	loser := -1
	for i := range bonds {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < len(bonds); j++ {
			if !alive[j] {
				continue
			}
			if bonds[i].Atom1 != bonds[j].Atom1 && bonds[i].Atom2 != bonds[j].Atom2 {
				continue
			}
			k := i
			if bonds[j].Distance > bonds[i].Distance {
				k = j
			}
			if loser < 0 || bonds[k].Distance > bonds[loser].Distance {
				loser = k
			}
		}
	}
	return loser
}

// Stage 3: donor/acceptor classification against the per-base role tables.
func (d *Detector) classify(r1, r2 *pdb.Residue, bonds []Bond) {
	for i := range bonds {
		b := &bonds[i]
		a1, ok1 := r1.Atom(b.Atom1)
		a2, ok2 := r2.Atom(b.Atom2)
		if !ok1 || !ok2 {
			b.Class = NonStandard
			continue
		}
		b.Role1 = roleFor(r1, a1)
		b.Role2 = roleFor(r2, a2)
		if b.Role1 == RoleUnknown || b.Role2 == RoleUnknown {
			b.Class = NonStandard
		} else if standardCombination(b.Role1, b.Role2) {
			b.Class = Standard
		} else {
			b.Class = NonStandard
		}
		if d.cfg.ComputeAngles {
			b.Angle1 = approachAngle(r1, a1, a2.Pos)
			b.Angle2 = approachAngle(r2, a2, a1.Pos)
		}
	}
}

// Stage 4: post-filtering against the looser validity ceiling.
func (d *Detector) postFilter(bonds []Bond) {
	if d.cfg.MaxDistValid <= 0 {
		return
	}
	for i := range bonds {
		if bonds[i].Distance > d.cfg.MaxDistValid {
			bonds[i].Class = Invalid
		}
	}
}

// approachAngle measures the angle at atom a between its nearest covalent
// neighbor and the partner position; 0 when no neighbor is within covalent
// range.
func approachAngle(r *pdb.Residue, a *pdb.Atom, partner geom.Vec) float64 {
	const covalentMax = 1.7
	var nearest *pdb.Atom
	best := covalentMax
	for _, other := range r.Atoms {
		if other == a {
			continue
		}
		if dist := other.Pos.Dist(a.Pos); dist < best {
			best = dist
			nearest = other
		}
	}
	if nearest == nil {
		return 0
	}
	return geom.Angle(nearest.Pos.Sub(a.Pos), partner.Sub(a.Pos))
}
