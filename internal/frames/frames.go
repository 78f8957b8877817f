package frames

import (
	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// MinMatchedAtoms is the smallest number of template atoms that must be
// present in a residue for a frame fit to be attempted.
const MinMatchedAtoms = 3

// Calculator attaches reference frames to nucleotide residues.
type Calculator struct {
	includeC1 bool
	logger    *zap.Logger
}

// NewCalculator creates a frame calculator using the base-ring templates.
func NewCalculator() *Calculator {
	return &Calculator{logger: zap.NewNop()}
}

// SetIncludeC1 switches to the nucleic-acid template variant that fits C1'
// together with the ring atoms.
func (c *Calculator) SetIncludeC1(include bool) {
	c.includeC1 = include
}

// SetLogger sets the logger for per-residue diagnostics.
func (c *Calculator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// ResidueFrame computes and attaches the reference frame for one residue.
// It reports false when the residue has no recognized base identity or too
// few matching ring atoms; that is an expected outcome, not an error, and
// leaves any existing frame untouched.
func (c *Calculator) ResidueFrame(r *pdb.Residue) bool {
	base := pdb.BaseCode(r)
	if base == 0 {
		return false
	}
	tmpl, ok := For(base, c.includeC1)
	if !ok {
		return false
	}

	var std, exp []geom.Vec
	for i, name := range tmpl.Names {
		if a, found := r.Atom(name); found {
			std = append(std, tmpl.Coords[i])
			exp = append(exp, a.Pos)
		}
	}
	if len(std) < MinMatchedAtoms {
		c.logger.Debug("too few ring atoms for frame",
			zap.String("residue", r.Name),
			zap.Int("index", r.Index),
			zap.Int("matched", len(std)))
		return false
	}

	fit, err := geom.Fit(std, exp)
	if err != nil {
		// Unreachable with the length check above; kept for safety.
		return false
	}

	r.Frame = &pdb.Frame{
		Rotation: fit.Rotation,
		// The template origin is the standard-frame origin, so the fitted
		// translation is the frame origin in experimental coordinates.
		Origin: fit.Translation,
	}
	r.FrameRMS = fit.RMS
	r.FrameAtoms = len(std)
	return true
}

// AllFrames computes frames for every residue of the structure and returns
// the number of frames attached. Rerunning overwrites frames
// deterministically.
func (c *Calculator) AllFrames(s *pdb.Structure) int {
	count := 0
	for _, r := range s.Residues() {
		r.Frame = nil
		r.FrameRMS = 0
		r.FrameAtoms = 0
		if c.ResidueFrame(r) {
			count++
		}
	}
	c.logger.Info("reference frames computed",
		zap.Int("frames", count),
		zap.Int("residues", s.NumResidues()))
	return count
}
