package pair

import (
	"math"

	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/frames"
	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// dNNSentinel stands in for the glycosidic-nitrogen distance when either
// nitrogen is missing; it is large enough to pass the lower-bound check.
const dNNSentinel = 1e6

// Checks records the pass/fail outcome of each geometric criterion.
type Checks struct {
	Distance   bool
	Vertical   bool
	PlaneAngle bool
	NNDist     bool
	Overlap    bool
	HBonds     bool
}

// Result holds everything computed while validating one candidate pair.
// It is ephemeral: the finder consumes it immediately for selection.
type Result struct {
	// HasFrames is false when either residue lacks a reference frame; all
	// other fields are zero in that case.
	HasFrames bool
	Valid     bool
	Checks    Checks

	// Direction cosines between the two frames' axes. DirZ < 0 means the
	// bases face each other.
	DirX, DirY, DirZ float64

	Dorg       float64
	Dv         float64
	PlaneAngle float64
	DNN        float64
	Overlap    float64

	HBonds        []hbond.Bond
	BaseHBonds    int
	O2PrimeHBonds int

	// Score is dorg + 2*d_v + angle/20; lower is better. Recorded even for
	// invalid pairs, for diagnostics.
	Score float64
}

// Validator evaluates the fixed battery of geometric and hydrogen-bond
// checks for candidate base pairs. It is safe for concurrent use: a
// validation call reads shared thresholds and never mutates them.
type Validator struct {
	cfg    Config
	det    *hbond.Detector
	logger *zap.Logger
}

// NewValidator creates a validator with the given thresholds.
func NewValidator(cfg Config) *Validator {
	return &Validator{
		cfg:    cfg,
		det:    hbond.NewDetector(cfg.HBond),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for validation diagnostics.
func (v *Validator) SetLogger(l *zap.Logger) {
	v.logger = l
}

// Validate runs every check for one candidate pair. A residue without a
// frame produces an explicitly invalid result rather than an error; that is
// the expected common case during a bulk scan. All quantities are computed
// even when an early check fails, so diagnostics are always complete.
func (v *Validator) Validate(r1, r2 *pdb.Residue) Result {
	if r1.Frame == nil || r2.Frame == nil {
		return Result{}
	}
	f1, f2 := *r1.Frame, *r2.Frame

	res := Result{HasFrames: true}
	res.DirX = f1.X().Dot(f2.X())
	res.DirY = f1.Y().Dot(f2.Y())
	res.DirZ = f1.Z().Dot(f2.Z())

	d := f2.Origin.Sub(f1.Origin)
	res.Dorg = d.Norm()

	// Out-of-plane offset against the averaged base normal.
	zave := averagedNormal(f1, f2)
	res.Dv = math.Abs(d.Dot(zave))

	res.PlaneAngle = foldAngle(geom.Angle(f1.Z(), f2.Z()))
	res.DNN = glycosidicDistance(r1, r2)
	res.Overlap = v.ringOverlap(r1, r2, f1, f2, zave)

	res.HBonds = v.det.Detect(r1, r2, true)
	res.BaseHBonds, res.O2PrimeHBonds = hbond.CountByKind(res.HBonds)

	c := &res.Checks
	c.Distance = res.Dorg >= v.cfg.MinDorg && res.Dorg <= v.cfg.MaxDorg
	c.Vertical = res.Dv <= v.cfg.MaxDv
	c.PlaneAngle = res.PlaneAngle <= v.cfg.MaxPlaneAngle
	c.NNDist = res.DNN >= v.cfg.MinDNN
	c.Overlap = res.Overlap < v.cfg.MaxOverlap
	c.HBonds = res.BaseHBonds >= v.cfg.MinBaseHBonds
	res.Valid = c.Distance && c.Vertical && c.PlaneAngle && c.NNDist && c.Overlap && c.HBonds

	res.Score = res.Dorg + 2.0*res.Dv + res.PlaneAngle/20.0
	return res
}

// averagedNormal returns the unit mean of the two base normals, with the
// second flipped when the bases face each other so the normals reinforce.
func averagedNormal(f1, f2 pdb.Frame) geom.Vec {
	z2 := f2.Z()
	if f1.Z().Dot(z2) < 0 {
		z2 = z2.Neg()
	}
	return f1.Z().Add(z2).Normalize()
}

// foldAngle maps an angle in [0, 180] into [0, 90].
func foldAngle(a float64) float64 {
	if a > 90 {
		return 180 - a
	}
	return a
}

// glycosidicDistance is the N9/N1-to-N9/N1 distance, or the sentinel when
// either glycosidic nitrogen is unavailable.
func glycosidicDistance(r1, r2 *pdb.Residue) float64 {
	n1, ok1 := pdb.GlycosidicNitrogen(r1)
	n2, ok2 := pdb.GlycosidicNitrogen(r2)
	if !ok1 || !ok2 {
		return dNNSentinel
	}
	return n1.Pos.Dist(n2.Pos)
}

// ringOverlap projects both base rings onto the averaged mean plane and
// returns the intersection area of their convex outlines.
func (v *Validator) ringOverlap(r1, r2 *pdb.Residue, f1, f2 pdb.Frame, zave geom.Vec) float64 {
	origin := f1.Origin.Add(f2.Origin).Scale(0.5)
	u, w := geom.PlaneBasis(zave)

	p1 := projectRing(r1, origin, u, w)
	p2 := projectRing(r2, origin, u, w)
	if len(p1) < 3 || len(p2) < 3 {
		return 0
	}
	return geom.OverlapArea(geom.ConvexHull(p1), geom.ConvexHull(p2))
}

func projectRing(r *pdb.Residue, origin, u, w geom.Vec) []geom.Point2 {
	var pts []geom.Point2
	for _, name := range frames.RingAtoms(pdb.BaseCode(r)) {
		if a, ok := r.Atom(name); ok {
			pts = append(pts, geom.ProjectToPlane(a.Pos, origin, u, w))
		}
	}
	return pts
}
