package pair

import (
	"math"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Params are the six rigid-body parameters between two reference frames.
// For a dinucleotide step they read shift/slide/rise/tilt/roll/twist; the
// same slots carry shear/stretch/stagger/buckle/propeller/opening when the
// two frames belong to one base pair.
type Params struct {
	Shift float64
	Slide float64
	Rise  float64
	Tilt  float64
	Roll  float64
	Twist float64
}

// StepParams computes the step parameters carrying frame f1 onto f2,
// together with the middle frame of the step. Both input frames must be
// orthonormal; they are not modified.
func StepParams(f1, f2 pdb.Frame) (Params, pdb.Frame) {
	z1, z2 := f1.Z(), f2.Z()

	// Fold the two z-axes onto a common middle z by rotating each frame
	// half the roll-tilt angle about their hinge.
	hinge := z1.Cross(z2)
	rollTilt := geom.Angle(z1, z2)

	r1 := geom.RotationAbout(hinge, rollTilt/2).Mul(f1.Rotation)
	r2 := geom.RotationAbout(hinge, -rollTilt/2).Mul(f2.Rotation)

	mx := r1.Col(0).Add(r2.Col(0)).Normalize()
	my := r1.Col(1).Add(r2.Col(1)).Normalize()
	mz := r1.Col(2).Add(r2.Col(2)).Normalize()
	mid := pdb.Frame{
		Rotation: geom.FromCols(mx, my, mz),
		Origin:   f1.Origin.Add(f2.Origin).Scale(0.5),
	}

	twist := geom.SignedAngle(r1.Col(1), r2.Col(1), mz)

	// Decompose roll-tilt by the hinge phase relative to the middle frame.
	phase := geom.SignedAngle(hinge, my, mz)
	roll := rollTilt * cosDeg(phase)
	tilt := rollTilt * sinDeg(phase)

	d := f2.Origin.Sub(f1.Origin)
	return Params{
		Shift: d.Dot(mx),
		Slide: d.Dot(my),
		Rise:  d.Dot(mz),
		Tilt:  tilt,
		Roll:  roll,
		Twist: twist,
	}, mid
}

// PairParams computes the base-pair parameters (shear, stretch, stagger,
// buckle, propeller, opening) between the frames of two paired bases. For
// anti-parallel bases the second frame's y/z axes are flipped transiently;
// the stored frames are untouched.
func PairParams(f1, f2 pdb.Frame) (Params, pdb.Frame) {
	g2 := f2
	if f1.Z().Dot(f2.Z()) < 0 {
		g2 = f2.FlipYZ()
	}
	return StepParams(g2, f1)
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
