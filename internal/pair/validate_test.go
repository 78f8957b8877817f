package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyesselm/find-pair-sub002/internal/frames"
	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

type extraAtom struct {
	name string
	pos  geom.Vec // standard-frame coordinates
}

// exocyclic atoms needed for the Watson-Crick hydrogen bonds, in
// standard-frame coordinates.
var (
	adenineN6 = extraAtom{"N6", geom.Vec{X: 1.63, Y: 0.96}}
	uracilO4  = extraAtom{"O4", geom.Vec{X: 1.99, Y: 2.17}}
)

// flipped is the frame rotation of the second base of an anti-parallel
// pair: 180 degrees about x.
var flipped = geom.RotationAbout(geom.Vec{X: 1}, 180)

// placeBase builds a residue of the given base with its ring atoms (plus
// extras) generated from the standard template at the given placement. The
// frame is attached directly so tests control it exactly.
func placeBase(base byte, seq int, rot geom.Matrix, origin geom.Vec, extras ...extraAtom) *pdb.Residue {
	tmpl, ok := frames.For(base, false)
	if !ok {
		panic("unknown base")
	}
	r := &pdb.Residue{
		Name:  string(base),
		Seq:   seq,
		Chain: "A",
		Kind:  pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: rot, Origin: origin},
	}
	for i, name := range tmpl.Names {
		r.Atoms = append(r.Atoms, &pdb.Atom{
			Name:    name,
			Element: name[:1],
			Pos:     rot.MulVec(tmpl.Coords[i]).Add(origin),
		})
	}
	for _, e := range extras {
		r.Atoms = append(r.Atoms, &pdb.Atom{
			Name:    e.name,
			Element: e.name[:1],
			Pos:     rot.MulVec(e.pos).Add(origin),
		})
	}
	return r
}

// wcAU builds an idealized anti-parallel A-U pair sharing one origin.
func wcAU(offset geom.Vec) (*pdb.Residue, *pdb.Residue) {
	a := placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6)
	u := placeBase('U', 2, flipped, offset, uracilO4)
	return a, u
}

func TestValidate_WatsonCrickPair(t *testing.T) {
	a, u := wcAU(geom.Vec{})

	v := NewValidator(DefaultConfig())
	res := v.Validate(a, u)

	require.True(t, res.HasFrames)
	assert.True(t, res.Valid)
	assert.True(t, res.Checks.Distance)
	assert.True(t, res.Checks.Vertical)
	assert.True(t, res.Checks.PlaneAngle)
	assert.True(t, res.Checks.NNDist)
	assert.True(t, res.Checks.Overlap)
	assert.True(t, res.Checks.HBonds)

	assert.Greater(t, res.DirX, 0.0)
	assert.Less(t, res.DirY, 0.0)
	assert.Less(t, res.DirZ, 0.0)

	assert.InDelta(t, 0, res.Dorg, 1e-9)
	assert.InDelta(t, 0, res.Dv, 1e-9)
	assert.InDelta(t, 0, res.PlaneAngle, 1e-6)
	assert.InDelta(t, 9.0, res.DNN, 0.1)
	assert.InDelta(t, 0, res.Overlap, 1e-9)

	// N1-N3 and N6-O4; the crossed alternatives lose conflict resolution.
	assert.Equal(t, 2, res.BaseHBonds)
	assert.Zero(t, res.O2PrimeHBonds)
	assert.InDelta(t, 0, res.Score, 1e-9)
}

func TestValidate_O2PrimeBondsCountedSeparately(t *testing.T) {
	// A ribose hydroxyl within range of N3 contributes to the O2' tally
	// without touching the base-base count.
	a := placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6)
	u := placeBase('U', 2, flipped, geom.Vec{}, uracilO4,
		extraAtom{"O2'", geom.Vec{X: -2.32, Y: -5.29}})

	v := NewValidator(DefaultConfig())
	res := v.Validate(a, u)

	require.True(t, res.Valid)
	assert.Equal(t, 2, res.BaseHBonds)
	assert.Equal(t, 1, res.O2PrimeHBonds)
}

func TestValidate_Symmetric(t *testing.T) {
	a, u := wcAU(geom.Vec{X: 0.4, Y: 0.2, Z: 0.3})

	v := NewValidator(DefaultConfig())
	fwd := v.Validate(a, u)
	rev := v.Validate(u, a)

	assert.Equal(t, fwd.Valid, rev.Valid)
	assert.InDelta(t, fwd.Dorg, rev.Dorg, 1e-12)
	assert.InDelta(t, fwd.Dv, rev.Dv, 1e-12)
	assert.InDelta(t, fwd.PlaneAngle, rev.PlaneAngle, 1e-9)
	assert.InDelta(t, fwd.DNN, rev.DNN, 1e-12)
	assert.InDelta(t, fwd.Overlap, rev.Overlap, 1e-9)
	assert.Equal(t, fwd.BaseHBonds, rev.BaseHBonds)
	assert.InDelta(t, fwd.Score, rev.Score, 1e-9)
}

func TestValidate_FarApart(t *testing.T) {
	a, u := wcAU(geom.Vec{X: 20})

	v := NewValidator(DefaultConfig())
	res := v.Validate(a, u)

	require.True(t, res.HasFrames)
	assert.False(t, res.Valid)
	assert.False(t, res.Checks.Distance)
	assert.InDelta(t, 20, res.Dorg, 1e-9)
	// All quantities are still computed for diagnostics.
	assert.True(t, res.Checks.Vertical)
	assert.True(t, res.Checks.PlaneAngle)
	assert.Zero(t, res.BaseHBonds)
}

func TestValidate_StackedBasesRejected(t *testing.T) {
	// Two parallel bases one rise apart overlap when projected; stacking
	// must not read as pairing.
	a1 := placeBase('A', 1, geom.Identity, geom.Vec{})
	rot := geom.RotationAbout(geom.Vec{Z: 1}, 36)
	a2 := placeBase('A', 2, rot, geom.Vec{Z: 3.4})

	v := NewValidator(DefaultConfig())
	res := v.Validate(a1, a2)

	require.True(t, res.HasFrames)
	assert.False(t, res.Valid)
	assert.False(t, res.Checks.Overlap)
	assert.Greater(t, res.Overlap, DefaultConfig().MaxOverlap)
}

func TestValidate_MissingFrame(t *testing.T) {
	a := placeBase('A', 1, geom.Identity, geom.Vec{})
	u := placeBase('U', 2, flipped, geom.Vec{})
	u.Frame = nil

	v := NewValidator(DefaultConfig())
	res := v.Validate(a, u)
	assert.False(t, res.HasFrames)
	assert.False(t, res.Valid)
	assert.Zero(t, res.Dorg)
}

func TestValidate_TiltedPlane(t *testing.T) {
	// A 70-degree inter-plane angle exceeds the 65-degree ceiling.
	rot := flipped.Mul(geom.RotationAbout(geom.Vec{Y: 1}, 70))
	a := placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6)
	u := placeBase('U', 2, rot, geom.Vec{}, uracilO4)

	v := NewValidator(DefaultConfig())
	res := v.Validate(a, u)
	assert.False(t, res.Checks.PlaneAngle)
	assert.False(t, res.Valid)
	assert.InDelta(t, 70, res.PlaneAngle, 1.0)
}
