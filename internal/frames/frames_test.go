package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// placeResidue builds a residue whose ring atoms sit at the template
// coordinates transformed by rot and origin, so the expected frame is
// known exactly.
func placeResidue(base byte, rot geom.Matrix, origin geom.Vec) *pdb.Residue {
	tmpl, ok := For(base, false)
	if !ok {
		panic("unknown base template")
	}
	r := &pdb.Residue{Name: string(base), Kind: pdb.KindRNA}
	for i, name := range tmpl.Names {
		r.Atoms = append(r.Atoms, &pdb.Atom{
			Name:    name,
			Element: name[:1],
			Pos:     rot.MulVec(tmpl.Coords[i]).Add(origin),
		})
	}
	return r
}

func TestResidueFrame_RecoversPlacement(t *testing.T) {
	rot := geom.RotationAbout(geom.Vec{X: 1, Y: 0.5, Z: -0.25}, 37)
	origin := geom.Vec{X: 12.5, Y: -3, Z: 8}

	for _, base := range []byte{'A', 'G', 'C', 'U', 'T'} {
		r := placeResidue(base, rot, origin)

		calc := NewCalculator()
		require.True(t, calc.ResidueFrame(r), "base %c", base)
		require.NotNil(t, r.Frame)

		assert.InDelta(t, 0, r.FrameRMS, 1e-8)
		assert.InDelta(t, origin.X, r.Frame.Origin.X, 1e-8)
		assert.InDelta(t, origin.Y, r.Frame.Origin.Y, 1e-8)
		assert.InDelta(t, origin.Z, r.Frame.Origin.Z, 1e-8)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, rot[i][j], r.Frame.Rotation[i][j], 1e-8)
			}
		}
	}
}

func TestResidueFrame_Deterministic(t *testing.T) {
	r := placeResidue('G', geom.RotationAbout(geom.Vec{Z: 1}, 85), geom.Vec{X: 3})

	calc := NewCalculator()
	require.True(t, calc.ResidueFrame(r))
	first := *r.Frame
	firstRMS := r.FrameRMS

	require.True(t, calc.ResidueFrame(r))
	assert.Equal(t, first, *r.Frame, "frame must be bit-identical on recompute")
	assert.Equal(t, firstRMS, r.FrameRMS)
}

func TestResidueFrame_TooFewAtoms(t *testing.T) {
	r := placeResidue('A', geom.Identity, geom.Vec{})
	r.Atoms = r.Atoms[:2] // 2 of 9 ring atoms

	calc := NewCalculator()
	assert.False(t, calc.ResidueFrame(r))
	assert.Nil(t, r.Frame)
}

func TestResidueFrame_UnknownBase(t *testing.T) {
	r := &pdb.Residue{Name: "LIG", Kind: pdb.KindLigand}
	calc := NewCalculator()
	assert.False(t, calc.ResidueFrame(r))
}

func TestAllFrames(t *testing.T) {
	s := &pdb.Structure{}
	good := placeResidue('A', geom.Identity, geom.Vec{})
	bad := placeResidue('U', geom.Identity, geom.Vec{X: 30})
	bad.Atoms = bad.Atoms[:2]
	s.AddResidue(good)
	s.AddResidue(bad)

	calc := NewCalculator()
	assert.Equal(t, 1, calc.AllFrames(s))
	assert.NotNil(t, good.Frame)
	assert.Nil(t, bad.Frame)

	// Idempotent: rerun overwrites deterministically.
	first := *good.Frame
	assert.Equal(t, 1, calc.AllFrames(s))
	assert.Equal(t, first, *good.Frame)
}

func TestTemplateC1Variant(t *testing.T) {
	base, ok := For('A', false)
	require.True(t, ok)
	withC1, ok := For('A', true)
	require.True(t, ok)

	assert.Len(t, base.Names, 9, "purine ring")
	assert.Len(t, withC1.Names, 10)
	assert.Equal(t, "C1'", withC1.Names[len(withC1.Names)-1])

	pyr, ok := For('U', false)
	require.True(t, ok)
	assert.Len(t, pyr.Names, 6, "pyrimidine ring")

	_, ok = For('X', false)
	assert.False(t, ok)
}
