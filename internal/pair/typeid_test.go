package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// frameOnly builds a residue carrying just a base identity and a frame;
// classification reads nothing else.
func frameOnly(name string, rot geom.Matrix, origin geom.Vec) *pdb.Residue {
	return &pdb.Residue{
		Name:  name,
		Kind:  pdb.KindRNA,
		Frame: &pdb.Frame{Rotation: rot, Origin: origin},
	}
}

func TestTypeID_WatsonCrick(t *testing.T) {
	tests := []struct {
		b1, b2 string
	}{
		{"A", "U"}, {"U", "A"}, {"G", "C"}, {"C", "G"}, {"A", "T"}, {"T", "A"},
	}
	for _, tt := range tests {
		r1 := frameOnly(tt.b1, geom.Identity, geom.Vec{})
		r2 := frameOnly(tt.b2, flipped, geom.Vec{})
		assert.Equal(t, BPTypeWC, TypeID(r1, r2), "%s-%s", tt.b1, tt.b2)
	}
}

func TestTypeID_NonComplementary(t *testing.T) {
	g := frameOnly("G", geom.Identity, geom.Vec{})
	u := frameOnly("U", flipped, geom.Vec{X: 0.5})
	assert.Equal(t, BPTypeInvalid, TypeID(g, u), "small shear, not complementary")
}

func TestTypeID_Preconditions(t *testing.T) {
	a := frameOnly("A", geom.Identity, geom.Vec{})
	u := frameOnly("U", flipped, geom.Vec{})

	noFrame := frameOnly("U", flipped, geom.Vec{})
	noFrame.Frame = nil
	assert.Equal(t, BPTypeUnknown, TypeID(a, noFrame))
	assert.Equal(t, BPTypeUnknown, TypeID(noFrame, a))

	// Parallel frames violate the direction precondition.
	parallel := frameOnly("U", geom.Identity, geom.Vec{})
	assert.Equal(t, BPTypeUnknown, TypeID(a, parallel))

	// The canonical arrangement passes it.
	assert.Equal(t, BPTypeWC, TypeID(a, u))
}

func TestTypeID_StretchWindow(t *testing.T) {
	a := frameOnly("A", geom.Identity, geom.Vec{})
	u := frameOnly("U", flipped, geom.Vec{Y: 3.0})
	assert.Equal(t, BPTypeInvalid, TypeID(a, u))
}

func TestTypeID_OpeningWindow(t *testing.T) {
	a := frameOnly("A", geom.Identity, geom.Vec{})
	rot := geom.RotationAbout(geom.Vec{Z: 1}, 70).Mul(flipped)
	u := frameOnly("U", rot, geom.Vec{})
	assert.Equal(t, BPTypeInvalid, TypeID(a, u))
}

func TestTypeID_WobbleWindows(t *testing.T) {
	tests := []struct {
		name   string
		b1, b2 string
		shear  float64
		want   int
	}{
		{"G-U keto first", "G", "U", 2.2, BPTypeWobble},
		{"I-U keto first", "I", "U", 2.2, BPTypeWobble},
		{"U-G enol first", "U", "G", -2.2, BPTypeWobble},
		{"T-G enol first", "T", "G", -2.2, BPTypeWobble},
		{"G-U wrong sign", "G", "U", -2.2, BPTypeInvalid},
		{"U-G wrong sign", "U", "G", 2.2, BPTypeInvalid},
		{"G-U beyond window", "G", "U", 3.0, BPTypeInvalid},
		{"A-U sheared", "A", "U", 2.2, BPTypeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1 := frameOnly(tt.b1, geom.Identity, geom.Vec{})
			r2 := frameOnly(tt.b2, flipped, geom.Vec{X: tt.shear})
			assert.Equal(t, tt.want, TypeID(r1, r2))
		})
	}
}

// The shear fed into the wobble window comes from the shift slot of the
// raw step parameters, so its sign follows the first residue's x-axis.
// Swapping the arguments flips the displacement and lands in the mirrored
// window; both orders of the same physical pair classify as wobble.
func TestTypeID_WobbleOrderIndependent(t *testing.T) {
	g := frameOnly("G", geom.Identity, geom.Vec{})
	u := frameOnly("U", flipped, geom.Vec{X: 2.2})

	assert.Equal(t, BPTypeWobble, TypeID(g, u))
	assert.Equal(t, BPTypeWobble, TypeID(u, g))
}
