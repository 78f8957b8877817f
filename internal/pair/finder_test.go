package pair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// duplexWithDecoy builds two well-separated A-U pairs plus a decoy uracil
// hovering near the first adenine with a slightly worse geometry.
func duplexWithDecoy() *pdb.Structure {
	s := &pdb.Structure{ID: "synthetic"}
	s.AddResidue(placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6))
	s.AddResidue(placeBase('U', 2, flipped, geom.Vec{}, uracilO4))
	s.AddResidue(placeBase('A', 3, geom.Identity, geom.Vec{X: 30}, adenineN6))
	s.AddResidue(placeBase('U', 4, flipped, geom.Vec{X: 30}, uracilO4))
	s.AddResidue(placeBase('U', 5, flipped, geom.Vec{X: 0.3, Y: 0.3}, uracilO4))
	return s
}

func TestFindPairs_MutualBestMatch(t *testing.T) {
	s := duplexWithDecoy()
	f := NewFinder(DefaultConfig())
	f.SetWorkers(2)

	pairs := f.FindPairs(s)
	require.Len(t, pairs, 2)

	assert.Equal(t, 1, pairs[0].Index1)
	assert.Equal(t, 2, pairs[0].Index2)
	assert.Equal(t, 3, pairs[1].Index1)
	assert.Equal(t, 4, pairs[1].Index2)
	assert.Equal(t, BPTypeWC, pairs[0].TypeID)
	assert.Equal(t, BPTypeWC, pairs[1].TypeID)

	// The decoy pairs validly with residue 1 but loses the mutual-best
	// contest and must stay unmatched.
	seen := make(map[int]bool)
	for _, p := range pairs {
		assert.False(t, seen[p.Index1])
		assert.False(t, seen[p.Index2])
		seen[p.Index1] = true
		seen[p.Index2] = true
	}
	assert.False(t, seen[5])
}

func TestFindPairs_Deterministic(t *testing.T) {
	s := duplexWithDecoy()
	f := NewFinder(DefaultConfig())

	first := f.FindPairs(s)
	second := f.FindPairs(s)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Index1, second[i].Index1)
		assert.Equal(t, first[i].Index2, second[i].Index2)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestAllPairs_KeepsCompetingPairs(t *testing.T) {
	s := &pdb.Structure{ID: "competing"}
	s.AddResidue(placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6))
	s.AddResidue(placeBase('U', 2, flipped, geom.Vec{}, uracilO4))
	s.AddResidue(placeBase('U', 3, flipped, geom.Vec{X: 0.3, Y: 0.3}, uracilO4))

	f := NewFinder(DefaultConfig())
	pairs := f.AllPairs(s)
	require.Len(t, pairs, 2)

	// Residue 1 appears in both; ordering is by index.
	assert.Equal(t, Key{1, 2}, MakeKey(pairs[0].Index1, pairs[0].Index2))
	assert.Equal(t, Key{1, 3}, MakeKey(pairs[1].Index1, pairs[1].Index2))
}

type memRecorder struct {
	snaps []Snapshot
}

func (m *memRecorder) Record(s Snapshot) error {
	m.snaps = append(m.snaps, s)
	return nil
}

func TestFindPairsWithRecording_StreamsEveryCandidate(t *testing.T) {
	s := &pdb.Structure{ID: "rec"}
	s.AddResidue(placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6))
	s.AddResidue(placeBase('U', 2, flipped, geom.Vec{}, uracilO4))
	s.AddResidue(placeBase('U', 3, flipped, geom.Vec{X: 0.3, Y: 0.3}, uracilO4))

	rec := &memRecorder{}
	f := NewFinder(DefaultConfig())
	f.SetWorkers(4)

	pairs, err := f.FindPairsWithRecording(s, rec)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	// Every candidate is recorded in deterministic scan order, whatever the
	// worker count.
	require.Len(t, rec.snaps, 3)
	assert.Equal(t, Key{1, 2}, MakeKey(rec.snaps[0].Index1, rec.snaps[0].Index2))
	assert.Equal(t, Key{1, 3}, MakeKey(rec.snaps[1].Index1, rec.snaps[1].Index2))
	assert.Equal(t, Key{2, 3}, MakeKey(rec.snaps[2].Index1, rec.snaps[2].Index2))
	assert.Equal(t, "A", rec.snaps[0].Name1)
	assert.Equal(t, "U", rec.snaps[0].Name2)
	assert.True(t, rec.snaps[0].Result.Valid)
	assert.False(t, rec.snaps[2].Result.Valid, "two stacked uracils must not validate")
}

type failRecorder struct{}

func (failRecorder) Record(Snapshot) error { return errors.New("sink closed") }

func TestFindPairsWithRecording_PropagatesSinkError(t *testing.T) {
	s := duplexWithDecoy()
	f := NewFinder(DefaultConfig())

	_, err := f.FindPairsWithRecording(s, failRecorder{})
	require.Error(t, err)
}

func TestFindPairs_SkipsFramelessResidues(t *testing.T) {
	s := &pdb.Structure{ID: "frameless"}
	s.AddResidue(placeBase('A', 1, geom.Identity, geom.Vec{}, adenineN6))
	u := placeBase('U', 2, flipped, geom.Vec{}, uracilO4)
	u.Frame = nil
	s.AddResidue(u)

	f := NewFinder(DefaultConfig())
	assert.Empty(t, f.FindPairs(s))
}

func TestAdjustedScore(t *testing.T) {
	f := NewFinder(DefaultConfig())

	good := hbond.Bond{Class: hbond.Standard, Distance: 3.0}
	short := hbond.Bond{Class: hbond.Standard, Distance: 2.0}
	nonStd := hbond.Bond{Class: hbond.NonStandard, Distance: 3.0}

	tests := []struct {
		name   string
		bonds  []hbond.Bond
		typeID int
		want   float64
	}{
		{"two good plus wc", []hbond.Bond{good, good}, BPTypeWC, 1.0 - 3.0 - 2.0},
		{"one good", []hbond.Bond{good}, BPTypeInvalid, 1.0 - 1.0},
		{"short bond not good", []hbond.Bond{short}, BPTypeInvalid, 1.0},
		{"non-standard ignored", []hbond.Bond{nonStd, nonStd}, BPTypeInvalid, 1.0},
		{"wc alone", nil, BPTypeWC, 1.0 - 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Result{Score: 1.0, HBonds: tt.bonds}
			assert.InDelta(t, tt.want, f.adjustedScore(res, tt.typeID), 1e-12)
		})
	}
}
