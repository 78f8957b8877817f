package pair

import (
	"sort"

	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/hbond"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Key identifies an unordered candidate pair by its two legacy residue
// indices, with I < J.
type Key struct {
	I, J int
}

// MakeKey builds a Key from two legacy indices in either order.
func MakeKey(i, j int) Key {
	if i > j {
		i, j = j, i
	}
	return Key{I: i, J: j}
}

// BasePair is a confirmed, selected base pair. Immutable once created.
type BasePair struct {
	// Index1/Index2 are the legacy 1-based residue indices, Index1 < Index2.
	Index1, Index2 int
	Residue1       *pdb.Residue
	Residue2       *pdb.Residue
	// Frame1/Frame2 capture the residues' frames at selection time.
	Frame1, Frame2 pdb.Frame
	// TypeID is the Watson-Crick/wobble classification (see TypeID).
	TypeID int
	HBonds []hbond.Bond
	// Score is the adjusted quality score the pair was selected with.
	Score float64
}

// Snapshot is one Phase-1 validation outcome streamed to a Recorder. Every
// evaluated candidate is reported, not just selected pairs.
type Snapshot struct {
	Index1, Index2 int
	Name1, Name2   string
	TypeID         int
	AdjustedScore  float64
	Result         Result
}

// Recorder is a write-only sink for validation snapshots. The finder never
// reads back from it; failures abort the run since recording exists for
// reproducibility.
type Recorder interface {
	Record(Snapshot) error
}

// candidate is one cached Phase-1 outcome.
type candidate struct {
	result Result
	typeID int
	score  float64
}

// Finder drives the legacy two-phase pair-selection algorithm: exhaustive
// validation of every candidate pair, then a greedy mutual-best-match walk
// over the cached results.
type Finder struct {
	cfg       Config
	validator *Validator
	workers   int
	logger    *zap.Logger
}

// NewFinder creates a finder with the given thresholds.
func NewFinder(cfg Config) *Finder {
	return &Finder{
		cfg:       cfg,
		validator: NewValidator(cfg),
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for selection diagnostics.
func (f *Finder) SetLogger(l *zap.Logger) {
	f.logger = l
	f.validator.SetLogger(l)
}

// SetWorkers sets the Phase-1 worker count; 0 means one worker per CPU.
func (f *Finder) SetWorkers(n int) {
	f.workers = n
}

// FindPairs runs both phases and returns the selected pairs ordered by
// their first residue index.
func (f *Finder) FindPairs(s *pdb.Structure) []BasePair {
	pairs, _ := f.FindPairsWithRecording(s, nil)
	return pairs
}

// FindPairsWithRecording is FindPairs with every Phase-1 validation outcome
// streamed to rec in deterministic candidate order. A nil recorder disables
// recording without affecting selection.
func (f *Finder) FindPairsWithRecording(s *pdb.Structure, rec Recorder) ([]BasePair, error) {
	nts := s.Nucleotides()
	cache, err := f.phase1(nts, rec)
	if err != nil {
		return nil, err
	}
	pairs := f.phase2(s, nts, cache)
	f.logger.Info("pair selection finished",
		zap.Int("nucleotides", len(nts)),
		zap.Int("candidates", len(cache)),
		zap.Int("pairs", len(pairs)))
	return pairs, nil
}

// AllPairs skips the mutuality requirement and returns every Phase-1-valid
// pair; residues may appear in more than one pair. Used for motif
// exploration rather than duplex assignment.
func (f *Finder) AllPairs(s *pdb.Structure) []BasePair {
	nts := s.Nucleotides()
	cache, _ := f.phase1(nts, nil)

	keys := make([]Key, 0, len(cache))
	for k, c := range cache {
		if c.result.Valid {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].I != keys[b].I {
			return keys[a].I < keys[b].I
		}
		return keys[a].J < keys[b].J
	})

	pairs := make([]BasePair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, f.makePair(s, k, cache[k]))
	}
	return pairs
}

// adjustedScore applies the hydrogen-bond and Watson-Crick bonuses to the
// base quality score. Lower is better.
func (f *Finder) adjustedScore(c Result, typeID int) float64 {
	score := c.Score

	good := 0
	for _, b := range c.HBonds {
		if b.Class != hbond.Standard {
			continue
		}
		if b.Distance >= f.cfg.GoodHBondMin && b.Distance <= f.cfg.GoodHBondMax {
			good++
		}
	}
	if good >= 2 {
		score -= f.cfg.GoodHBondBonus
	} else {
		score -= float64(good)
	}

	if typeID == BPTypeWC {
		score -= f.cfg.WCBonus
	}
	return score
}

// phase2 runs the greedy mutual-best-match walk. Inherently sequential:
// every confirmation shrinks the search space of later iterations.
func (f *Finder) phase2(s *pdb.Structure, nts []*pdb.Residue, cache map[Key]candidate) []BasePair {
	matched := make(map[int]bool)
	var out []BasePair

	for {
		confirmed := false
		for _, r := range nts {
			if matched[r.Index] {
				continue
			}
			best, ok := f.bestPartner(r.Index, nts, cache, matched)
			if !ok {
				continue
			}
			// Mutual-best-match symmetry: the partner's own best must be r.
			back, ok := f.bestPartner(best, nts, cache, matched)
			if !ok || back != r.Index {
				continue
			}
			k := MakeKey(r.Index, best)
			out = append(out, f.makePair(s, k, cache[k]))
			matched[r.Index] = true
			matched[best] = true
			confirmed = true
		}
		if !confirmed {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index1 < out[j].Index1 })
	return out
}

// bestPartner returns the unmatched partner with the minimum adjusted score
// among cached valid candidates of residue idx.
func (f *Finder) bestPartner(idx int, nts []*pdb.Residue, cache map[Key]candidate, matched map[int]bool) (int, bool) {
	best := -1
	bestScore := 0.0
	for _, other := range nts {
		if other.Index == idx || matched[other.Index] {
			continue
		}
		c, ok := cache[MakeKey(idx, other.Index)]
		if !ok || !c.result.Valid {
			continue
		}
		if best < 0 || c.score < bestScore {
			best = other.Index
			bestScore = c.score
		}
	}
	return best, best >= 0
}

func (f *Finder) makePair(s *pdb.Structure, k Key, c candidate) BasePair {
	r1, _ := s.ResidueByIndex(k.I)
	r2, _ := s.ResidueByIndex(k.J)
	return BasePair{
		Index1:   k.I,
		Index2:   k.J,
		Residue1: r1,
		Residue2: r2,
		Frame1:   *r1.Frame,
		Frame2:   *r2.Frame,
		TypeID:   c.typeID,
		HBonds:   c.result.HBonds,
		Score:    c.score,
	}
}
