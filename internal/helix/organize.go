package helix

import (
	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// Segment is one helical stack: a contiguous run of pair indices (into the
// organizer's input slice) in walk order, with the per-pair strand-swap
// flags left by direction normalization. Every pair belongs to exactly one
// segment; isolated pairs form singleton segments.
type Segment struct {
	Pairs   []int
	Swapped []bool
}

// Organizer chains selected base pairs into helical segments and fixes
// their 5'->3' strand direction.
type Organizer struct {
	logger *zap.Logger
}

// NewOrganizer creates a helix organizer.
func NewOrganizer() *Organizer {
	return &Organizer{logger: zap.NewNop()}
}

// SetLogger sets the logger for per-helix tracing.
func (o *Organizer) SetLogger(l *zap.Logger) {
	o.logger = l
}

// Organize computes neighbor contexts, walks pairs into ordered segments
// starting from helix endpoints, and runs direction normalization over
// each segment. Pairs unreachable from any endpoint (isolated pairs or
// unbroken cycles) are appended as leftover segments.
func (o *Organizer) Organize(s *pdb.Structure, pairs []pair.BasePair) []Segment {
	if len(pairs) == 0 {
		return nil
	}
	ctxs := computeContexts(pairs)
	chains := DetectChains(s)

	visited := make([]bool, len(pairs))
	var segments []Segment

	for i := range pairs {
		if visited[i] || !ctxs[i].isEndpoint() {
			continue
		}
		segments = append(segments, o.walk(i, ctxs, visited))
	}
	// Leftovers: isolated pairs and unbroken cycles.
	for i := range pairs {
		if !visited[i] {
			segments = append(segments, o.walk(i, ctxs, visited))
		}
	}

	for si := range segments {
		segments[si].Swapped = o.normalizeDirections(s, pairs, chains, segments[si].Pairs)
	}

	o.logger.Info("helix organization finished",
		zap.Int("pairs", len(pairs)),
		zap.Int("segments", len(segments)))
	return segments
}

// walk records the chain of pairs reachable from start by following
// neighbor links, never stepping back to the immediately previous pair.
func (o *Organizer) walk(start int, ctxs []context, visited []bool) Segment {
	seg := Segment{}
	prev := -1
	cur := start
	for {
		seg.Pairs = append(seg.Pairs, cur)
		visited[cur] = true

		next := -1
		for _, n := range ctxs[cur].neighbors() {
			if n != prev && !visited[n] {
				next = n
				break
			}
		}
		if next < 0 {
			return seg
		}
		prev = cur
		cur = next
	}
}
