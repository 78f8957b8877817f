package helix

import (
	"github.com/jyesselm/find-pair-sub002/internal/pair"
)

// Neighbor-search thresholds.
const (
	// neighborCutoff bounds the frame-origin distance of the first
	// (nearest) neighbor of a pair.
	neighborCutoff = 8.5
	// breakDist bounds the second neighbor; beyond it a helix is broken.
	breakDist = 7.8
)

// context records the up-to-two spatial neighbors of one pair. The two
// neighbors must flank the pair on opposite sides of its z-axis
// projection; a pair with fewer than two qualifying neighbors is a helix
// endpoint. Discarded after chaining.
type context struct {
	neighbor1 int // index into the pair slice, -1 when absent
	neighbor2 int
	dist1     float64
	dist2     float64
}

func (c context) isEndpoint() bool {
	return c.neighbor1 < 0 || c.neighbor2 < 0
}

func (c context) neighbors() []int {
	var out []int
	if c.neighbor1 >= 0 {
		out = append(out, c.neighbor1)
	}
	if c.neighbor2 >= 0 {
		out = append(out, c.neighbor2)
	}
	return out
}

// computeContexts builds the neighbor context of every pair. The first
// neighbor is the nearest pair by strand-1 frame-origin distance within the
// neighbor cutoff; the second is the nearest remaining pair within the
// helix-break distance on the opposite side of the first pair's z-axis
// (d1 * dk < 0), so the two neighbors flank the pair rather than both
// lying ahead of it.
func computeContexts(pairs []pair.BasePair) []context {
	ctxs := make([]context, len(pairs))
	for i := range pairs {
		ctxs[i] = context{neighbor1: -1, neighbor2: -1}
		oi := pairs[i].Frame1.Origin
		zi := pairs[i].Frame1.Z()

		for k := range pairs {
			if k == i {
				continue
			}
			d := pairs[k].Frame1.Origin.Dist(oi)
			if d < neighborCutoff && (ctxs[i].neighbor1 < 0 || d < ctxs[i].dist1) {
				ctxs[i].neighbor1 = k
				ctxs[i].dist1 = d
			}
		}
		if ctxs[i].neighbor1 < 0 {
			continue
		}

		d1 := pairs[ctxs[i].neighbor1].Frame1.Origin.Sub(oi).Dot(zi)
		for k := range pairs {
			if k == i || k == ctxs[i].neighbor1 {
				continue
			}
			d := pairs[k].Frame1.Origin.Dist(oi)
			if d >= breakDist {
				continue
			}
			dk := pairs[k].Frame1.Origin.Sub(oi).Dot(zi)
			if d1*dk >= 0 {
				continue
			}
			if ctxs[i].neighbor2 < 0 || d < ctxs[i].dist2 {
				ctxs[i].neighbor2 = k
				ctxs[i].dist2 = d
			}
		}
	}
	return ctxs
}
