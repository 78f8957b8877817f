package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jyesselm/find-pair-sub002/internal/helix"
	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// WriteInp emits the legacy .inp pairing file consumed by downstream
// parameter-analysis tools: a header block followed by one line per pair
// with the two legacy residue indices, honoring the helix swap flags so
// strand 1 always reads 5'->3'.
func WriteInp(w io.Writer, pdbName string, s *pdb.Structure, pairs []pair.BasePair, segments []helix.Segment) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", pdbName)
	fmt.Fprintf(bw, "%s.out\n", s.ID)
	fmt.Fprintf(bw, "    2         # duplex\n")
	fmt.Fprintf(bw, "%5d         # number of base-pairs\n", len(pairs))
	fmt.Fprintf(bw, "    1     1   # explicit bp numbering/hetero atoms\n")

	line := 0
	for _, seg := range segments {
		for k, pi := range seg.Pairs {
			bp := pairs[pi]
			i1, i2 := bp.Index1, bp.Index2
			if seg.Swapped[k] {
				i1, i2 = i2, i1
			}
			line++
			fmt.Fprintf(bw, "%5d %5d %5d %5d # %s - %s\n",
				line, i1, i2, segmentFlag(k, len(seg.Pairs)),
				residueLabel(bp.Residue1), residueLabel(bp.Residue2))
		}
	}
	return bw.Flush()
}

// segmentFlag marks helix boundaries in the legacy column: 9 ends a helix,
// 0 continues it.
func segmentFlag(k, n int) int {
	if k == n-1 {
		return 9
	}
	return 0
}
