package pair

import (
	"runtime"
	"sync"

	"github.com/jyesselm/find-pair-sub002/internal/pdb"
)

// workItem is one candidate pair queued for Phase-1 validation.
type workItem struct {
	seq    int
	r1, r2 *pdb.Residue
}

// workResult is the validation outcome for one candidate pair.
type workResult struct {
	seq  int
	key  Key
	cand candidate
}

// phase1 validates every unordered pair of eligible nucleotides once and
// returns the read-only candidate cache Phase 2 walks over. Validation
// calls are independent and side-effect-free, so they fan out over a
// worker pool; results are collected in sequence order so an attached
// recorder sees a deterministic stream regardless of worker count.
func (f *Finder) phase1(nts []*pdb.Residue, rec Recorder) (map[Key]candidate, error) {
	items := make(chan workItem, 2*runtime.NumCPU())
	go func() {
		defer close(items)
		seq := 0
		for i := 0; i < len(nts); i++ {
			for j := i + 1; j < len(nts); j++ {
				items <- workItem{seq: seq, r1: nts[i], r2: nts[j]}
				seq++
			}
		}
	}()

	results := f.parallelValidate(items, f.workers)

	cache := make(map[Key]candidate)
	err := orderedCollect(results, func(r workResult) error {
		cache[r.key] = r.cand
		if rec == nil {
			return nil
		}
		snap := Snapshot{
			Index1:        r.key.I,
			Index2:        r.key.J,
			TypeID:        r.cand.typeID,
			AdjustedScore: r.cand.score,
			Result:        r.cand.result,
		}
		if res, ok := findByIndex(nts, r.key.I); ok {
			snap.Name1 = res.Name
		}
		if res, ok := findByIndex(nts, r.key.J); ok {
			snap.Name2 = res.Name
		}
		return rec.Record(snap)
	})
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// parallelValidate validates work items using a pool of workers. Results
// arrive in completion order; use orderedCollect to consume them in
// sequence order. workers <= 0 selects one worker per CPU.
func (f *Finder) parallelValidate(items <-chan workItem, workers int) <-chan workResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				res := f.validator.Validate(item.r1, item.r2)
				typeID := TypeID(item.r1, item.r2)
				results <- workResult{
					seq: item.seq,
					key: MakeKey(item.r1.Index, item.r2.Index),
					cand: candidate{
						result: res,
						typeID: typeID,
						score:  f.adjustedScore(res, typeID),
					},
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence order, buffering
// out-of-order arrivals until the next expected sequence number is ready.
func orderedCollect(results <-chan workResult, fn func(workResult) error) error {
	pending := make(map[int]workResult)
	next := 0

	for r := range results {
		pending[r.seq] = r
		for {
			rr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}
	return nil
}

func findByIndex(nts []*pdb.Residue, idx int) (*pdb.Residue, bool) {
	for _, r := range nts {
		if r.Index == idx {
			return r, true
		}
	}
	return nil, false
}
