package systems

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/fishfeed/components"
)

// fishSnapshot captures read-only fish state for the parallel scan.
type fishSnapshot struct {
	Pos    components.Position
	Eating bool
}

// candidates lists pellet snapshot indices near one fish, ascending.
type candidates struct {
	Hit   []int
	Alert []int
}

// scanScratch holds per-worker reusable buffers.
type scanScratch struct {
	Neighbors []Neighbor
}

// scanChunk is a range of fish for a worker to scan.
type scanChunk struct {
	start, end int
}

// fishPool scans pellet proximity for many fish at once. Workers only read
// the pellet snapshot; claims are settled afterwards in fish ID order.
type fishPool struct {
	threshold  int
	numWorkers int

	snapshots []fishSnapshot
	results   []candidates
	scratches []scanScratch

	// Set for the duration of a dispatch
	pellets *PelletSystem
	params  FishParams

	workChan chan scanChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newFishPool(threshold int) *fishPool {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]scanScratch, numWorkers)
	for i := range scratches {
		scratches[i].Neighbors = make([]Neighbor, 0, 32)
	}
	return &fishPool{
		threshold:  max(threshold, 1),
		numWorkers: numWorkers,
		scratches:  scratches,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *fishPool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan scanChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *fishPool) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *fishPool) worker(workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.scanChunk(chunk.start, chunk.end, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// scanChunk fills candidate lists for fish in [i0, i1).
func (p *fishPool) scanChunk(i0, i1 int, scratch *scanScratch) {
	live := p.pellets.Live()
	grid := p.pellets.Grid()

	for i := i0; i < i1; i++ {
		snap := &p.snapshots[i]
		res := &p.results[i]
		res.Hit = res.Hit[:0]
		res.Alert = res.Alert[:0]
		if snap.Eating {
			continue
		}

		scratch.Neighbors = grid.QueryRadiusInto(scratch.Neighbors[:0], snap.Pos, p.params.scanRadius(), live)
		for _, n := range scratch.Neighbors {
			pos := live[n.Index].Pos
			if Within(snap.Pos, pos, p.params.HitRadius) {
				res.Hit = insertSorted(res.Hit, n.Index)
			} else if Within(snap.Pos, pos, p.params.AlertRadius) {
				res.Alert = append(res.Alert, n.Index)
			}
		}
	}
}

// dispatch scans all snapshots, splitting the work across the pool.
func (p *fishPool) dispatch(pellets *PelletSystem, params FishParams) {
	n := len(p.snapshots)
	if cap(p.results) < n {
		p.results = append(p.results[:cap(p.results)], make([]candidates, n-cap(p.results))...)
	}
	p.results = p.results[:n]
	p.pellets = pellets
	p.params = params
	defer func() { p.pellets = nil }()

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- scanChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

// updateParallel scans on the pool, then settles claims and applies
// transitions sequentially in fish ID order.
func (s *FishSystem) updateParallel(ctx *Context, pellets *PelletSystem) {
	pool := s.pool
	pool.snapshots = pool.snapshots[:0]
	for _, ref := range s.order {
		pos, fish := s.mapper.Get(ref.e)
		pool.snapshots = append(pool.snapshots, fishSnapshot{Pos: *pos, Eating: fish.State.Eating()})
	}

	pool.dispatch(pellets, s.params)

	live := pellets.Live()
	for i, ref := range s.order {
		res := &pool.results[i]

		hitIdx := -1
		for _, idx := range res.Hit {
			if !live[idx].Consumed {
				hitIdx = idx
				break
			}
		}
		alert := false
		for _, idx := range res.Alert {
			if !live[idx].Consumed {
				alert = true
				break
			}
		}

		pos, fish := s.mapper.Get(ref.e)
		s.apply(ctx, pos, fish, hitIdx, alert, pellets)
	}
}

// insertSorted inserts v keeping xs ascending. Lists stay short.
func insertSorted(xs []int, v int) []int {
	i := len(xs)
	xs = append(xs, v)
	for i > 0 && xs[i-1] > v {
		xs[i] = xs[i-1]
		i--
	}
	xs[i] = v
	return xs
}
