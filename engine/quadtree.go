package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/sparse-gol/model"
)

// quadtreeEngine steps every spatial cluster through a hash-consed quadtree.
// It always advances exactly one generation per call.
//
// Arenas are reset at the start of each Advance, so nothing is memoized
// across calls. With more than one worker each worker owns an arena.
type quadtreeEngine struct {
	opts   options
	arenas []*arena
}

func newQuadtreeEngine(o options) *quadtreeEngine {
	arenas := make([]*arena, o.workers)
	for i := range arenas {
		arenas[i] = newArena()
	}
	return &quadtreeEngine{opts: o, arenas: arenas}
}

// Advance computes the next generation cluster by cluster
func (e *quadtreeEngine) Advance(cells model.AliveSet) model.AliveSet {
	for _, a := range e.arenas {
		a.reset()
	}

	next := make(model.AliveSet, len(cells))
	if len(cells) == 0 {
		return next
	}

	clusters := partitionClusters(cells)
	workers := min(len(e.arenas), len(clusters))

	if workers <= 1 {
		a := e.arenas[0]
		for _, cluster := range clusters {
			a.stepCluster(cluster, next.Add)
		}
	} else {
		results := make([][]model.Cell, workers)

		var eg errgroup.Group
		for w := range workers {
			eg.Go(func() error {
				a := e.arenas[w]
				for i := w; i < len(clusters); i += workers {
					a.stepCluster(clusters[i], func(c model.Cell) {
						results[w] = append(results[w], c)
					})
				}
				return nil
			})
		}
		// workers cannot fail; Wait only joins them
		_ = eg.Wait()

		for _, found := range results {
			for _, c := range found {
				next.Add(c)
			}
		}
	}

	if e.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.opts.logger.Debug("quadtree advance",
			"alive", len(cells),
			"clusters", len(clusters),
			"workers", max(workers, 1),
			"nodes", e.nodeCount(),
			"next_alive", len(next),
		)
	}
	return next
}

func (e *quadtreeEngine) nodeCount() (total int) {
	for _, a := range e.arenas {
		total += a.size()
	}
	return
}

// Duplicate returns an engine with the same settings and fresh arenas
func (e *quadtreeEngine) Duplicate() Engine {
	return newQuadtreeEngine(e.opts)
}

func (e *quadtreeEngine) Kind() Kind {
	return Quadtree
}
