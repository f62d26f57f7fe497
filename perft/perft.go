// Package perft implements the performance-test node-counting driver used
// both as a move-generator correctness oracle (against EPD suites of known
// node counts) and as a throughput benchmark.
package perft

import (
	"context"
	"runtime"

	"github.com/qbbchego/quadchego"
	"golang.org/x/sync/errgroup"
)

// parallelDepthThreshold is the depth at or above which Nodes fans its
// immediate subtrees out across worker goroutines; below it the per-subtree
// work is small enough that scheduling overhead would dominate.
const parallelDepthThreshold = 4

// Nodes walks the legal-ply tree rooted at pos to the given depth and
// returns the number of leaf positions reached: depth 0 is 1, depth 1 is
// len(LegalPlies(pos)), depth n>1 is the sum over every legal ply of
// Nodes(apply(pos, ply), n-1). At depths >= parallelDepthThreshold, the
// immediate subtrees are evaluated concurrently via errgroup, bounded to
// GOMAXPROCS workers; lower depths stay sequential.
func Nodes(pos quadchego.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	plies := quadchego.LegalPlies(pos)
	if depth == 1 {
		return int64(len(plies))
	}

	if depth < parallelDepthThreshold {
		var nodes int64
		for _, ply := range plies {
			nodes += Nodes(quadchego.UnsafeApply(pos, ply), depth-1)
		}
		return nodes
	}

	return nodesParallel(pos, plies, depth)
}

// nodesParallel fans the given plies out across an errgroup.Group limited to
// GOMAXPROCS workers, joining before summing — Nodes itself never returns an
// error, so the group is used purely for its worker-pool semantics.
func nodesParallel(pos quadchego.Position, plies []quadchego.Ply, depth int) int64 {
	partial := make([]int64, len(plies))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, ply := range plies {
		g.Go(func() error {
			partial[i] = Nodes(quadchego.UnsafeApply(pos, ply), depth-1)
			return nil
		})
	}
	_ = g.Wait()

	var nodes int64
	for _, n := range partial {
		nodes += n
	}
	return nodes
}

// Divide returns the per-root-ply node counts at depth, keyed by the ply's
// UCI string — the standard perft debugging aid for isolating which root
// move's subtree disagrees with a reference engine.
func Divide(pos quadchego.Position, depth int) map[string]int64 {
	plies := quadchego.LegalPlies(pos)
	out := make(map[string]int64, len(plies))
	for _, ply := range plies {
		var n int64
		if depth <= 1 {
			n = 1
		} else {
			n = Nodes(quadchego.UnsafeApply(pos, ply), depth-1)
		}
		out[quadchego.ToUCI(ply)] = n
	}
	return out
}
