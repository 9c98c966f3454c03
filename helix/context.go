/*
Package helix implements the helix organizer of spec.md §4.10: the
pair-context neighbor graph, segmentation into contiguous (or circular)
helices, and the ensure_five_to_three strand canonicalization.
*/
package helix

import (
	"sort"

	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// pairOrigin is the average of both frame origins, matching the
// reference's bp_context morg convention.
func pairOrigin(p model.BasePair) geom.Vector3 {
	return geom.Midpoint(p.Frame1.Origin, p.Frame2.Origin)
}

// pairZAxis is the bisector of the two frame z-axes, subtracting rather
// than adding when they point in opposing directions.
func pairZAxis(p model.BasePair) geom.Vector3 {
	z1, z2 := p.Frame1.Z(), p.Frame2.Z()
	if z1.Dot(z2) <= 0 {
		return z2.Sub(z1).Normalize()
	}
	return z2.Add(z1).Normalize()
}

// pairContext is the per-pair neighbor record of spec.md §4.10 step 1.
type pairContext struct {
	Neighbor1, Neighbor2 int
	HasN1, HasN2         bool
}

func (c pairContext) degree() int {
	n := 0
	if c.HasN1 {
		n++
	}
	if c.HasN2 {
		n++
	}
	return n
}

type candidateNeighbor struct {
	idx  int
	dist float64
	side float64
}

// buildContext computes, for every pair, up to two neighbors within the
// helix-break distance: the closest pair overall, and the closest pair
// on the opposite side of p's z-axis from the first (spec.md §4.10 step
// 1: "neighbor2 required to lie on the opposite z-side of p").
func buildContext(pairs []model.BasePair, breakDist float64) []pairContext {
	origins := make([]geom.Vector3, len(pairs))
	zaxes := make([]geom.Vector3, len(pairs))
	for i, p := range pairs {
		origins[i] = pairOrigin(p)
		zaxes[i] = pairZAxis(p)
	}

	out := make([]pairContext, len(pairs))
	for i := range pairs {
		var candidates []candidateNeighbor
		for j := range pairs {
			if i == j {
				continue
			}
			d := origins[i].Sub(origins[j]).Norm()
			if d > breakDist {
				continue
			}
			side := zaxes[i].Dot(origins[j].Sub(origins[i]))
			candidates = append(candidates, candidateNeighbor{idx: j, dist: d, side: side})
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })

		if len(candidates) == 0 {
			continue
		}
		out[i].Neighbor1 = candidates[0].idx
		out[i].HasN1 = true
		side1 := candidates[0].side

		for _, cand := range candidates[1:] {
			if (side1 >= 0) != (cand.side >= 0) {
				out[i].Neighbor2 = cand.idx
				out[i].HasN2 = true
				break
			}
		}
	}
	return out
}

// adjacency unions each pair's proposed neighbor edges into an
// undirected graph; the nearest-neighbor relation need not be
// symmetric, so a node's final neighbor set is the union of what it
// proposed and what proposed it.
func adjacency(ctx []pairContext) map[int][]int {
	adj := make(map[int][]int)
	add := func(a, b int) {
		for _, x := range adj[a] {
			if x == b {
				return
			}
		}
		adj[a] = append(adj[a], b)
	}
	for i, c := range ctx {
		if c.HasN1 {
			add(i, c.Neighbor1)
			add(c.Neighbor1, i)
		}
		if c.HasN2 {
			add(i, c.Neighbor2)
			add(c.Neighbor2, i)
		}
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}

// walkChain traces a simple path from start, avoiding the edge just
// taken and any already-visited node, stopping at a dead end.
func walkChain(start int, adj map[int][]int, visited map[int]bool) []int {
	path := []int{start}
	visited[start] = true
	prev, cur := -1, start
	for {
		next := -1
		for _, n := range adj[cur] {
			if n == prev || visited[n] {
				continue
			}
			next = n
			break
		}
		if next == -1 {
			return path
		}
		path = append(path, next)
		visited[next] = true
		prev, cur = cur, next
	}
}

// walkCycle traces a path from start and reports whether it closes back
// on itself (every node has degree 2 and none are unvisited dead ends).
func walkCycle(start int, adj map[int][]int, visited map[int]bool) ([]int, bool) {
	path := []int{start}
	visited[start] = true
	prev, cur := -1, start
	for {
		next, closesLoop := -1, false
		for _, n := range adj[cur] {
			if n == prev {
				continue
			}
			if n == start && len(path) > 2 {
				closesLoop = true
				break
			}
			if !visited[n] {
				next = n
				break
			}
		}
		if closesLoop {
			return path, true
		}
		if next == -1 {
			return path, false
		}
		path = append(path, next)
		visited[next] = true
		prev, cur = cur, next
	}
}

// Segment implements spec.md §4.10 step 2: walk neighbor chains from
// endpoints to emit contiguous helices, then sweep any remaining
// unvisited pairs (which must form cycles, having no endpoint to start
// from) as circular helices.
func Segment(pairs []model.BasePair, cfg config.Config) (order []int, segments []model.HelixSegment) {
	ctx := buildContext(pairs, cfg.HelixBreakDistance)
	adj := adjacency(ctx)
	visited := make(map[int]bool)

	var endpoints []int
	for i, c := range ctx {
		if c.degree() < 2 {
			endpoints = append(endpoints, i)
		}
	}
	sort.Ints(endpoints)

	for _, start := range endpoints {
		if visited[start] {
			continue
		}
		path := walkChain(start, adj, visited)
		seg := model.HelixSegment{Start: len(order), End: len(order) + len(path)}
		order = append(order, path...)
		segments = append(segments, seg)
	}

	remaining := make([]int, 0, len(pairs))
	for i := range pairs {
		remaining = append(remaining, i)
	}
	sort.Ints(remaining)
	for _, start := range remaining {
		if visited[start] {
			continue
		}
		path, circular := walkCycle(start, adj, visited)
		seg := model.HelixSegment{Start: len(order), End: len(order) + len(path), IsCircular: circular}
		order = append(order, path...)
		segments = append(segments, seg)
	}

	return order, segments
}
