// Package graph provides a weighted undirected graph stored as adjacency
// lists over vertices numbered 0 to n-1.
//
// Each undirected edge {u, v} is stored as the two directed entries u->v
// and v->u, so at most one entry exists per ordered pair. Loops (u == v)
// are allowed and stored once.
package graph

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidVertex is returned for vertex numbers outside [0, n).
	ErrInvalidVertex = errors.New("invalid vertex")
	// ErrNoSuchEdge is returned when a queried edge does not exist.
	ErrNoSuchEdge = errors.New("no such edge")
)

// Edge is one directed adjacency entry.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Graph is a weighted undirected graph with a fixed vertex count.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	adj   [][]Edge
	edges int
}

// New creates a graph with the given number of vertices and no edges.
// Negative counts create an empty graph.
func New(vertices int) *Graph {
	return &Graph{adj: make([][]Edge, max(vertices, 0))}
}

func (g *Graph) validate(v int) error {
	if !g.HasVertex(v) {
		return errors.Wrapf(ErrInvalidVertex, "vertex %d is not between 0 and %d", v, len(g.adj)-1)
	}
	return nil
}

// find returns the index of from->to in the adjacency list of from, or -1.
func (g *Graph) find(from, to int) int {
	for i, e := range g.adj[from] {
		if e.To == to {
			return i
		}
	}
	return -1
}

// AddEdge adds the undirected edge {from, to} with the given weight. If
// the edge exists, its weight is updated in both directions. It returns
// true if a new edge was added and false if an existing one was updated.
func (g *Graph) AddEdge(from, to int, weight float64) (added bool, err error) {
	if err := g.validate(from); err != nil {
		return false, err
	}
	if err := g.validate(to); err != nil {
		return false, err
	}

	if i := g.find(from, to); i >= 0 {
		g.adj[from][i].Weight = weight
		if j := g.find(to, from); j >= 0 {
			g.adj[to][j].Weight = weight
		}
		return false, nil
	}

	g.adj[from] = append(g.adj[from], Edge{From: from, To: to, Weight: weight})
	if from != to {
		g.adj[to] = append(g.adj[to], Edge{From: to, To: from, Weight: weight})
	}
	g.edges++
	return true, nil
}

// HasVertex reports whether v is a vertex of the graph.
func (g *Graph) HasVertex(v int) bool {
	return v >= 0 && v < len(g.adj)
}

// HasEdge reports whether the edge from->to exists. Invalid vertices
// report false.
func (g *Graph) HasEdge(from, to int) bool {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return false
	}
	return g.find(from, to) >= 0
}

// HasEdges reports whether v has at least one incident edge.
func (g *Graph) HasEdges(v int) (bool, error) {
	if err := g.validate(v); err != nil {
		return false, err
	}
	return len(g.adj[v]) > 0, nil
}

// EdgeWeight returns the weight of from->to.
func (g *Graph) EdgeWeight(from, to int) (float64, error) {
	if err := g.validate(from); err != nil {
		return 0, err
	}
	if err := g.validate(to); err != nil {
		return 0, err
	}
	i := g.find(from, to)
	if i < 0 {
		return 0, errors.Wrapf(ErrNoSuchEdge, "edge %d->%d does not exist in graph", from, to)
	}
	return g.adj[from][i].Weight, nil
}

// Neighbors returns a copy of the adjacency list of v in insertion order.
func (g *Graph) Neighbors(v int) ([]Edge, error) {
	if err := g.validate(v); err != nil {
		return nil, err
	}
	return append([]Edge(nil), g.adj[v]...), nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges, counting each loop
// once.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// DFS visits the vertices reachable from start in depth-first preorder,
// following adjacency lists in insertion order. The walk stops early when
// visit returns false.
func (g *Graph) DFS(start int, visit func(v int) bool) error {
	if err := g.validate(start); err != nil {
		return err
	}
	visited := make([]bool, len(g.adj))
	var walk func(v int) bool
	walk = func(v int) bool {
		visited[v] = true
		if !visit(v) {
			return false
		}
		for _, e := range g.adj[v] {
			if !visited[e.To] && !walk(e.To) {
				return false
			}
		}
		return true
	}
	walk(start)
	return nil
}

// DFSOrder returns the depth-first preorder from start.
func (g *Graph) DFSOrder(start int) ([]int, error) {
	var order []int
	err := g.DFS(start, func(v int) bool {
		order = append(order, v)
		return true
	})
	return order, err
}

// String lists every vertex with its adjacency entries, one vertex per
// line, e.g. "V0: {(0->1, 2.5), (0->2, 1)}".
func (g *Graph) String() string {
	var sb strings.Builder
	for v := range g.adj {
		fmt.Fprintf(&sb, "V%d: {", v)
		for i, e := range g.adj[v] {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "(%d->%d, %v)", e.From, e.To, e.Weight)
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}
