package graph

import (
	"github.com/hurou927/uml-ddl/internal/schema"
)

// Edge represents a directed edge from child to parent (reference direction).
type Edge struct {
	ChildTable  string
	Column      string // referencing column in the child table
	ParentTable string
	Ref         schema.ColumnReference
}

// Graph is a directed graph built from column references.
type Graph struct {
	// Tables maps table name -> table
	Tables map[string]*schema.Table

	// Order lists table names in discovery order
	Order []string

	// Edges are non-self-referential edges (child → parent)
	Edges []Edge

	// SelfRefs holds self-referential edges, keyed by table name
	SelfRefs map[string][]Edge

	// Dangling holds references whose parent table was never declared
	Dangling []Edge

	// Children maps parent name → list of child names
	Children map[string][]string

	// Parents maps child name → list of parent names
	Parents map[string][]string

	// adjacency for undirected connectivity
	Adjacency map[string]map[string]bool

	index map[string]int
}

// Build constructs a directed graph from a parsed schema. References to
// undeclared tables are collected in Dangling instead of becoming edges.
func Build(s *schema.Schema) *Graph {
	g := &Graph{
		Tables:    make(map[string]*schema.Table, s.Len()),
		SelfRefs:  make(map[string][]Edge),
		Children:  make(map[string][]string),
		Parents:   make(map[string][]string),
		Adjacency: make(map[string]map[string]bool, s.Len()),
		index:     make(map[string]int, s.Len()),
	}

	for i, tbl := range s.Tables() {
		g.Tables[tbl.Name] = tbl
		g.Order = append(g.Order, tbl.Name)
		g.Adjacency[tbl.Name] = make(map[string]bool)
		g.index[tbl.Name] = i
	}

	for _, name := range g.Order {
		for _, col := range g.Tables[name].References() {
			edge := Edge{
				ChildTable:  name,
				Column:      col.Name,
				ParentTable: col.Ref.Table,
				Ref:         *col.Ref,
			}

			if _, ok := g.Tables[edge.ParentTable]; !ok {
				g.Dangling = append(g.Dangling, edge)
				continue
			}
			if edge.ParentTable == name {
				g.SelfRefs[name] = append(g.SelfRefs[name], edge)
				continue
			}

			g.Edges = append(g.Edges, edge)
			g.Children[edge.ParentTable] = append(g.Children[edge.ParentTable], name)
			g.Parents[name] = append(g.Parents[name], edge.ParentTable)
			g.Adjacency[name][edge.ParentTable] = true
			g.Adjacency[edge.ParentTable][name] = true
		}
	}

	return g
}

// Roots returns tables that have no outgoing edges (no parents), in
// discovery order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.Order {
		if len(g.Parents[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// ForwardReferences returns edges whose parent table is declared after the
// child. Executing the statements in discovery order creates the child
// first, which needs foreign key checks disabled.
func (g *Graph) ForwardReferences() []Edge {
	var fwd []Edge
	for _, e := range g.Edges {
		if g.index[e.ParentTable] > g.index[e.ChildTable] {
			fwd = append(fwd, e)
		}
	}
	return fwd
}
