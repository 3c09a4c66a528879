package graph

import (
	"fmt"
	"io"
	"strings"
)

// WriteMermaid writes the graph in Mermaid format to w.
// Each connected component is a subgraph; edges are labelled with the
// referencing column.
func WriteMermaid(w io.Writer, g *Graph) error {
	components := FindComponents(g)

	if _, err := fmt.Fprintln(w, "graph TD"); err != nil {
		return err
	}

	for i, comp := range components {
		fmt.Fprintf(w, "    subgraph component_%d\n", i+1)

		tableSet := make(map[string]bool, len(comp.Tables))
		for _, t := range comp.Tables {
			tableSet[t] = true
		}

		edgesWritten := make(map[string]bool)
		for _, edge := range g.Edges {
			if !tableSet[edge.ChildTable] {
				continue
			}
			edgeKey := fmt.Sprintf("%s-->%s:%s", edge.ChildTable, edge.ParentTable, edge.Column)
			if edgesWritten[edgeKey] {
				continue
			}
			edgesWritten[edgeKey] = true
			fmt.Fprintf(w, "        %s -->|%s| %s\n",
				mermaidID(edge.ChildTable), edge.Column, mermaidID(edge.ParentTable))
		}

		for _, t := range comp.Tables {
			for _, edge := range g.SelfRefs[t] {
				fmt.Fprintf(w, "        %s -->|%s| %s\n", mermaidID(t), edge.Column, mermaidID(t))
			}
		}

		// standalone nodes
		for _, t := range comp.Tables {
			if !hasEdge(g, t) {
				fmt.Fprintf(w, "        %s\n", mermaidID(t))
			}
		}

		fmt.Fprintln(w, "    end")
		if i < len(components)-1 {
			fmt.Fprintln(w)
		}
	}

	return nil
}

// WriteText writes a text summary of the graph to w.
func WriteText(w io.Writer, g *Graph) error {
	components := FindComponents(g)

	fmt.Fprintf(w, "Tables: %d\n", len(g.Tables))
	fmt.Fprintf(w, "Foreign Keys: %d\n", len(g.Edges)+countSelfRefs(g))
	fmt.Fprintf(w, "Connected Components: %d\n\n", len(components))

	if len(g.Dangling) > 0 {
		refs := make([]string, len(g.Dangling))
		for i, e := range g.Dangling {
			refs[i] = fmt.Sprintf("%s.%s -> %s", e.ChildTable, e.Column, e.Ref)
		}
		fmt.Fprintf(w, "WARNING: References to undeclared tables: %v\n\n", refs)
	}

	topoResult := TopoSortAll(g)
	if topoResult.HasCycle {
		fmt.Fprintf(w, "WARNING: Circular dependencies detected: %v\n\n", topoResult.CycleTables)
	}

	var noPKTables []string
	for _, name := range g.Order {
		if len(g.Tables[name].PKColumnNames()) == 0 {
			noPKTables = append(noPKTables, name)
		}
	}
	if len(noPKTables) > 0 {
		fmt.Fprintf(w, "WARNING: Tables without primary key: %v\n\n", noPKTables)
	}

	if len(g.SelfRefs) > 0 {
		var selfRefTables []string
		for _, name := range g.Order {
			if _, ok := g.SelfRefs[name]; ok {
				selfRefTables = append(selfRefTables, name)
			}
		}
		fmt.Fprintf(w, "Self-referencing tables: %v\n\n", selfRefTables)
	}

	fmt.Fprintf(w, "Root tables (no FK parents): %v\n\n", g.Roots())

	for i, comp := range components {
		fmt.Fprintf(w, "=== Component %d (%d tables) ===\n", i+1, len(comp.Tables))

		topoComp := TopoSort(g, comp.Tables)
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Topological order (partial, has cycle):\n")
		} else {
			fmt.Fprintf(w, "  Topological order:\n")
		}
		for j, t := range topoComp.Order {
			tbl := g.Tables[t]
			pkInfo := "no PK"
			if pk := tbl.PKColumnNames(); len(pk) > 0 {
				pkInfo = fmt.Sprintf("PK: %s", strings.Join(pk, ", "))
			}
			fmt.Fprintf(w, "    %d. %s (%d cols, %s, %d FKs)\n",
				j+1, t, len(tbl.ColumnNames()), pkInfo, len(tbl.References()))
		}
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Cycle tables: %v\n", topoComp.CycleTables)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// mermaidID converts a table name to a Mermaid-safe node ID.
func mermaidID(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func hasEdge(g *Graph, table string) bool {
	if len(g.Parents[table]) > 0 || len(g.Children[table]) > 0 {
		return true
	}
	_, ok := g.SelfRefs[table]
	return ok
}

func countSelfRefs(g *Graph) int {
	count := 0
	for _, edges := range g.SelfRefs {
		count += len(edges)
	}
	return count
}
