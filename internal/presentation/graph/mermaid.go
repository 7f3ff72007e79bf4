package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/markov/pkg/table"
)

// Overlay highlights numbers on the graph, typically a generated combination.
type Overlay struct {
	Selected []int
}

// GenerateMermaid produces a Mermaid flowchart of one number's transitions.
// It applies semantic styling:
// - The inspected number: ((Circle))
// - Successor numbers: [Rectangle]
// - Pairs: [[Subroutine]]
// Direct edges are solid, position edges dotted, and combination edges leave
// the pair node. Every edge is labelled with its count.
func GenerateMermaid(s table.Snapshot, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	root := numberID(s.Number)
	fmt.Fprintf(&sb, "    %s((\"%d\"))\n", root, s.Number)

	declared := map[string]bool{root: true}
	declare := func(n int) string {
		id := numberID(n)
		if !declared[id] {
			declared[id] = true
			fmt.Fprintf(&sb, "    %s[\"%d\"]\n", id, n)
		}
		return id
	}

	for _, n := range sortedKeys(s.Direct) {
		fmt.Fprintf(&sb, "    %s -- \"%d\" --> %s\n", root, s.Direct[n], declare(n))
	}
	for _, n := range sortedKeys(s.Position) {
		fmt.Fprintf(&sb, "    %s -. \"%d\" .-> %s\n", root, s.Position[n], declare(n))
	}

	pairs := slices.Collect(maps.Keys(s.Combination))
	slices.SortFunc(pairs, func(a, b table.Pair) int {
		if a.First != b.First {
			return a.First - b.First
		}
		return a.Second - b.Second
	})
	for _, p := range pairs {
		pid := fmt.Sprintf("p%d_%d", p.First, p.Second)
		fmt.Fprintf(&sb, "    %s[[\"%d, %d\"]]\n", pid, p.First, p.Second)
		successors := s.Combination[p]
		for _, n := range sortedKeys(successors) {
			fmt.Fprintf(&sb, "    %s == \"%d\" ==> %s\n", pid, successors[n], declare(n))
		}
	}

	if overlay != nil && len(overlay.Selected) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")
		for _, n := range overlay.Selected {
			if id := numberID(n); declared[id] {
				fmt.Fprintf(&sb, "    class %s selected;\n", id)
			}
		}
	}

	return sb.String()
}

func numberID(n int) string {
	return fmt.Sprintf("n%d", n)
}

func sortedKeys(m map[int]int) []int {
	return slices.Sorted(maps.Keys(m))
}
