package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/primait/avrogen/internal/schema"
)

// Order returns every FQN in table such that each type comes after all the
// types it refers to. Ties are broken lexically, so the order is stable.
//
// References to names missing from the table yield a DependencyError with
// CodeUnresolved. A cycle between two or more types yields CodeCycle naming
// every member of every cycle; no partial order is returned.
func Order(table schema.GlobalTable) ([]string, error) {
	graph, err := buildDependencyGraph(table)
	if err != nil {
		return nil, err
	}

	// Kahn's algorithm over dependency -> dependent edges
	indegree := make(map[string]int, len(graph))
	for node := range graph {
		indegree[node] = 0
	}
	for _, dependents := range graph {
		for _, dependent := range dependents {
			indegree[dependent]++
		}
	}

	var ready []string
	for node, deg := range indegree {
		if deg == 0 {
			ready = append(ready, node)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(graph))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		var released []string
		for _, dependent := range graph[node] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		ready = append(ready, released...)
		sort.Strings(ready)
	}

	if len(order) < len(graph) {
		cycles := findCycles(graph)
		var names, paths []string
		for _, scc := range cycles {
			names = append(names, scc...)
			paths = append(paths, formatCyclePath(reconstructCyclePath(scc, graph)))
		}
		return nil, &DependencyError{
			Code:    CodeCycle,
			Names:   sortedUnique(names),
			Message: "cyclic dependency: " + strings.Join(paths, "; "),
		}
	}

	return order, nil
}

// buildDependencyGraph links each referenced FQN to the definitions that
// refer to it. Self references are dropped.
func buildDependencyGraph(table schema.GlobalTable) (dependencyGraph, error) {
	graph := make(dependencyGraph, table.Len())
	var unresolved []string

	for _, name := range table.Names() {
		// Initialize with empty slice so every node exists in the graph
		if graph[name] == nil {
			graph[name] = []string{}
		}
		def, _ := table.Lookup(name)
		for _, ref := range References(def) {
			if ref == name {
				continue
			}
			if _, ok := table.Lookup(ref); !ok {
				unresolved = append(unresolved, ref)
				continue
			}
			graph[ref] = append(graph[ref], name)
		}
	}

	if len(unresolved) > 0 {
		return nil, &DependencyError{
			Code:    CodeUnresolved,
			Names:   sortedUnique(unresolved),
			Message: "referenced but not defined",
		}
	}

	for node := range graph {
		sort.Strings(graph[node])
	}
	return graph, nil
}

// CheckReferences verifies that every reference inside s and every
// definition in table resolves against table.
func CheckReferences(s schema.Schema, table schema.GlobalTable) error {
	var refs []string
	collectReferences(s, &refs)
	var missing []string
	for _, ref := range refs {
		if _, ok := table.Lookup(ref); !ok {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{
			Code:    CodeUnresolved,
			Names:   sortedUnique(missing),
			Message: "referenced but not defined",
		}
	}
	if _, err := buildDependencyGraph(table); err != nil {
		return fmt.Errorf("check references: %w", err)
	}
	return nil
}
