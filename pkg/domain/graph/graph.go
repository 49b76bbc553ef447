// Package graph builds and schedules the task dependency graph of a plan.
package graph

import (
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

// Graph is the adjacency structure over a plan's flattened task set.
// Every task id in the plan is a key, tasks without dependencies map to
// an empty set. Insertion order of tasks is preserved for deterministic
// traversal.
type Graph struct {
	order []string
	edges map[string]map[string]struct{}
}

// Build constructs the dependency graph for a plan. Edges declared inline on
// tasks and edges declared as standalone TaskDependency records are merged
// as a set union, so a dependency recorded in either place counts.
func Build(p *plan.TaskPlan) (*Graph, error) {
	tasks := p.Tasks()

	g := &Graph{
		order: make([]string, 0, len(tasks)),
		edges: make(map[string]map[string]struct{}, len(tasks)),
	}
	for _, t := range tasks {
		g.order = append(g.order, t.ID)
		g.edges[t.ID] = make(map[string]struct{})
	}

	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := g.edges[dep]; !ok {
				return nil, &UnknownReferenceError{TaskID: t.ID, ReferencedID: dep}
			}
			g.edges[t.ID][dep] = struct{}{}
		}
	}
	for _, rec := range p.Dependencies {
		if _, ok := g.edges[rec.TaskID]; !ok {
			return nil, &UnknownReferenceError{TaskID: rec.TaskID}
		}
		for _, dep := range rec.DependsOn {
			if _, ok := g.edges[dep]; !ok {
				return nil, &UnknownReferenceError{TaskID: rec.TaskID, ReferencedID: dep}
			}
			g.edges[rec.TaskID][dep] = struct{}{}
		}
	}

	return g, nil
}

// TaskIDs returns all task ids in plan declaration order.
func (g *Graph) TaskIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// DependsOn returns the direct dependencies of a task.
func (g *Graph) DependsOn(taskID string) []string {
	deps := make([]string, 0, len(g.edges[taskID]))
	// Deterministic: follow plan order rather than map order.
	for _, id := range g.order {
		if _, ok := g.edges[taskID][id]; ok {
			deps = append(deps, id)
		}
	}
	return deps
}

// HasEdge reports whether from directly depends on to.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[from][to]
	return ok
}

// Connected reports whether two tasks have a direct dependency edge in
// either direction.
func (g *Graph) Connected(a, b string) bool {
	return g.HasEdge(a, b) || g.HasEdge(b, a)
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}
