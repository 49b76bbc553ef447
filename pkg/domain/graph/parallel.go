package graph

// GroupingStrategy partitions a graph's tasks into groups eligible for
// concurrent execution. Implementations must guarantee that no two members
// of a group have a direct dependency edge between them; stronger guarantees
// are up to the individual strategy.
type GroupingStrategy interface {
	Partition(g *Graph) [][]string
}

// GreedyGrouping is a single-pass grouping: walk tasks in plan order, open a
// group for the first unassigned task, then pull in every later unassigned
// task with no direct edge to or from any current member. Independence is
// checked pairwise against members only, not transitively through the rest
// of the graph, so groups of three or more can still share an indirect
// ordering constraint. Substitute a stricter strategy here if that matters
// for the executor.
type GreedyGrouping struct{}

// Partition implements GroupingStrategy. Groups of size one are dropped;
// those tasks simply run in their sequential slot.
func (GreedyGrouping) Partition(g *Graph) [][]string {
	assigned := make(map[string]bool, g.Len())
	ids := g.TaskIDs()

	var groups [][]string
	for i, id := range ids {
		if assigned[id] {
			continue
		}
		group := []string{id}
		assigned[id] = true

		for _, candidate := range ids[i+1:] {
			if assigned[candidate] {
				continue
			}
			independent := true
			for _, member := range group {
				if g.Connected(member, candidate) {
					independent = false
					break
				}
			}
			if independent {
				group = append(group, candidate)
				assigned[candidate] = true
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}
