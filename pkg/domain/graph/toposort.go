package graph

// color marks for the depth-first traversal.
type color uint8

const (
	white color = iota // unvisited
	gray               // in progress
	black              // done
)

// Sort returns a topological order over the graph: every task appears after
// all of its dependencies, exactly once. Ties among independent tasks are
// broken by plan declaration order, so the result is reproducible for the
// same input.
func (g *Graph) Sort() ([]string, error) {
	marks := make(map[string]color, len(g.order))
	order := make([]string, 0, len(g.order))

	var visit func(id string) error
	visit = func(id string) error {
		switch marks[id] {
		case black:
			return nil
		case gray:
			return &CycleError{TaskID: id}
		}
		marks[id] = gray
		for _, dep := range g.DependsOn(id) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		marks[id] = black
		order = append(order, id)
		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
