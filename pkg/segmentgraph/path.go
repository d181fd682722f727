package segmentgraph

// FindPath returns the shortest connection path from one segment to
// another, including both ends, using breadth-first search. Neighbor
// lists are sorted, so ties between equal-length paths resolve the
// same way on every run.
//
// Returns nil and false when no path exists or either ID is unknown
// to the graph. A segment trivially reaches itself.
func (gr *Graph) FindPath(from, to string) ([]string, bool) {
	if from == to {
		if _, ok := gr.adjacency[from]; !ok {
			return nil, false
		}
		return []string{from}, true
	}
	if _, ok := gr.adjacency[from]; !ok {
		return nil, false
	}
	if _, ok := gr.adjacency[to]; !ok {
		return nil, false
	}

	parent := map[string]string{from: from}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range gr.adjacency[current] {
			if _, seen := parent[c.To]; seen {
				continue
			}
			parent[c.To] = current
			if c.To == to {
				return reconstruct(parent, from, to), true
			}
			queue = append(queue, c.To)
		}
	}
	return nil, false
}

func reconstruct(parent map[string]string, from, to string) []string {
	var path []string
	for id := to; ; id = parent[id] {
		path = append(path, id)
		if id == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Nearest returns the closest segment (by hop count) reachable from
// the start that satisfies the predicate, searching breadth-first.
// The start itself is a candidate. Returns "" and false when nothing
// reachable matches.
func (gr *Graph) Nearest(from string, match func(id string) bool) (string, bool) {
	if _, ok := gr.adjacency[from]; !ok {
		return "", false
	}
	if match(from) {
		return from, true
	}

	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range gr.adjacency[current] {
			if seen[c.To] {
				continue
			}
			seen[c.To] = true
			if match(c.To) {
				return c.To, true
			}
			queue = append(queue, c.To)
		}
	}
	return "", false
}
