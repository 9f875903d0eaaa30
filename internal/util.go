package internal

// ReconstructPath rebuilds the path ending at current by following cameFrom
// until start is reached. The result runs from start to current. If the
// chain breaks before start, the partial chain is returned.
func ReconstructPath[NodeType comparable](
	cameFrom func(NodeType) (NodeType, bool),
	current NodeType,
	start NodeType,
) []NodeType {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom(current)
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
