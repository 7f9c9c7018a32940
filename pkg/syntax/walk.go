package syntax

// WalkFunc visits one node. A non-nil error ends the walk.
type WalkFunc func(n *Node) error

// Walk visits root and its descendant nodes in pre-order. Tokens and trivia
// are not visited. The first error returned by fn ends the walk and is
// returned.
func Walk(root *Node, fn WalkFunc) error {
	return WalkWithContext(root, fn, nil)
}

// WalkWithContext calls enter before a node's children and leave after
// them. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for _, child := range root.children {
		if node, ok := child.(*Node); ok {
			if err := WalkWithContext(node, enter, leave); err != nil {
				return err
			}
		}
	}
	if leave == nil {
		return nil
	}
	return leave(root)
}

// FindAll returns root and its descendants that satisfy match, in pre-order.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	if root == nil {
		return nil
	}
	var found []*Node
	for node := range root.DescendantNodesAndSelf() {
		if match(node) {
			found = append(found, node)
		}
	}
	return found
}

// FindFirst returns the first node FindAll would return, or nil.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	if root == nil {
		return nil
	}
	for node := range root.DescendantNodesAndSelf() {
		if match(node) {
			return node
		}
	}
	return nil
}

// FindByKind returns every node of kind under root, root included.
func FindByKind(root *Node, kind Kind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
