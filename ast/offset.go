package ast

// Contains returns true if the offset falls within the node's [Start, End)
// range, or exactly at End when includeRightBound is set. The right-bound
// form is what cursor-position queries use: a cursor sitting just past the
// last byte of a value still belongs to that value.
func (n *Node) Contains(offset int, includeRightBound bool) bool {
	if n.Start <= offset && offset < n.End {
		return true
	}
	return includeRightBound && offset == n.End
}

// NodeAt returns the most specific (deepest) node whose range contains the
// offset, or nil if the offset falls outside this node entirely. Descent
// follows children in ascending Start order and stops as soon as a child
// starts past the offset.
func (n *Node) NodeAt(offset int) *Node {
	return n.findNode(offset, false)
}

// NodeAtEndInclusive behaves like NodeAt but treats a node's End offset as
// inside the node.
func (n *Node) NodeAtEndInclusive(offset int) *Node {
	return n.findNode(offset, true)
}

func (n *Node) findNode(offset int, endInclusive bool) *Node {
	if !n.Contains(offset, endInclusive) {
		return nil
	}
	children := n.Children()
	for i := 0; i < len(children) && children[i].Start <= offset; i++ {
		if found := children[i].findNode(offset, endInclusive); found != nil {
			return found
		}
	}
	return n
}

// Visit walks the subtree in depth-first pre-order, invoking fn for each
// node. Traversal short-circuits the moment fn returns false: no further
// siblings or descendants are visited. The overall result is the logical
// AND of every invoked callback, making Visit usable as an early-exit
// search.
func (n *Node) Visit(fn func(*Node) bool) bool {
	ctn := fn(n)
	children := n.Children()
	for i := 0; i < len(children) && ctn; i++ {
		ctn = children[i].Visit(fn)
	}
	return ctn
}
