package ecs

// SceneNode is a node of a scene graph, holding how meshes are arranged
// relative to each other when a scene is drawn.
type SceneNode struct {
	parent   *SceneNode
	children []*SceneNode
}

func NewSceneNode() *SceneNode {
	return &SceneNode{}
}

func (n *SceneNode) Parent() *SceneNode {
	return n.parent
}

// Children returns a copy of the node's children.
func (n *SceneNode) Children() []*SceneNode {
	children := make([]*SceneNode, len(n.children))
	copy(children, n.children)
	return children
}

// SetParent sets the node's parent without adding it to the parent's children.
func (n *SceneNode) SetParent(parent *SceneNode) *SceneNode {
	n.parent = parent
	return n
}

// AddChild appends children and makes n their parent. Nil children are skipped.
func (n *SceneNode) AddChild(children ...*SceneNode) *SceneNode {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = n
		n.children = append(n.children, child)
	}
	return n
}
