package domain

// CategoryNode 是类目树上的一个节点。
// 叶子节点和分组节点共用同一个接口，调用方遍历时不需要区分。
type CategoryNode interface {
	Name() string
	Children() []CategoryNode
}

// CategoryLeaf 叶子类目。
type CategoryLeaf struct {
	name string
}

func NewCategoryLeaf(name string) *CategoryLeaf {
	return &CategoryLeaf{name: name}
}

func (l *CategoryLeaf) Name() string             { return l.name }
func (l *CategoryLeaf) Children() []CategoryNode { return nil }

// CategoryComposite 分组类目，可以挂叶子也可以挂子分组。
type CategoryComposite struct {
	name     string
	children []CategoryNode
}

func NewCategoryComposite(name string) *CategoryComposite {
	return &CategoryComposite{name: name}
}

func (c *CategoryComposite) Name() string { return c.name }

func (c *CategoryComposite) Add(node CategoryNode) {
	c.children = append(c.children, node)
}

func (c *CategoryComposite) Remove(node CategoryNode) {
	for i, child := range c.children {
		if child == node {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *CategoryComposite) Children() []CategoryNode {
	out := make([]CategoryNode, len(c.children))
	copy(out, c.children)
	return out
}

// Walk 深度优先遍历以 node 为根的子树，对每个节点调用 fn。
func Walk(node CategoryNode, fn func(CategoryNode)) {
	fn(node)
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}
