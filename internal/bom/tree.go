package bom

import (
	appErr "github.com/caresoft/vave-engine/pkg/errors"
)

// Tree owns one project's node hierarchy and maintains an id index with
// parent back-references so lookups are O(1) instead of recursive search.
type Tree struct {
	root   *Node
	byID   map[string]*Node
	parent map[string]*Node
}

// NewTree indexes an assembled node hierarchy. It rejects duplicate ids and
// parent/child level steps other than exactly +1.
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, appErr.New(appErr.CodeInvalid, "tree root is nil")
	}
	t := &Tree{
		root:   root,
		byID:   make(map[string]*Node),
		parent: make(map[string]*Node),
	}
	if err := t.index(root, nil); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) index(n *Node, parent *Node) error {
	if _, dup := t.byID[n.ID]; dup {
		return appErr.Newf(appErr.CodeInvalid, "duplicate node id %q", n.ID)
	}
	if parent == nil {
		if n.Level != 0 {
			return appErr.Newf(appErr.CodeInvalid, "root node %q has level %d, want 0", n.ID, n.Level)
		}
	} else if n.Level != parent.Level+1 {
		return appErr.Newf(appErr.CodeInvalid, "node %q has level %d under parent level %d", n.ID, n.Level, parent.Level)
	}
	if n.Level > MaxLevel {
		return appErr.Newf(appErr.CodeInvalid, "node %q exceeds maximum level %d", n.ID, MaxLevel)
	}
	t.byID[n.ID] = n
	if parent != nil {
		t.parent[n.ID] = parent
	}
	for _, c := range n.Children {
		if err := t.index(c, n); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the tree root.
func (t *Tree) Root() *Node { return t.root }

// Find returns the node with the given id.
func (t *Tree) Find(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Parent returns the parent of the node with the given id. The root has none.
func (t *Tree) Parent(id string) (*Node, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Size returns the total node count.
func (t *Tree) Size() int { return t.root.Size() }

// AddChild appends child under the parent with the given id and assigns its
// level. Fails with not_found for an unknown parent and with
// level_limit_exceeded when the parent sits at the deepest tier.
func (t *Tree) AddChild(parentID string, child *Node) error {
	parent, ok := t.byID[parentID]
	if !ok {
		return appErr.Newf(appErr.CodeNotFound, "parent node %q not found", parentID)
	}
	if parent.Level >= MaxLevel {
		return appErr.Newf(appErr.CodeLevelLimitExceeded, "%s nodes cannot have children", LevelName(MaxLevel))
	}
	if _, dup := t.byID[child.ID]; dup {
		return appErr.Newf(appErr.CodeInvalid, "duplicate node id %q", child.ID)
	}
	child.Level = parent.Level + 1
	parent.Children = append(parent.Children, child)
	t.byID[child.ID] = child
	t.parent[child.ID] = parent
	return nil
}

// Remove detaches the subtree rooted at id from its parent and returns it.
// Sibling order of the remaining children is preserved. The root cannot be
// removed; project deletion handles that path.
func (t *Tree) Remove(id string) (*Node, error) {
	node, ok := t.byID[id]
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "node %q not found", id)
	}
	parent, ok := t.parent[id]
	if !ok {
		return nil, appErr.New(appErr.CodeCannotDeleteRoot, "root node cannot be deleted; delete the project instead")
	}
	for i, c := range parent.Children {
		if c.ID == id {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	node.Walk(func(d *Node) bool {
		delete(t.byID, d.ID)
		delete(t.parent, d.ID)
		return true
	})
	return node, nil
}

// SubtreeIDs returns the ids of the subtree rooted at id in pre-order.
func (t *Tree) SubtreeIDs(id string) ([]string, error) {
	node, ok := t.byID[id]
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "node %q not found", id)
	}
	var ids []string
	node.Walk(func(d *Node) bool {
		ids = append(ids, d.ID)
		return true
	})
	return ids, nil
}
