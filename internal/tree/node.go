// Package tree holds the read-only folder hierarchy shown in the explorer
// rail and the view state (expansion, selection) layered on top of it.
package tree

import (
	"errors"
	"strings"
)

// Kind distinguishes folders from files.
type Kind int

const (
	Folder Kind = iota
	File
)

func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "folder"
}

// Node represents a single entry in the tree. Nodes are never modified after
// a Source hands them out.
type Node struct {
	Name     string
	Path     string // slash-delimited, unique within a tree
	Kind     Kind
	Children []*Node
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n.Kind == Folder }

// HasChildren reports whether the node is a folder with at least one child.
func (n *Node) HasChildren() bool { return n.Kind == Folder && len(n.Children) > 0 }

// ErrNotFound is returned when a path does not name a node.
var ErrNotFound = errors.New("tree: path not found")

// Source supplies the hierarchy. Subtree("") returns the whole forest; any
// other path returns a one-element forest rooted at that node.
type Source interface {
	Subtree(root string) ([]*Node, error)
}

// Find returns the node with the given path, searching depth first.
func Find(nodes []*Node, path string) *Node {
	for _, n := range nodes {
		if n.Path == path {
			return n
		}
		if n.Kind == Folder && strings.HasPrefix(path, n.Path+"/") {
			if found := Find(n.Children, path); found != nil {
				return found
			}
		}
	}
	return nil
}

func subtree(forest []*Node, root string) ([]*Node, error) {
	if root == "" || root == "/" {
		return forest, nil
	}
	n := Find(forest, root)
	if n == nil {
		return nil, ErrNotFound
	}
	return []*Node{n}, nil
}

func joinPath(parent, name string) string {
	return parent + "/" + name
}
