package tree

// Static is an in-memory Source.
type Static struct {
	Forest []*Node
}

// Subtree implements Source.
func (s Static) Subtree(root string) ([]*Node, error) {
	return subtree(s.Forest, root)
}

// MockExpanded lists the folders of Mock that start expanded.
var MockExpanded = []string{"/Photos", "/Photos/Nature", "/Photos/Technology"}

// Mock returns the built-in sample hierarchy.
func Mock() Static {
	folder := func(path, name string, children ...*Node) *Node {
		return &Node{Name: name, Path: path, Kind: Folder, Children: children}
	}
	return Static{Forest: []*Node{
		folder("/Photos", "Photos",
			folder("/Photos/Nature", "Nature",
				folder("/Photos/Nature/Landscapes", "Landscapes"),
				folder("/Photos/Nature/Wildlife", "Wildlife"),
			),
			folder("/Photos/Technology", "Technology",
				folder("/Photos/Technology/Computers", "Computers"),
				folder("/Photos/Technology/Programming", "Programming"),
			),
			folder("/Photos/Abstract", "Abstract"),
			folder("/Photos/Architecture", "Architecture"),
		),
		folder("/Documents", "Documents"),
		folder("/Downloads", "Downloads"),
	}}
}
