package tree

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// manifestEntry is the YAML shape of one node. Paths are derived from the
// nesting, so the file only carries names.
type manifestEntry struct {
	Name     string          `yaml:"name"`
	Kind     string          `yaml:"kind,omitempty"` // "folder" (default) or "file"
	Children []manifestEntry `yaml:"children,omitempty"`
}

type manifestFile struct {
	Tree     []manifestEntry `yaml:"tree"`
	Expanded []string        `yaml:"expanded,omitempty"`
}

// Manifest is a Source read from a YAML file:
//
//	tree:
//	  - name: Photos
//	    children:
//	      - name: Nature
//	expanded: [/Photos]
type Manifest struct {
	Static
	Expanded []string
}

// LoadManifest reads and validates a tree manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest builds a Manifest from YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse tree manifest: %w", err)
	}

	seen := make(map[string]bool)
	forest, err := buildEntries(mf.Tree, "", seen)
	if err != nil {
		return nil, err
	}
	return &Manifest{Static: Static{Forest: forest}, Expanded: mf.Expanded}, nil
}

func buildEntries(entries []manifestEntry, parent string, seen map[string]bool) ([]*Node, error) {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || strings.Contains(name, "/") {
			return nil, fmt.Errorf("tree manifest: invalid name %q under %q", e.Name, parent)
		}
		path := joinPath(parent, name)
		if seen[path] {
			return nil, fmt.Errorf("tree manifest: duplicate path %q", path)
		}
		seen[path] = true

		n := &Node{Name: name, Path: path}
		switch strings.ToLower(e.Kind) {
		case "", "folder", "dir":
			n.Kind = Folder
		case "file":
			if len(e.Children) > 0 {
				return nil, fmt.Errorf("tree manifest: file %q has children", path)
			}
			n.Kind = File
		default:
			return nil, fmt.Errorf("tree manifest: unknown kind %q for %q", e.Kind, path)
		}

		children, err := buildEntries(e.Children, path, seen)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			n.Children = children
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Marshal renders a forest back into manifest YAML.
func Marshal(forest []*Node, expanded []string) ([]byte, error) {
	mf := manifestFile{Tree: toEntries(forest), Expanded: expanded}
	return yaml.Marshal(&mf)
}

func toEntries(nodes []*Node) []manifestEntry {
	var out []manifestEntry
	for _, n := range nodes {
		e := manifestEntry{Name: n.Name, Children: toEntries(n.Children)}
		if n.Kind == File {
			e.Kind = "file"
		}
		out = append(out, e)
	}
	return out
}
