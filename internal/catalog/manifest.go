package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is a Provider read from YAML:
//
//	default:
//	  - {id: 1, src: https://..., title: Fox}
//	folders:
//	  /Photos/Nature:
//	    - {id: 2, src: ./fox.jpg, title: Fox}
//
// Folders missing from the map get the default list.
type Manifest struct {
	Default []Image            `yaml:"default"`
	Folders map[string][]Image `yaml:"folders"`
}

// LoadManifest reads a catalog manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and normalises a manifest. Missing IDs are numbered
// from 1 per list and missing titles come from the file name.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse catalog manifest: %w", err)
	}
	if err := normalize(m.Default); err != nil {
		return nil, fmt.Errorf("catalog manifest default: %w", err)
	}
	for folder, imgs := range m.Folders {
		if err := normalize(imgs); err != nil {
			return nil, fmt.Errorf("catalog manifest %s: %w", folder, err)
		}
	}
	return &m, nil
}

func normalize(imgs []Image) error {
	for i := range imgs {
		imgs[i].Src = strings.TrimSpace(imgs[i].Src)
		if imgs[i].Src == "" {
			return fmt.Errorf("image %d has no src", i+1)
		}
		if imgs[i].ID == 0 {
			imgs[i].ID = i + 1
		}
		if imgs[i].Title == "" {
			imgs[i].Title = titleFromSrc(imgs[i].Src)
		}
	}
	return nil
}

// ImagesFor implements Provider.
func (m *Manifest) ImagesFor(ctx context.Context, folder string) ([]Image, error) {
	imgs, ok := m.Folders[folder]
	if !ok {
		imgs = m.Default
	}
	out := make([]Image, len(imgs))
	copy(out, imgs)
	return out, nil
}

// Marshal renders the manifest back to YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
