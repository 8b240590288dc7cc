package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/maskr/internal/tree"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maskr", "config.json")
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if diff := cmp.Diff(*DefaultConfig(), m.Get()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultExpandedFollowsMockTree(t *testing.T) {
	cfg := DefaultConfig()
	if diff := cmp.Diff(tree.MockExpanded, cfg.Gallery.Expanded); diff != "" {
		t.Errorf("expanded mismatch (-want +got):\n%s", diff)
	}
	cfg.Gallery.Expanded[0] = "/Elsewhere"
	if tree.MockExpanded[0] == "/Elsewhere" {
		t.Error("default config aliases tree.MockExpanded")
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"gallery":{"columnsPerRow":5}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := m.Get()
	if cfg.Gallery.ColumnsPerRow != 5 {
		t.Errorf("ColumnsPerRow = %d, want 5", cfg.Gallery.ColumnsPerRow)
	}
	if cfg.Editor.CanvasWidth != 800 || cfg.Editor.CanvasHeight != 600 {
		t.Errorf("canvas = %dx%d, want 800x600", cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight)
	}
	if cfg.UI.RailWidth != 320 {
		t.Errorf("RailWidth = %d, want 320", cfg.UI.RailWidth)
	}
}

func TestLoadClampsColumns(t *testing.T) {
	testCases := []struct {
		raw  string
		want int
	}{
		{`{"gallery":{"columnsPerRow":0}}`, 1},
		{`{"gallery":{"columnsPerRow":-3}}`, 1},
		{`{"gallery":{"columnsPerRow":9}}`, 6},
		{`{"gallery":{"columnsPerRow":4}}`, 4},
	}

	for _, tc := range testCases {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(tc.raw), 0o644); err != nil {
			t.Fatal(err)
		}
		m := NewManager(path)
		if err := m.Load(); err != nil {
			t.Fatalf("Load(%s): %v", tc.raw, err)
		}
		if got := m.Get().Gallery.ColumnsPerRow; got != tc.want {
			t.Errorf("Load(%s): columns = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestLoadParseErrorFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {`), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load should not fail on parse errors: %v", err)
	}
	if m.ParseError() == nil {
		t.Error("expected ParseError to be recorded")
	}
	if m.Get().Gallery.InitialFolder != "/Photos" {
		t.Errorf("expected defaults after parse error, got %+v", m.Get().Gallery)
	}
}

func TestOverrideDoesNotSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	m.Override(func(c *Config) { c.Export.Directory = "/tmp/elsewhere" })

	if got := m.Get().Export.Directory; got != "/tmp/elsewhere" {
		t.Errorf("Export.Directory = %q", got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "/tmp/elsewhere") {
		t.Error("override leaked into config file")
	}
}

func TestGenerateConfigBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	backup, err := GenerateConfig(path)
	if err != nil {
		t.Fatalf("GenerateConfig: %v", err)
	}
	if backup != "" {
		t.Errorf("expected no backup for fresh config, got %q", backup)
	}

	if err := os.WriteFile(path, []byte(`{"ui":{"theme":"dark"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	backup, err = GenerateConfig(path)
	if err != nil {
		t.Fatalf("GenerateConfig: %v", err)
	}
	if backup == "" {
		t.Fatal("expected a backup path")
	}
	old, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if !strings.Contains(string(old), "dark") {
		t.Errorf("backup does not hold the previous config: %s", old)
	}

	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if m.IsDarkMode() {
		t.Error("regenerated config should use the default light theme")
	}
}
