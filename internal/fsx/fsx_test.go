package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noTempLeft(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "."+name+".tmp-") {
			t.Fatalf("temp file left behind: %q", e.Name())
		}
	}
}

func TestWriteFileAtomicReplace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	if err := WriteFileAtomicReplace(dir, "a.txt", []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomicReplace(dir, "a.txt", []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "second" {
		t.Errorf("content = %q, want second", b)
	}
	noTempLeft(t, dir, "a.txt")
}

func TestWriteFileAtomicRenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error { return os.ErrPermission }
	defer func() { renameFunc = old }()

	if err := WriteFileAtomicReplace(dir, "a.txt", []byte("hello")); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("err = %v, want ErrPermission", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Error("destination should not exist after a failed rename")
	}
	noTempLeft(t, dir, "a.txt")
}

func TestWriteFileAtomicRefusesDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "a.txt"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := WriteFileAtomicReplace(dir, "a.txt", []byte("x"))
	var conflict *PathTypeConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want PathTypeConflictError", err)
	}
}
