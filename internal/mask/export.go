package mask

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/fsx"
)

// MIMEType of exported mask files.
const MIMEType = "text/plain"

// ErrEmptyMask is returned when exporting a mask without coordinates.
var ErrEmptyMask = errors.New("mask: no coordinates to export")

// Format renders points as "x,y" lines joined by '\n' with no trailing
// newline. Numbers use the shortest form that round-trips.
func Format(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(formatFloat(p.X))
		b.WriteByte(',')
		b.WriteString(formatFloat(p.Y))
	}
	return b.String()
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0" // also turns -0 into 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FileName maps an image title to its mask file name: every character
// outside [A-Za-z0-9] becomes '_' and "_mask.txt" is appended. Characters
// outside the Basic Multilingual Plane count as two, matching UTF-16 based
// tools that produce the same names.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r > 0xFFFF:
			b.WriteString("__")
		default:
			b.WriteByte('_')
		}
	}
	b.WriteString("_mask.txt")
	return b.String()
}

// Artifact describes a written mask file.
type Artifact struct {
	Name   string
	Path   string
	MIME   string
	Size   int64
	Points int
}

// Sink receives finished masks.
type Sink interface {
	Export(title string, pts []Point) (Artifact, error)
}

// Exporter writes masks into Dir, replacing files of the same name.
type Exporter struct {
	Dir string
}

// DefaultDir returns ~/Downloads, or the working directory when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// Export implements Sink.
func (x Exporter) Export(title string, pts []Point) (Artifact, error) {
	if len(pts) == 0 {
		return Artifact{}, ErrEmptyMask
	}
	dir := x.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	name := FileName(title)
	data := []byte(Format(pts))

	if err := fsx.WriteFileAtomicReplace(dir, name, data); err != nil {
		return Artifact{}, fmt.Errorf("export %s: %w", name, err)
	}
	debug.Log(debug.CANVAS, "exported %d points to %s", len(pts), filepath.Join(dir, name))
	return Artifact{
		Name:   name,
		Path:   filepath.Join(dir, name),
		MIME:   MIMEType,
		Size:   int64(len(data)),
		Points: len(pts),
	}, nil
}
