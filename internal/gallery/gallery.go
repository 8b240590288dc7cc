// Package gallery holds the pagination and grid rules of the image gallery.
package gallery

import (
	"fmt"
	"strings"

	"github.com/justyntemme/maskr/internal/catalog"
)

// PageSize is the number of images per page. It does not depend on the
// number of columns.
const PageSize = 12

const (
	MinColumns = 1
	MaxColumns = 6
)

// Page is the derived view of one gallery page.
type Page struct {
	Number      int
	TotalPages  int
	Total       int
	Start, End  int // End is exclusive and may exceed Total
	Items       []catalog.Image
	PrevEnabled bool
	NextEnabled bool
	ShowBar     bool
}

// Paginate slices images for page (1-based). Out-of-range pages are not
// corrected; they yield an empty Items slice.
func Paginate(images []catalog.Image, page int) Page {
	n := len(images)
	total := (n + PageSize - 1) / PageSize
	start := (page - 1) * PageSize
	end := start + PageSize

	p := Page{
		Number:      page,
		TotalPages:  total,
		Total:       n,
		Start:       start,
		End:         end,
		PrevEnabled: page != 1,
		NextEnabled: page != total,
		ShowBar:     total > 1,
	}
	if start >= 0 && start < n {
		p.Items = images[start:min(end, n)]
	}
	return p
}

// Prev returns the previous page number, staying at 1.
func (p Page) Prev() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// Next returns the next page number, staying at TotalPages.
func (p Page) Next() int {
	if p.Number >= p.TotalPages {
		return max(p.TotalPages, 1)
	}
	return p.Number + 1
}

// Summary is the footer text, e.g. "Page 1 of 2 (13 images total)".
func (p Page) Summary() string {
	return fmt.Sprintf("Page %d of %d (%d images total)", p.Number, p.TotalPages, p.Total)
}

// RangeLabel is the footer range text, e.g. "13-13 of 13".
func (p Page) RangeLabel() string {
	return fmt.Sprintf("%d-%d of %d", p.Start+1, min(p.End, p.Total), p.Total)
}

// ClampPage keeps page inside [1, TotalPages] for n images.
func ClampPage(page, n int) int {
	total := (n + PageSize - 1) / PageSize
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// ClampColumns keeps n inside [MinColumns, MaxColumns].
func ClampColumns(n int) int {
	if n < MinColumns {
		return MinColumns
	}
	if n > MaxColumns {
		return MaxColumns
	}
	return n
}

// ParseColumns reads the leading integer of text the way a lenient number
// input would: surrounding space and trailing garbage are ignored, and text
// without a leading integer counts as 1. The result is clamped.
func ParseColumns(text string) int {
	s := strings.TrimSpace(text)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	digits := 0
	n := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n <= MaxColumns*10 {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return MinColumns
	}
	if neg {
		n = -n
	}
	return ClampColumns(n)
}

// CellWidth splits width into cols equal tracks separated by gap.
func CellWidth(width, cols, gap int) int {
	cols = ClampColumns(cols)
	w := (width - gap*(cols-1)) / cols
	if w < 0 {
		return 0
	}
	return w
}

// Rows groups items into rows of cols entries; the last row may be short.
func Rows(items []catalog.Image, cols int) [][]catalog.Image {
	cols = ClampColumns(cols)
	var rows [][]catalog.Image
	for i := 0; i < len(items); i += cols {
		rows = append(rows, items[i:min(i+cols, len(items))])
	}
	return rows
}

// Editing is the optional image under edit. The zero value means no editor
// is open; at most one image can be held.
type Editing struct {
	image catalog.Image
	open  bool
}

// EditingOf returns a slot holding img.
func EditingOf(img catalog.Image) Editing { return Editing{image: img, open: true} }

// Image returns the held image and whether the slot is occupied.
func (e Editing) Image() (catalog.Image, bool) { return e.image, e.open }

// Active reports whether an image is held.
func (e Editing) Active() bool { return e.open }
