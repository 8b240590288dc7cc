package gallery

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/maskr/internal/catalog"
)

func images(n int) []catalog.Image {
	out := make([]catalog.Image, n)
	for i := range out {
		out[i] = catalog.Image{ID: i + 1, Src: fmt.Sprintf("img%d.png", i+1), Title: fmt.Sprintf("Image %d", i+1)}
	}
	return out
}

func ids(imgs []catalog.Image) []int {
	var out []int
	for _, img := range imgs {
		out = append(out, img.ID)
	}
	return out
}

func TestPaginate(t *testing.T) {
	testCases := []struct {
		n, page   int
		wantIDs   []int
		total     int
		prev      bool
		next      bool
		bar       bool
		rangeText string
		summary   string
	}{
		{10, 1, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, false, false, false, "1-10 of 10", "Page 1 of 1 (10 images total)"},
		{12, 1, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 1, false, false, false, "1-12 of 12", "Page 1 of 1 (12 images total)"},
		{13, 1, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 2, false, true, true, "1-12 of 13", "Page 1 of 2 (13 images total)"},
		{13, 2, []int{13}, 2, true, false, true, "13-13 of 13", "Page 2 of 2 (13 images total)"},
		{25, 2, []int{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24}, 3, true, true, true, "13-24 of 25", "Page 2 of 3 (25 images total)"},
		{13, 3, nil, 2, true, true, true, "25-13 of 13", "Page 3 of 2 (13 images total)"},
	}

	for _, tc := range testCases {
		p := Paginate(images(tc.n), tc.page)
		name := fmt.Sprintf("n=%d page=%d", tc.n, tc.page)
		if diff := cmp.Diff(tc.wantIDs, ids(p.Items)); diff != "" {
			t.Errorf("%s: items mismatch (-want +got):\n%s", name, diff)
		}
		if p.TotalPages != tc.total {
			t.Errorf("%s: TotalPages = %d, want %d", name, p.TotalPages, tc.total)
		}
		if p.PrevEnabled != tc.prev || p.NextEnabled != tc.next || p.ShowBar != tc.bar {
			t.Errorf("%s: prev/next/bar = %v/%v/%v, want %v/%v/%v", name,
				p.PrevEnabled, p.NextEnabled, p.ShowBar, tc.prev, tc.next, tc.bar)
		}
		if got := p.RangeLabel(); got != tc.rangeText {
			t.Errorf("%s: RangeLabel = %q, want %q", name, got, tc.rangeText)
		}
		if got := p.Summary(); got != tc.summary {
			t.Errorf("%s: Summary = %q, want %q", name, got, tc.summary)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1)
	if p.TotalPages != 0 || len(p.Items) != 0 || p.ShowBar {
		t.Errorf("empty page = %+v", p)
	}
}

func TestPrevNextStayInBounds(t *testing.T) {
	p := Paginate(images(25), 1)
	if p.Prev() != 1 {
		t.Errorf("Prev on page 1 = %d", p.Prev())
	}
	if p.Next() != 2 {
		t.Errorf("Next on page 1 = %d", p.Next())
	}
	last := Paginate(images(25), 3)
	if last.Next() != 3 {
		t.Errorf("Next on last page = %d", last.Next())
	}
	if Paginate(nil, 1).Next() != 1 {
		t.Error("Next on empty gallery should stay at 1")
	}
}

func TestClampPage(t *testing.T) {
	testCases := []struct{ page, n, want int }{
		{1, 0, 1},
		{5, 13, 2},
		{0, 13, 1},
		{2, 24, 2},
		{3, 24, 2},
	}
	for _, tc := range testCases {
		if got := ClampPage(tc.page, tc.n); got != tc.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tc.page, tc.n, got, tc.want)
		}
	}
}

func TestParseColumns(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"abc", 1},
		{"", 1},
		{"7", 6},
		{"4px", 4},
		{"  5 ", 5},
		{"3.9", 3},
		{"-2", 1},
		{"+2", 2},
		{"999999999999999999999", 6},
		{"6", 6},
		{"1", 1},
	}
	for _, tc := range testCases {
		if got := ParseColumns(tc.in); got != tc.want {
			t.Errorf("ParseColumns(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRowsAndCellWidth(t *testing.T) {
	rows := Rows(images(7), 3)
	if len(rows) != 3 || len(rows[2]) != 1 {
		t.Errorf("Rows(7,3) shape = %d rows, last %d", len(rows), len(rows[len(rows)-1]))
	}
	if got := CellWidth(320, 3, 10); got != 100 {
		t.Errorf("CellWidth = %d, want 100", got)
	}
	if got := CellWidth(10, 6, 10); got != 0 {
		t.Errorf("CellWidth narrow = %d, want 0", got)
	}
}

func TestEditingSlot(t *testing.T) {
	var none Editing
	if none.Active() {
		t.Error("zero Editing should be empty")
	}
	img := catalog.Image{ID: 7, Title: "AI Robot"}
	e := EditingOf(img)
	got, ok := e.Image()
	if !ok || got.ID != 7 {
		t.Errorf("Image() = %+v, %v", got, ok)
	}
}
