package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/maskr/internal/httpx"
)

func TestMockSameForEveryFolder(t *testing.T) {
	ctx := context.Background()
	a, err := Mock{}.ImagesFor(ctx, "/Photos")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Mock{}.ImagesFor(ctx, "/Documents")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 10 {
		t.Fatalf("len = %d, want 10", len(a))
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("mock differs by folder:\n%s", diff)
	}
	if a[6].Title != "AI Robot" || a[6].ID != 7 {
		t.Errorf("image 7 = %+v", a[6])
	}

	// Callers may not mutate the shared catalog.
	a[0].Title = "changed"
	c, _ := Mock{}.ImagesFor(ctx, "/Photos")
	if c[0].Title != "Remote Work" {
		t.Error("mutation leaked into the mock catalog")
	}
}

func TestManifestFoldersAndDefault(t *testing.T) {
	m, err := ParseManifest([]byte(`
default:
  - src: https://example.com/a/sunset.jpg
folders:
  /Photos/Nature:
    - {id: 40, src: fox.png, title: Fox, alt: A red fox}
    - {src: owl.webp}
`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	ctx := context.Background()
	nature, _ := m.ImagesFor(ctx, "/Photos/Nature")
	want := []Image{
		{ID: 40, Src: "fox.png", Alt: "A red fox", Title: "Fox"},
		{ID: 2, Src: "owl.webp", Title: "owl"},
	}
	if diff := cmp.Diff(want, nature); diff != "" {
		t.Errorf("nature mismatch (-want +got):\n%s", diff)
	}

	other, _ := m.ImagesFor(ctx, "/Elsewhere")
	if len(other) != 1 || other[0].Title != "sunset" || other[0].ID != 1 {
		t.Errorf("default = %+v", other)
	}

	out, err := m.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseManifest(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if diff := cmp.Diff(m, again); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestManifestRejectsMissingSrc(t *testing.T) {
	if _, err := ParseManifest([]byte("default:\n  - title: nothing\n")); err == nil {
		t.Fatal("expected error for image without src")
	}
}

func TestParseIndexDocumentOrder(t *testing.T) {
	html := []byte(`<html><body>
<img src="/static/one.jpg" alt="First  image">
<div><img data-src="two.png" title="Second"></div>
<img src="data:image/png;base64,AAAA">
<img src="//cdn.example.com/three.webp" data-title="Third">
<img>
</body></html>`)

	got, err := ParseIndex(html, "http://host/Photos/Nature")
	if err != nil {
		t.Fatal(err)
	}
	want := []Image{
		{ID: 1, Src: "http://host/static/one.jpg", Alt: "First image", Title: "First image"},
		{ID: 2, Src: "http://host/Photos/Nature/two.png", Title: "Second"},
		{ID: 3, Src: "https://cdn.example.com/three.webp", Title: "Third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseIndex mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLIndexFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path == "/gone/Photos" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		w.Write([]byte(`<img src="cat.jpg">`))
	}))
	defer srv.Close()

	h := HTMLIndex{BaseURL: srv.URL + "/idx/", Client: httpx.NewClient(0)}
	imgs, err := h.ImagesFor(context.Background(), "/Photos/My Pets")
	if err != nil {
		t.Fatalf("ImagesFor: %v", err)
	}
	if gotPath != "/idx/Photos/My Pets" {
		t.Errorf("server path = %q", gotPath)
	}
	if len(imgs) != 1 || imgs[0].Title != "cat" {
		t.Errorf("images = %+v", imgs)
	}

	h.BaseURL = srv.URL + "/gone"
	_, err = h.ImagesFor(context.Background(), "/Photos")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Stage != "status" {
		t.Fatalf("err = %v, want status FetchError", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusGone {
		t.Errorf("err = %v, want StatusError 410", err)
	}
}

func TestTitleFromSrc(t *testing.T) {
	testCases := []struct {
		src, want string
	}{
		{"https://x/y/fox.jpg?w=800", "fox"},
		{"fox", "fox"},
		{"/a/b/.hidden", ".hidden"},
		{"https://x/dir/", "dir"},
		{"a/b.tar.gz#frag", "b.tar"},
	}
	for _, tc := range testCases {
		if got := titleFromSrc(tc.src); got != tc.want {
			t.Errorf("titleFromSrc(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}
