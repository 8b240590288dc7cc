package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/maskr/internal/catalog"
	"github.com/justyntemme/maskr/internal/imageload"
	"github.com/justyntemme/maskr/internal/mask"
	"github.com/justyntemme/maskr/internal/store"
	"github.com/justyntemme/maskr/internal/tree"
	"github.com/justyntemme/maskr/internal/ui"
)

// countProvider returns n images for every folder, or err.
type countProvider struct {
	n   map[string]int
	err error
}

func (p countProvider) ImagesFor(ctx context.Context, folder string) ([]catalog.Image, error) {
	if p.err != nil {
		return nil, p.err
	}
	n, ok := p.n[folder]
	if !ok {
		n = 10
	}
	imgs := make([]catalog.Image, n)
	for i := range imgs {
		imgs[i] = catalog.Image{ID: i + 1, Src: fmt.Sprintf("%s/%d.png", folder, i+1), Title: fmt.Sprintf("Image %d", i+1)}
	}
	return imgs, nil
}

// gatedProvider blocks lookups of a folder until its gate is closed.
type gatedProvider struct {
	gates map[string]chan struct{}
	inner catalog.Provider
}

func (p gatedProvider) ImagesFor(ctx context.Context, folder string) ([]catalog.Image, error) {
	if g, ok := p.gates[folder]; ok {
		select {
		case <-g:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.inner.ImagesFor(ctx, folder)
}

type export struct {
	Title  string
	Points []mask.Point
}

type fakeSink struct {
	exports []export
	err     error
}

func (f *fakeSink) Export(title string, pts []mask.Point) (mask.Artifact, error) {
	if f.err != nil {
		return mask.Artifact{}, f.err
	}
	f.exports = append(f.exports, export{Title: title, Points: pts})
	return mask.Artifact{
		Name:   mask.FileName(title),
		Path:   "/tmp/" + mask.FileName(title),
		MIME:   mask.MIMEType,
		Size:   int64(len(mask.Format(pts))),
		Points: len(pts),
	}, nil
}

type fakeToaster struct {
	success, warning, errors []string
}

func (f *fakeToaster) ShowSuccess(m string) { f.success = append(f.success, m) }
func (f *fakeToaster) ShowWarning(m string) { f.warning = append(f.warning, m) }
func (f *fakeToaster) ShowError(m string)   { f.errors = append(f.errors, m) }

type fakeLoader struct {
	reqs []imageload.Request
}

func (f *fakeLoader) Submit(req imageload.Request) bool {
	f.reqs = append(f.reqs, req)
	return true
}

type fixture struct {
	shell   *Shell
	sink    *fakeSink
	toasts  *fakeToaster
	loader  *fakeLoader
	results chan imageload.Result
}

func newFixture(t *testing.T, provider catalog.Provider) *fixture {
	t.Helper()
	f := &fixture{
		sink:    &fakeSink{},
		toasts:  &fakeToaster{},
		loader:  &fakeLoader{},
		results: make(chan imageload.Result, 8),
	}
	f.shell = NewShell(Deps{
		Forest:   tree.Mock().Forest,
		Provider: provider,
		Exporter: f.sink,
		Loader:   f.loader,
		Results:  f.results,
		Toasts:   f.toasts,
		Columns:  3,
	})
	t.Cleanup(f.shell.Close)
	f.shell.Start()
	f.settle(t)
	return f
}

// settle drains the shell until no catalog lookup is pending.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	eventually(t, func() bool {
		f.shell.Drain()
		return !f.shell.State.Loading
	})
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func (f *fixture) openEditor(t *testing.T, id int) uint64 {
	t.Helper()
	f.shell.Handle(ui.UIEvent{Action: ui.ActionOpenEditor, ImageID: id})
	if !f.shell.editor.IsOpen() {
		t.Fatalf("editor did not open for image %d", id)
	}
	return f.shell.editor.Generation()
}

func TestShellInitialState(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	st := f.shell.State

	if st.Screen != ui.ScreenLanding {
		t.Errorf("Screen = %v, want landing", st.Screen)
	}
	if st.SelectedFolder != "/Photos" || st.ColumnsPerRow != 3 {
		t.Errorf("folder=%q columns=%d", st.SelectedFolder, st.ColumnsPerRow)
	}
	if st.Page.Number != 1 || st.Page.Total != 10 || len(st.Page.Items) != 10 || st.Page.ShowBar {
		t.Errorf("unexpected page %+v", st.Page)
	}

	f.shell.Handle(ui.UIEvent{Action: ui.ActionNavigate, Screen: ui.ScreenExplorer})
	if f.shell.State.Screen != ui.ScreenExplorer {
		t.Errorf("Screen = %v after navigate", f.shell.State.Screen)
	}
}

func TestSelectFolderResetsPage(t *testing.T) {
	f := newFixture(t, countProvider{n: map[string]int{"/Photos": 30, "/Photos/Nature": 13}})

	f.shell.Handle(ui.UIEvent{Action: ui.ActionPageChange, Page: 3})
	if got := f.shell.State.Page.Number; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}

	f.shell.Handle(ui.UIEvent{Action: ui.ActionSelectFolder, Path: "/Photos/Nature"})
	f.settle(t)

	st := f.shell.State
	if st.SelectedFolder != "/Photos/Nature" {
		t.Errorf("SelectedFolder = %q", st.SelectedFolder)
	}
	if st.Page.Number != 1 || st.Page.TotalPages != 2 || st.Page.Total != 13 {
		t.Errorf("page after folder change = %+v", st.Page)
	}
}

func TestSelectFolderIgnoresFilesAndUnknownPaths(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionSelectFolder, Path: "/Nowhere"})
	if f.shell.State.SelectedFolder != "/Photos" {
		t.Errorf("SelectedFolder = %q, want /Photos", f.shell.State.SelectedFolder)
	}
}

func TestSetColumnsClampsAndResetsPage(t *testing.T) {
	f := newFixture(t, countProvider{n: map[string]int{"/Photos": 30}})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionPageChange, Page: 2})

	testCases := []struct {
		in, want int
	}{
		{9, 6},
		{0, 1},
		{4, 4},
	}
	for _, tc := range testCases {
		f.shell.Handle(ui.UIEvent{Action: ui.ActionPageChange, Page: 2})
		f.shell.Handle(ui.UIEvent{Action: ui.ActionSetColumns, Columns: tc.in})
		if got := f.shell.State.ColumnsPerRow; got != tc.want {
			t.Errorf("SetColumns(%d): columns = %d, want %d", tc.in, got, tc.want)
		}
		if got := f.shell.State.Page.Number; got != 1 {
			t.Errorf("SetColumns(%d): page = %d, want 1", tc.in, got)
		}
		if got := len(f.shell.State.Page.Items); got != 12 {
			t.Errorf("SetColumns(%d): %d items on page, want 12", tc.in, got)
		}
	}
}

func TestPageChangeStaysInRange(t *testing.T) {
	f := newFixture(t, countProvider{n: map[string]int{"/Photos": 13}})

	f.shell.Handle(ui.UIEvent{Action: ui.ActionPageChange, Page: 7})
	if got := f.shell.State.Page.Number; got != 2 {
		t.Errorf("page = %d, want 2", got)
	}
	if got := f.shell.State.Page.RangeLabel(); got != "13-13 of 13" {
		t.Errorf("RangeLabel = %q", got)
	}
	f.shell.Handle(ui.UIEvent{Action: ui.ActionPageChange, Page: 0})
	if got := f.shell.State.Page.Number; got != 1 {
		t.Errorf("page = %d, want 1", got)
	}
}

func TestCatalogErrorShown(t *testing.T) {
	f := newFixture(t, countProvider{err: errors.New("index unavailable")})
	st := f.shell.State
	if !strings.Contains(st.CatalogErr, "index unavailable") {
		t.Errorf("CatalogErr = %q", st.CatalogErr)
	}
	if st.Page.Total != 0 || len(st.Page.Items) != 0 {
		t.Errorf("expected empty page, got %+v", st.Page)
	}
}

func TestStaleCatalogResultDropped(t *testing.T) {
	gate := make(chan struct{})
	f := newFixture(t, gatedProvider{
		gates: map[string]chan struct{}{"/Photos/Abstract": gate},
		inner: countProvider{n: map[string]int{"/Photos/Abstract": 1, "/Photos/Nature": 20}},
	})

	f.shell.Handle(ui.UIEvent{Action: ui.ActionSelectFolder, Path: "/Photos/Abstract"})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionSelectFolder, Path: "/Photos/Nature"})
	f.settle(t)
	close(gate)

	// Let the slow lookup finish and be drained
	time.Sleep(20 * time.Millisecond)
	f.shell.Drain()

	if got := f.shell.State.Page.Total; got != 20 {
		t.Errorf("Total = %d, want 20 from the latest lookup", got)
	}
}

func TestOpenEditorLoadsBackground(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	gen := f.openEditor(t, 2)

	imgs, _ := catalog.Mock{}.ImagesFor(context.Background(), "/Photos")
	want := []imageload.Request{{Src: imgs[1].Src, Kind: imageload.Background, Gen: gen}}
	if diff := cmp.Diff(want, f.loader.reqs); diff != "" {
		t.Errorf("load requests mismatch (-want +got):\n%s", diff)
	}

	// A second open is ignored while one editor is up
	f.shell.Handle(ui.UIEvent{Action: ui.ActionOpenEditor, ImageID: 3})
	if img, _ := f.shell.editor.Image(); img.ID != 2 {
		t.Errorf("editing image %d, want 2", img.ID)
	}

	f.results <- imageload.Result{Request: want[0], Image: image.NewRGBA(image.Rect(0, 0, 400, 300))}
	f.shell.Drain()
	if _, pl, ok := f.shell.editor.Background(); !ok || pl.Width != 800 {
		t.Errorf("background not installed: ok=%v placement=%+v", ok, pl)
	}
}

func TestLateBackgroundIgnoredAfterClose(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	gen := f.openEditor(t, 1)
	f.shell.Handle(ui.UIEvent{Action: ui.ActionCloseEditor})

	f.results <- imageload.Result{
		Request: imageload.Request{Kind: imageload.Background, Gen: gen},
		Image:   image.NewRGBA(image.Rect(0, 0, 10, 10)),
	}
	f.results <- imageload.Result{
		Request: imageload.Request{Kind: imageload.Background, Gen: gen},
		Err:     errors.New("timeout"),
	}
	f.shell.Drain()

	if _, _, ok := f.shell.editor.Background(); ok {
		t.Error("late background was installed")
	}
	if len(f.toasts.warning) != 0 {
		t.Errorf("late failure should not warn, got %v", f.toasts.warning)
	}
}

func TestBackgroundFailureWarns(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	gen := f.openEditor(t, 1)

	f.results <- imageload.Result{
		Request: imageload.Request{Kind: imageload.Background, Gen: gen},
		Err:     errors.New("HTTP 404"),
	}
	f.shell.Drain()

	if len(f.toasts.warning) != 1 {
		t.Fatalf("warnings = %v, want one", f.toasts.warning)
	}
	if !f.shell.editor.IsOpen() {
		t.Error("editor should stay usable without a background")
	}
}

func TestStrokeCompleteExports(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.openEditor(t, 1)

	pts := []mask.Point{{X: 10, Y: 20}, {X: 12.5, Y: 22}}
	f.shell.Handle(ui.UIEvent{Action: ui.ActionStrokeComplete, Points: pts})

	want := []export{{Title: "Remote Work", Points: pts}}
	if diff := cmp.Diff(want, f.sink.exports); diff != "" {
		t.Errorf("exports mismatch (-want +got):\n%s", diff)
	}
	if f.shell.State.SavedMasks != 1 {
		t.Errorf("SavedMasks = %d, want 1", f.shell.State.SavedMasks)
	}
	if len(f.toasts.success) != 1 || !strings.Contains(f.toasts.success[0], "Remote_Work_mask.txt") {
		t.Errorf("success toasts = %v", f.toasts.success)
	}
}

func TestSaveAndCloseExportsPendingStroke(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.openEditor(t, 1)

	ed := f.shell.editor
	ed.Press(mask.Point{X: 1, Y: 1})
	ed.Drag(mask.Point{X: 2, Y: 2})
	pts, _ := ed.Release(mask.Point{X: 3, Y: 3})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionStrokeComplete, Points: pts})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionSaveAndClose})

	if ed.IsOpen() {
		t.Error("editor still open after Save & Close")
	}
	// Once on stroke completion, once more for the pending buffer
	if len(f.sink.exports) != 2 {
		t.Fatalf("exports = %d, want 2", len(f.sink.exports))
	}
	if diff := cmp.Diff(pts, f.sink.exports[1].Points); diff != "" {
		t.Errorf("Save & Close exported a different buffer (-want +got):\n%s", diff)
	}
}

func TestSaveAndCloseWithoutStroke(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.openEditor(t, 1)
	f.shell.Handle(ui.UIEvent{Action: ui.ActionSaveAndClose})

	if f.shell.editor.IsOpen() {
		t.Error("editor still open")
	}
	if len(f.sink.exports) != 0 {
		t.Errorf("exported %d masks without a stroke", len(f.sink.exports))
	}
}

func TestExportFailureKeepsEditorOpen(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.openEditor(t, 1)
	f.sink.err = errors.New("disk full")

	ed := f.shell.editor
	ed.Press(mask.Point{X: 5, Y: 5})
	pts, _ := ed.Release(mask.Point{X: 5, Y: 5})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionStrokeComplete, Points: pts})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionSaveAndClose})

	if !ed.IsOpen() {
		t.Error("editor closed although the export failed")
	}
	if len(f.toasts.errors) != 2 {
		t.Errorf("error toasts = %v, want two", f.toasts.errors)
	}
	if f.shell.State.SavedMasks != 0 {
		t.Errorf("SavedMasks = %d, want 0", f.shell.State.SavedMasks)
	}
}

func TestClearReloadsBackgroundWithoutExport(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	gen := f.openEditor(t, 1)

	ed := f.shell.editor
	ed.Press(mask.Point{X: 1, Y: 1})
	ed.Release(mask.Point{X: 4, Y: 4})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionClearMask})

	if len(f.sink.exports) != 0 {
		t.Errorf("Clear exported %d masks", len(f.sink.exports))
	}
	if len(ed.Strokes()) != 0 || len(ed.Current()) != 0 {
		t.Error("Clear kept strokes")
	}
	if len(f.loader.reqs) != 2 {
		t.Fatalf("load requests = %d, want 2", len(f.loader.reqs))
	}
	if f.loader.reqs[1].Gen == gen {
		t.Error("reload reused the old generation")
	}
}

func TestLeavingExplorerClosesEditor(t *testing.T) {
	f := newFixture(t, catalog.Mock{})
	f.shell.Handle(ui.UIEvent{Action: ui.ActionNavigate, Screen: ui.ScreenExplorer})
	f.openEditor(t, 1)
	f.shell.Handle(ui.UIEvent{Action: ui.ActionNavigate, Screen: ui.ScreenLanding})
	if f.shell.editor.IsOpen() {
		t.Error("editor still open on the landing screen")
	}
}

func TestSettingsRestoredFromStore(t *testing.T) {
	db := store.NewDB()
	if err := db.Open(""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	go db.Start()
	t.Cleanup(func() {
		db.Stop()
		db.Close()
	})
	for key, value := range map[string]string{
		store.KeyColumnsPerRow:  "5",
		store.KeySelectedFolder: "/Photos/Nature",
	} {
		db.RequestChan <- store.Request{Op: store.SaveSetting, Key: key, Value: value}
		<-db.ResponseChan
	}

	s := NewShell(Deps{
		Forest:   tree.Mock().Forest,
		Provider: catalog.Mock{},
		Store:    db,
		Columns:  3,
	})
	t.Cleanup(s.Close)
	s.Start()

	eventually(t, func() bool {
		s.Drain()
		return s.State.ColumnsPerRow == 5 && s.State.SelectedFolder == "/Photos/Nature" && !s.State.Loading
	})
}
