// Package app wires the folder tree, catalog, gallery and mask editor
// together and runs the window.
package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/justyntemme/maskr/internal/catalog"
	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/gallery"
	"github.com/justyntemme/maskr/internal/imageload"
	"github.com/justyntemme/maskr/internal/mask"
	"github.com/justyntemme/maskr/internal/store"
	"github.com/justyntemme/maskr/internal/tree"
	"github.com/justyntemme/maskr/internal/ui"
)

// Toaster shows short notifications. *ui.Renderer implements it.
type Toaster interface {
	ShowSuccess(message string)
	ShowWarning(message string)
	ShowError(message string)
}

// Deps are the collaborators of a Shell. Store, Thumbs and Toasts may be nil.
type Deps struct {
	Forest   []*tree.Node
	Provider catalog.Provider
	Editor   *mask.Editor
	Exporter mask.Sink
	Loader   ui.Submitter
	Results  <-chan imageload.Result
	Thumbs   *ui.ThumbnailCache
	Store    *store.DB
	Toasts   Toaster
	Notify   func() // wakes the UI loop after background work completes

	InitialFolder string
	Columns       int
	ExportDir     string
	FetchTimeout  time.Duration
}

type catalogResult struct {
	gen    uint64
	folder string
	images []catalog.Image
	err    error
}

// Shell owns the page state: selected folder, columns, current page,
// screen and the mask editor. Every method must be called from the UI
// goroutine; background results are applied by Drain.
type Shell struct {
	State ui.State

	provider catalog.Provider
	editor   *mask.Editor
	exporter mask.Sink
	loader   ui.Submitter
	results  <-chan imageload.Result
	thumbs   *ui.ThumbnailCache
	toasts   Toaster
	notify   func()
	timeout  time.Duration

	storeReq  chan<- store.Request
	storeResp <-chan store.Response
	outbox    []store.Request

	images          []catalog.Image
	currentPage     int
	catGen          uint64
	catalogCh       chan catalogResult
	settingsApplied bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewShell creates a shell on the landing screen. Call Start to load the
// initial folder.
func NewShell(d Deps) *Shell {
	if d.Editor == nil {
		d.Editor = mask.NewEditor(mask.SurfaceWidth, mask.SurfaceHeight)
	}
	if d.Provider == nil {
		d.Provider = catalog.Mock{}
	}
	if d.FetchTimeout <= 0 {
		d.FetchTimeout = 20 * time.Second
	}
	if d.InitialFolder == "" {
		d.InitialFolder = "/Photos"
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Shell{
		provider:    d.Provider,
		editor:      d.Editor,
		exporter:    d.Exporter,
		loader:      d.Loader,
		results:     d.Results,
		thumbs:      d.Thumbs,
		toasts:      d.Toasts,
		notify:      d.Notify,
		timeout:     d.FetchTimeout,
		currentPage: 1,
		catalogCh:   make(chan catalogResult, 4),
		ctx:         ctx,
		cancel:      cancel,
	}
	if d.Store != nil {
		s.storeReq = d.Store.RequestChan
		s.storeResp = d.Store.ResponseChan
	}
	s.State = ui.State{
		Screen:         ui.ScreenLanding,
		Forest:         d.Forest,
		SelectedFolder: d.InitialFolder,
		ColumnsPerRow:  gallery.ClampColumns(d.Columns),
		Editor:         d.Editor,
		ExportDir:      d.ExportDir,
	}
	s.repaginate()
	return s
}

// Start loads the initial folder and asks the store for saved settings.
func (s *Shell) Start() {
	s.loadCatalog(s.State.SelectedFolder)
	s.send(store.Request{Op: store.FetchSettings})
}

// Close cancels catalog lookups in flight and waits for them.
func (s *Shell) Close() {
	s.cancel()
	s.wg.Wait()
}

// Handle applies one UI event.
func (s *Shell) Handle(evt ui.UIEvent) {
	if evt.Action == ui.ActionNone {
		return
	}
	debug.Log(debug.APP, "handle %s", evt.Action)

	switch evt.Action {
	case ui.ActionNavigate:
		if evt.Screen != ui.ScreenExplorer && s.editor.IsOpen() {
			s.closeEditor()
		}
		s.State.Screen = evt.Screen
	case ui.ActionSelectFolder:
		s.selectFolder(evt.Path, true)
	case ui.ActionSetColumns:
		s.setColumns(evt.Columns, true)
	case ui.ActionPageChange:
		s.currentPage = gallery.ClampPage(evt.Page, len(s.images))
		s.repaginate()
	case ui.ActionOpenEditor:
		s.openEditor(evt.ImageID)
	case ui.ActionStrokeComplete:
		s.export(evt.Points)
	case ui.ActionClearMask:
		if s.editor.IsOpen() {
			s.loadBackground(s.editor.Clear())
		}
	case ui.ActionSaveAndClose:
		if pts := s.editor.Current(); len(pts) > 0 && !s.export(pts) {
			return // keep the editor open so the user can retry
		}
		s.editor.SaveAndClose()
		s.State.SavedMasks = 0
	case ui.ActionCloseEditor:
		s.closeEditor()
	}
}

// Images returns the catalog of the selected folder.
func (s *Shell) Images() []catalog.Image { return s.images }

func (s *Shell) selectFolder(path string, persist bool) {
	n := tree.Find(s.State.Forest, path)
	if n == nil || !n.IsFolder() {
		debug.Log(debug.APP, "ignoring selection of %q", path)
		return
	}
	changed := path != s.State.SelectedFolder
	s.State.SelectedFolder = path
	s.currentPage = 1
	if persist {
		s.send(store.Request{Op: store.SaveSetting, Key: store.KeySelectedFolder, Value: path})
	}
	if changed || s.State.CatalogErr != "" {
		s.loadCatalog(path)
		return
	}
	s.repaginate()
}

func (s *Shell) setColumns(n int, persist bool) {
	n = gallery.ClampColumns(n)
	if n == s.State.ColumnsPerRow {
		return
	}
	s.State.ColumnsPerRow = n
	s.currentPage = 1
	s.repaginate()
	debug.Log(debug.GALLERY, "columns=%d", n)
	if persist {
		s.send(store.Request{Op: store.SaveSetting, Key: store.KeyColumnsPerRow, Value: strconv.Itoa(n)})
	}
}

func (s *Shell) repaginate() {
	s.currentPage = gallery.ClampPage(s.currentPage, len(s.images))
	s.State.Page = gallery.Paginate(s.images, s.currentPage)
}

// loadCatalog looks up the images of folder in the background. Results of
// older lookups are dropped when they arrive.
func (s *Shell) loadCatalog(folder string) {
	s.catGen++
	gen := s.catGen
	s.State.Loading = true
	s.State.CatalogErr = ""
	debug.Log(debug.CATALOG, "lookup %s gen=%d", folder, gen)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()
		imgs, err := s.provider.ImagesFor(ctx, folder)
		select {
		case s.catalogCh <- catalogResult{gen: gen, folder: folder, images: imgs, err: err}:
		case <-s.ctx.Done():
			return
		}
		if s.notify != nil {
			s.notify()
		}
	}()
}

func (s *Shell) applyCatalog(res catalogResult) {
	if res.gen != s.catGen {
		debug.Log(debug.CATALOG, "drop stale result for %s gen=%d", res.folder, res.gen)
		return
	}
	s.State.Loading = false
	if res.err != nil {
		log.Printf("Catalog error for %s: %v", res.folder, res.err)
		s.images = nil
		s.State.CatalogErr = res.err.Error()
	} else {
		s.images = res.images
		s.State.CatalogErr = ""
		debug.Log(debug.CATALOG, "%s: %d images", res.folder, len(res.images))
	}
	s.repaginate()
}

func (s *Shell) openEditor(id int) {
	if s.editor.IsOpen() {
		return
	}
	for _, img := range s.images {
		if img.ID != id {
			continue
		}
		gen := s.editor.Open(img)
		s.State.SavedMasks = 0
		s.loadBackground(gen)
		return
	}
	debug.Log(debug.APP, "no image with id %d", id)
}

func (s *Shell) closeEditor() {
	s.editor.Close()
	s.State.SavedMasks = 0
}

func (s *Shell) loadBackground(gen uint64) {
	img, ok := s.editor.Image()
	if !ok || s.loader == nil {
		return
	}
	if !s.loader.Submit(imageload.Request{Src: img.Src, Kind: imageload.Background, Gen: gen}) {
		s.warn("Could not queue image " + img.Title)
	}
}

// export writes pts as a mask of the image under edit. It reports whether
// the file was written.
func (s *Shell) export(pts []mask.Point) bool {
	img, ok := s.editor.Image()
	if !ok || len(pts) == 0 || s.exporter == nil {
		return false
	}
	art, err := s.exporter.Export(img.Title, pts)
	if err != nil {
		log.Printf("Export error: %v", err)
		if s.toasts != nil {
			s.toasts.ShowError("Could not save mask: " + err.Error())
		}
		return false
	}

	s.State.SavedMasks++
	if s.toasts != nil {
		s.toasts.ShowSuccess(fmt.Sprintf("Saved %s (%d points, %s)", art.Name, art.Points, humanize.Bytes(uint64(art.Size))))
	}
	s.send(store.Request{Op: store.RecordExport, Export: store.ExportRecord{
		Session: s.editor.Session().String(),
		ImageID: img.ID,
		Title:   img.Title,
		Path:    art.Path,
		Points:  art.Points,
		Bytes:   art.Size,
	}})
	return true
}

func (s *Shell) warn(msg string) {
	log.Print(msg)
	if s.toasts != nil {
		s.toasts.ShowWarning(msg)
	}
}

// send queues a store request without blocking the UI goroutine.
func (s *Shell) send(req store.Request) {
	if s.storeReq == nil {
		return
	}
	s.outbox = append(s.outbox, req)
	s.flush()
}

func (s *Shell) flush() {
	for len(s.outbox) > 0 {
		select {
		case s.storeReq <- s.outbox[0]:
			s.outbox = s.outbox[1:]
		default:
			return
		}
	}
}

// Drain applies every background result that is ready and reports whether
// anything changed.
func (s *Shell) Drain() bool {
	changed := false
	for {
		select {
		case res := <-s.catalogCh:
			s.applyCatalog(res)
		case res := <-s.results:
			s.applyImage(res)
		case resp := <-s.storeResp:
			s.applyStore(resp)
		default:
			s.flush()
			return changed
		}
		changed = true
	}
}

func (s *Shell) applyImage(res imageload.Result) {
	switch res.Kind {
	case imageload.Background:
		if res.Err != nil {
			if s.editor.IsOpen() && res.Gen == s.editor.Generation() {
				s.warn("Could not load image: " + res.Err.Error())
			}
			return
		}
		s.editor.AcceptBackground(res.Gen, res.Image)
	case imageload.Thumbnail:
		if s.thumbs == nil {
			return
		}
		if res.Err != nil {
			s.thumbs.MarkFailed(res.Src)
			return
		}
		s.thumbs.Put(res.Src, res.Image, res.Size)
	}
}

func (s *Shell) applyStore(resp store.Response) {
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return
	}
	switch resp.Op {
	case store.FetchSettings:
		// Only the startup fetch restores settings; later ones echo saves.
		if s.settingsApplied {
			return
		}
		s.settingsApplied = true
		if v, ok := resp.Settings[store.KeyColumnsPerRow]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				s.setColumns(n, false)
			}
		}
		if v, ok := resp.Settings[store.KeySelectedFolder]; ok && v != s.State.SelectedFolder {
			s.selectFolder(v, false)
		}
	case store.FetchExports:
		if s.editor.IsOpen() && resp.Session == s.editor.Session().String() {
			s.State.SavedMasks = resp.Exports
		}
	}
}
