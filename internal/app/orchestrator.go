package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/maskr/internal/catalog"
	"github.com/justyntemme/maskr/internal/config"
	"github.com/justyntemme/maskr/internal/debug"
	"github.com/justyntemme/maskr/internal/httpx"
	"github.com/justyntemme/maskr/internal/imageload"
	"github.com/justyntemme/maskr/internal/mask"
	"github.com/justyntemme/maskr/internal/store"
	"github.com/justyntemme/maskr/internal/tree"
	"github.com/justyntemme/maskr/internal/ui"
)

// loaderWorkers is the number of concurrent image fetches.
const loaderWorkers = 4

type Orchestrator struct {
	window *app.Window
	cfg    config.Config
	ui     *ui.Renderer
	shell  *Shell
	loader *imageload.Loader
	store  *store.DB
}

// Sources builds the folder tree, the folders expanded at startup and the
// catalog provider described by cfg.
func Sources(cfg config.Config) ([]*tree.Node, []string, catalog.Provider, error) {
	var (
		forest   []*tree.Node
		expanded = cfg.Gallery.Expanded
	)
	if path := cfg.Sources.TreeManifest; path != "" {
		m, err := tree.LoadManifest(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("tree manifest: %w", err)
		}
		forest = m.Forest
		if len(m.Expanded) > 0 {
			expanded = m.Expanded
		}
	} else {
		forest = tree.Mock().Forest
	}

	var provider catalog.Provider = catalog.Mock{}
	timeout := time.Duration(cfg.Sources.FetchTimeoutSec) * time.Second
	switch {
	case cfg.Sources.CatalogURL != "":
		provider = catalog.HTMLIndex{BaseURL: cfg.Sources.CatalogURL, Client: httpx.NewClient(timeout)}
	case cfg.Sources.CatalogManifest != "":
		m, err := catalog.LoadManifest(cfg.Sources.CatalogManifest)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("catalog manifest: %w", err)
		}
		provider = m
	}
	return forest, expanded, provider, nil
}

func NewOrchestrator(mgr *config.Manager) (*Orchestrator, error) {
	cfg := mgr.Get()
	forest, expanded, provider, err := Sources(cfg)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		window: new(app.Window),
		cfg:    cfg,
		store:  store.NewDB(),
	}
	notify := o.window.Invalidate

	timeout := time.Duration(cfg.Sources.FetchTimeoutSec) * time.Second
	fetcher := imageload.Fetcher{Client: httpx.NewClient(timeout)}
	if cfg.Sources.CatalogManifest != "" {
		fetcher.BaseDir = filepath.Dir(cfg.Sources.CatalogManifest)
	}
	o.loader = imageload.NewLoader(fetcher, loaderWorkers, notify)

	thumbs := ui.NewThumbnailCache(o.loader, cfg.Gallery.ThumbnailCacheSize, cfg.Gallery.ThumbnailSize)

	var configErr string
	if perr := mgr.ParseError(); perr != nil {
		configErr = perr.Error()
	}
	o.ui = ui.NewRenderer(ui.Options{
		ConfigError: configErr,
		DarkMode:    mgr.IsDarkMode(),
		RailWidth:   cfg.UI.RailWidth,
		Expanded:    expanded,
		BrushColor:  cfg.Editor.BrushColor,
		BrushWidth:  cfg.Editor.BrushWidth,
		Thumbs:      thumbs,
		Keymap:      config.NewKeymap(cfg.Hotkeys),
	})

	if err := o.store.Open(cfg.Store.Path); err != nil {
		log.Printf("Failed to open DB: %v", err)
		o.store = nil
	} else {
		o.store.Notify = notify
	}

	o.shell = NewShell(Deps{
		Forest:        forest,
		Provider:      provider,
		Editor:        mask.NewEditor(float64(cfg.Editor.CanvasWidth), float64(cfg.Editor.CanvasHeight)),
		Exporter:      mask.Exporter{Dir: cfg.Export.Directory},
		Loader:        o.loader,
		Results:       o.loader.Results(),
		Thumbs:        thumbs,
		Store:         o.store,
		Toasts:        o.ui,
		Notify:        notify,
		InitialFolder: cfg.Gallery.InitialFolder,
		Columns:       cfg.Gallery.ColumnsPerRow,
		ExportDir:     cfg.Export.Directory,
		FetchTimeout:  timeout,
	})
	return o, nil
}

func (o *Orchestrator) Run() error {
	debug.Log(debug.APP, "starting, export dir %s", o.cfg.Export.Directory)

	if o.store != nil {
		go o.store.Start()
		defer func() {
			o.store.Stop()
			o.store.Close()
		}()
	}
	defer o.loader.Close()
	defer o.shell.Close()

	o.window.Option(
		app.Title("Maskr"),
		app.Size(unit.Dp(1280), unit.Dp(860)),
	)
	o.shell.Start()

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			o.shell.Drain()
			gtx := app.NewContext(&ops, e)
			events := o.ui.Layout(gtx, &o.shell.State)
			for _, evt := range events {
				o.shell.Handle(evt)
			}
			if len(events) > 0 {
				o.window.Invalidate()
			}
			e.Frame(gtx.Ops)
		}
	}
}

// Main runs the application until the window is closed.
func Main(mgr *config.Manager) {
	go func() {
		o, err := NewOrchestrator(mgr)
		if err != nil {
			log.Fatal(err)
		}
		if err := o.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
