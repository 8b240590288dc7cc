package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/maskr/internal/debug"
)

type EventType int

const (
	FetchSettings EventType = iota
	SaveSetting
	RecordExport
	FetchExports
)

// Setting keys
const (
	KeyColumnsPerRow  = "columns_per_row"
	KeySelectedFolder = "selected_folder"
)

// ExportRecord is one written mask file.
type ExportRecord struct {
	Session string
	ImageID int
	Title   string
	Path    string
	Points  int
	Bytes   int64
}

type Request struct {
	Op      EventType
	Key     string
	Value   string
	Session string
	Export  ExportRecord
}

type Response struct {
	Op       EventType
	Settings map[string]string // Key-value settings
	Session  string
	Exports  int // exports recorded for Session
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response

	// Notify, when set, is called after every response is queued.
	Notify func()
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// Open initializes the database connection and schema. An empty path keeps
// the database in memory for the lifetime of the process.
func (d *DB) Open(dbPath string) error {
	dsn := dbPath
	if dbPath == "" || dbPath == ":memory:" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	// Each connection to :memory: is a separate database; a single
	// connection also serialises writers for the file case.
	db.SetMaxOpenConns(1)

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		db.Close()
		return err
	}

	exportsQuery := `
	CREATE TABLE IF NOT EXISTS mask_exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		image_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		path TEXT NOT NULL,
		points INTEGER NOT NULL,
		bytes INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS mask_exports_session ON mask_exports(session);
	`
	if _, err := db.Exec(exportsQuery); err != nil {
		db.Close()
		return err
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dsn)
	return nil
}

// Start serves requests until RequestChan is closed.
func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		case RecordExport:
			d.handleRecordExport(req.Export)
		case FetchExports:
			d.handleFetchExports(req.Session)
		}
	}
}

func (d *DB) respond(resp Response) {
	d.ResponseChan <- resp
	if d.Notify != nil {
		d.Notify()
	}
}

func (d *DB) handleFetchSettings() {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		d.respond(Response{Op: FetchSettings, Err: err})
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}

	d.respond(Response{Op: FetchSettings, Settings: settings, Err: rows.Err()})
}

func (d *DB) handleSaveSetting(key, value string) {
	// Use INSERT OR REPLACE to upsert the setting
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	debug.Log(debug.STORE, "setting %s=%s", key, value)
	d.handleFetchSettings()
}

func (d *DB) handleRecordExport(rec ExportRecord) {
	_, err := d.conn.Exec(
		"INSERT INTO mask_exports (session, image_id, title, path, points, bytes) VALUES (?, ?, ?, ?, ?, ?)",
		rec.Session, rec.ImageID, rec.Title, rec.Path, rec.Points, rec.Bytes,
	)
	if err != nil {
		log.Printf("Store Error recording export: %v", err)
		d.respond(Response{Op: RecordExport, Session: rec.Session, Err: err})
		return
	}
	d.handleFetchExports(rec.Session)
}

func (d *DB) handleFetchExports(session string) {
	var n int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM mask_exports WHERE session = ?", session).Scan(&n)
	d.respond(Response{Op: FetchExports, Session: session, Exports: n, Err: err})
}

// Stop closes RequestChan, ending Start once queued requests are served.
func (d *DB) Stop() {
	close(d.RequestChan)
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
