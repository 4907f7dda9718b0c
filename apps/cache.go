package apps

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yllada/tunnelsplit/common"
)

// Cache is a SQLite-backed store for the last fetched application
// catalog and the last acknowledged allowed set. It lets the picker
// open instantly while a fresh fetch runs in the background.
//
// The cache is display-only: the helper remains the source of truth
// for the allowed set.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS catalog (
	package_name TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	icon         TEXT NOT NULL DEFAULT '',
	is_system    INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS allowed (
	package_name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const metaCatalogFetchedAt = "catalog_fetched_at"

// OpenCache opens (creating if necessary) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog cache: %w", err)
	}

	// The cache is accessed from the UI goroutine and the background
	// refresh; a single connection avoids SQLITE_BUSY surprises.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// StoreCatalog replaces the cached catalog with the given apps and
// records the fetch time.
func (c *Cache) StoreCatalog(apps []App) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalog`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO catalog (package_name, name, icon, is_system) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, app := range apps {
		system := 0
		if app.System {
			system = 1
		}
		if _, err := stmt.Exec(app.PackageName, app.Name, app.Icon, system); err != nil {
			return err
		}
	}

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaCatalogFetchedAt, fetchedAt,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	common.LogDebug("catalog cache updated, %d applications", len(apps))
	return nil
}

// Catalog returns the cached catalog and when it was fetched.
// An empty cache returns no apps and a zero time.
func (c *Cache) Catalog() ([]App, time.Time, error) {
	rows, err := c.db.Query(`SELECT package_name, name, icon, is_system FROM catalog`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var apps []App
	for rows.Next() {
		var app App
		var system int
		if err := rows.Scan(&app.PackageName, &app.Name, &app.Icon, &system); err != nil {
			return nil, time.Time{}, err
		}
		app.System = system != 0
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	SortApps(apps)

	fetchedAt, err := c.fetchedAt()
	if err != nil {
		return nil, time.Time{}, err
	}

	return apps, fetchedAt, nil
}

// Fresh reports whether the cached catalog is younger than ttl.
func (c *Cache) Fresh(ttl time.Duration) bool {
	fetchedAt, err := c.fetchedAt()
	if err != nil || fetchedAt.IsZero() {
		return false
	}
	return time.Since(fetchedAt) < ttl
}

func (c *Cache) fetchedAt() (time.Time, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaCatalogFetchedAt).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	fetchedAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, nil // treat unparsable timestamps as "never"
	}
	return fetchedAt, nil
}

// StoreAllowed replaces the cached allowed set.
func (c *Cache) StoreAllowed(packageNames []string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM allowed`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO allowed (package_name) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, pkg := range packageNames {
		if pkg == "" {
			continue
		}
		if _, err := stmt.Exec(pkg); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Allowed returns the cached allowed set in sorted order.
func (c *Cache) Allowed() ([]string, error) {
	rows, err := c.db.Query(`SELECT package_name FROM allowed ORDER BY package_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packageNames := []string{}
	for rows.Next() {
		var pkg string
		if err := rows.Scan(&pkg); err != nil {
			return nil, err
		}
		packageNames = append(packageNames, pkg)
	}
	return packageNames, rows.Err()
}
