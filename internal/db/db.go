package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the global database handle.
var DB *gorm.DB

// Init opens the database connection and runs auto-migration. A non-empty
// databaseURL selects postgres (the hosted store); otherwise a local sqlite
// file at databasePath is used.
func Init(databaseURL, databasePath string) error {
	var dialector gorm.Dialector
	if url := strings.TrimSpace(databaseURL); url != "" {
		dialector = postgres.Open(url)
	} else {
		path := strings.TrimSpace(databasePath)
		if path == "" {
			path = "teamsite.db"
		}
		if err := ensureParentDir(path); err != nil {
			return err
		}
		dialector = sqlite.Open(path)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	return DB.AutoMigrate(
		&User{},
		&Member{},
		&GalleryItem{},
		&NewsArticle{},
		&ContactMessage{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
