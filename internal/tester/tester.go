package tester

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emrgen/wiki/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testPath = filepath.Join(os.TempDir(), fmt.Sprintf("wiki-test-%d", os.Getpid()))
	db       *gorm.DB
)

// Setup replaces the test database with a fresh, migrated sqlite file.
func Setup() {
	closeDB()
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(filepath.Join(testPath, "db"), os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(filepath.Join(testPath, "db", "wiki.db")+"?_busy_timeout=5000"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

// StoragePath is a directory for attachment blobs, removed with the database.
func StoragePath() string {
	return filepath.Join(testPath, "attachments")
}

func RemoveDBFile() {
	err := os.RemoveAll(testPath)
	if err != nil {
		panic(err)
	}
}

// Teardown closes the test database and removes its files.
func Teardown() {
	closeDB()
	RemoveDBFile()
}

func closeDB() {
	if db == nil {
		return
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	db = nil
}
