package repository

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Entry is one persisted collection: the full JSON document for a
// top-level key (channels, users, analytics).
type Entry struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value []byte `json:"value"`
}

// Connect opens the local storage file and migrates the single
// key-value table. The whole application state lives in this file, the
// way the reference clients keep it in localStorage/AsyncStorage.
func Connect() {
	path := os.Getenv("STORAGE_FILE")
	if path == "" {
		path = "reelstgram.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("could not open storage file %s: %v", path, err)
	}

	if err := DB.AutoMigrate(&Entry{}); err != nil {
		log.Fatalf("could not migrate storage table: %v", err)
	}
}
