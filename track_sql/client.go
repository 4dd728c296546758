package track_sql

import (
	"database/sql"

	"github.com/gcottom/semaphore"
	_ "modernc.org/sqlite"

	"spotgrab/config"
)

func NewClient(cfg *config.Config) (*Client, error) {
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := CreateTables(db); err != nil {
		return nil, err
	}
	return &Client{
		Config:    cfg,
		SQLClient: db,
		Semaphore: semaphore.NewSemaphore(1),
	}, nil
}

func CreateTables(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS track (
		"id" TEXT NOT NULL PRIMARY KEY,
		"title" TEXT NOT NULL,
		"artist" TEXT,
		"album" TEXT,
		"path" TEXT,
		"status" TEXT,
		"error_message" TEXT
	);`); err != nil {
		return err
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS chat_stats (
		"chat_id" INTEGER NOT NULL PRIMARY KEY,
		"succeeded" INTEGER NOT NULL DEFAULT 0,
		"failed" INTEGER NOT NULL DEFAULT 0
	);`)
	return err
}
