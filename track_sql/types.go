package track_sql

import (
	"database/sql"

	"github.com/gcottom/semaphore"
	"spotgrab/config"
)

type Client struct {
	Config    *config.Config
	SQLClient *sql.DB
	Semaphore *semaphore.Semaphore
}

// Record maps a catalog source ID to the output file it produced. Keying
// by ID rather than by display strings keeps two tracks that sanitize to
// the same filename from silently colliding in the idempotency check.
type Record struct {
	ID           string
	Title        string
	Artist       string
	Album        string
	Path         string
	Status       string
	ErrorMessage string
}

// ChatStats holds per-chat delivery counters for the bot's /stats command.
type ChatStats struct {
	ChatID    int64
	Succeeded int
	Failed    int
}
