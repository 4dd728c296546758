package track_sql

import (
	"context"
	"database/sql"
	"errors"
)

// UpsertTrack records the terminal state of one acquisition, replacing any
// earlier row for the same source ID.
func (c *Client) UpsertTrack(ctx context.Context, record Record) error {
	c.Semaphore.Acquire()
	defer c.Semaphore.Release()
	_, err := c.SQLClient.ExecContext(ctx,
		`INSERT INTO track (id, title, artist, album, path, status, error_message) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, artist = excluded.artist, album = excluded.album,
		path = excluded.path, status = excluded.status, error_message = excluded.error_message`,
		record.ID, record.Title, record.Artist, record.Album, record.Path, record.Status, record.ErrorMessage)
	return err
}

// GetTrack returns the stored record for id, or ok=false when none exists.
func (c *Client) GetTrack(ctx context.Context, id string) (Record, bool, error) {
	c.Semaphore.Acquire()
	defer c.Semaphore.Release()
	row := c.SQLClient.QueryRowContext(ctx,
		"SELECT id, title, artist, album, path, status, error_message FROM track WHERE id = ?", id)
	var record Record
	err := row.Scan(&record.ID, &record.Title, &record.Artist, &record.Album, &record.Path, &record.Status, &record.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

func (c *Client) DeleteTrack(ctx context.Context, id string) error {
	c.Semaphore.Acquire()
	defer c.Semaphore.Release()
	_, err := c.SQLClient.ExecContext(ctx, "DELETE FROM track WHERE id = ?", id)
	return err
}

// AddChatStats bumps the delivery counters for a chat.
func (c *Client) AddChatStats(ctx context.Context, chatID int64, succeeded, failed int) error {
	c.Semaphore.Acquire()
	defer c.Semaphore.Release()
	_, err := c.SQLClient.ExecContext(ctx,
		`INSERT INTO chat_stats (chat_id, succeeded, failed) VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET succeeded = succeeded + excluded.succeeded, failed = failed + excluded.failed`,
		chatID, succeeded, failed)
	return err
}

func (c *Client) GetChatStats(ctx context.Context, chatID int64) (ChatStats, error) {
	c.Semaphore.Acquire()
	defer c.Semaphore.Release()
	row := c.SQLClient.QueryRowContext(ctx,
		"SELECT chat_id, succeeded, failed FROM chat_stats WHERE chat_id = ?", chatID)
	var stats ChatStats
	err := row.Scan(&stats.ChatID, &stats.Succeeded, &stats.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return ChatStats{ChatID: chatID}, nil
	}
	return stats, err
}
