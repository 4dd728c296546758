package telegram

import (
	"context"
	"net/http"

	"github.com/gcottom/semaphore"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/services/download"
	"spotgrab/track_sql"
)

// StatsStore persists per-chat delivery counters.
type StatsStore interface {
	AddChatStats(ctx context.Context, chatID int64, succeeded, failed int) error
	GetChatStats(ctx context.Context, chatID int64) (track_sql.ChatStats, error)
}

type Bot struct {
	Config       *config.Config
	Downloader   download.DownloadService
	Stats        StatsStore
	Client       *http.Client
	Token        string
	APIBase      string
	AllowedChats map[int64]bool

	PendingLock *semaphore.Semaphore
	Pending     map[int64]pendingBatch
}

// pendingBatch holds a confirmation-gated batch with its already resolved
// collection, so confirming does not fetch the catalog a second time.
type pendingBatch struct {
	link       entity.Link
	collection entity.Collection
}

// Telegram Bot API wire types, trimmed to the fields the bot consumes.

type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from,omitempty"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

type getUpdatesResponse struct {
	OK          bool     `json:"ok"`
	Result      []Update `json:"result"`
	Description string   `json:"description,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

type sendMessageResponse struct {
	OK          bool    `json:"ok"`
	Result      Message `json:"result"`
	Description string  `json:"description,omitempty"`
}
