package telegram

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gcottom/go-zaplog"
	"github.com/gcottom/semaphore"
	"go.uber.org/zap"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/services/download"
)

const welcomeText = `🎵 Spotify Music Downloader Bot

Send me a Spotify URL and I'll download it for you!

Supported URLs: tracks, albums, playlists.

Commands:
/start - Show this message
/help - Show help
/stats - Show your download statistics`

const helpText = `How to use:

1. Copy a Spotify link (track/album/playlist)
2. Paste it here
3. Wait for your music!

Albums and playlists are capped at %d tracks and need confirmation
before the batch starts. Every file arrives with metadata and album art.`

func NewBot(cfg *config.Config, downloader download.DownloadService, stats StatsStore) *Bot {
	allowed := make(map[int64]bool)
	for _, id := range cfg.Telegram.AllowedChatIDs {
		allowed[id] = true
	}
	return &Bot{
		Config:       cfg,
		Downloader:   downloader,
		Stats:        stats,
		Client:       &http.Client{Timeout: 90 * time.Second},
		Token:        cfg.Telegram.BotToken,
		APIBase:      strings.TrimRight(cfg.Telegram.APIBaseURL, "/"),
		AllowedChats: allowed,
		PendingLock:  semaphore.NewSemaphore(1),
		Pending:      make(map[int64]pendingBatch),
	}
}

// Run long-polls for updates until the context is cancelled. Batches run
// inline: the bot is deliberately a single sequential consumer.
func (b *Bot) Run(ctx context.Context) {
	zaplog.InfoC(ctx, "telegram bot started, polling for updates")
	offset := 0
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := b.getUpdates(offset)
		if err != nil {
			zaplog.ErrorC(ctx, "getUpdates failed", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	if len(b.AllowedChats) > 0 && !b.AllowedChats[msg.Chat.ID] {
		zaplog.WarnC(ctx, "ignoring message from disallowed chat", zap.Int64("chatID", msg.Chat.ID))
		return
	}
	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start":
		b.reply(ctx, msg.Chat.ID, welcomeText)
	case text == "/help":
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf(helpText, b.Config.Telegram.MaxTracks))
	case text == "/stats":
		b.replyStats(ctx, msg.Chat.ID)
	case strings.Contains(text, "spotify.com/"):
		b.handleLink(ctx, msg.Chat.ID, text)
	default:
		b.reply(ctx, msg.Chat.ID, "❌ Please send a valid Spotify URL (track, album, or playlist)")
	}
}

func (b *Bot) handleLink(ctx context.Context, chatID int64, url string) {
	link, ok := entity.ParseLink(url)
	if !ok {
		b.reply(ctx, chatID, "❌ Invalid Spotify URL. Please send a track, album, or playlist link.")
		return
	}
	collection, err := b.Downloader.Resolve(ctx, link)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to resolve collection", zap.String("id", link.ID), zap.Error(err))
		b.reply(ctx, chatID, fmt.Sprintf("❌ Failed to get %s information.", link.Kind))
		return
	}
	if link.Kind == entity.KindTrack {
		b.runBatch(ctx, chatID, collection)
		return
	}
	// Albums and playlists require an explicit confirmation exchange
	// before the batch starts.
	count := len(collection.Tracks)
	if count > b.Config.Telegram.MaxTracks {
		b.reply(ctx, chatID, fmt.Sprintf("❌ This %s has %d tracks. Maximum allowed is %d.", link.Kind, count, b.Config.Telegram.MaxTracks))
		return
	}
	b.PendingLock.Acquire()
	b.Pending[chatID] = pendingBatch{link: link, collection: collection}
	b.PendingLock.Release()
	markup := InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "✅ Yes, download all", CallbackData: confirmData(link)},
		{Text: "❌ Cancel", CallbackData: "cancel"},
	}}}
	if _, err := b.sendMessage(chatID, fmt.Sprintf("This %s contains %d tracks.\n\nDownload all tracks?", link.Kind, count), markup); err != nil {
		zaplog.ErrorC(ctx, "failed to send confirmation", zap.Error(err))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *CallbackQuery) {
	if err := b.answerCallbackQuery(cb.ID); err != nil {
		zaplog.WarnC(ctx, "failed to answer callback query", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	if cb.Data == "cancel" {
		b.clearPending(chatID)
		if err := b.editMessageText(chatID, cb.Message.MessageID, "❌ Download cancelled."); err != nil {
			zaplog.WarnC(ctx, "failed to edit message", zap.Error(err))
		}
		return
	}
	link, ok := parseConfirmData(cb.Data)
	if !ok {
		return
	}
	pending, found := b.popPending(chatID)
	if !found || pending.link != link {
		if err := b.editMessageText(chatID, cb.Message.MessageID, "❌ Error: request not found. Please send the link again."); err != nil {
			zaplog.WarnC(ctx, "failed to edit message", zap.Error(err))
		}
		return
	}
	if err := b.editMessageText(chatID, cb.Message.MessageID, fmt.Sprintf("⏳ Starting download of %s...", link.Kind)); err != nil {
		zaplog.WarnC(ctx, "failed to edit message", zap.Error(err))
	}
	b.runBatch(ctx, chatID, pending.collection)
}

// runBatch drives the downloader over an already resolved collection with
// a progress sink that keeps one status message updated, then delivers the
// produced files.
func (b *Bot) runBatch(ctx context.Context, chatID int64, collection entity.Collection) {
	if err := b.sendChatAction(chatID, "upload_document"); err != nil {
		zaplog.WarnC(ctx, "failed to send chat action", zap.Error(err))
	}
	total := len(collection.Tracks)
	statusID, err := b.sendMessage(chatID, batchStatusText(collection, 0, ""), nil)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to send status message", zap.Error(err))
	}

	report := b.Downloader.DownloadCollection(ctx, collection, func(current, total int, title string) {
		if statusID == 0 {
			return
		}
		if err := b.editMessageText(chatID, statusID, batchStatusText(collection, current, title)); err != nil {
			zaplog.WarnC(ctx, "failed to update progress message", zap.Error(err))
		}
	})

	delivered, failed := b.deliverReport(ctx, chatID, report)
	if err := b.Stats.AddChatStats(ctx, chatID, delivered, failed); err != nil {
		zaplog.WarnC(ctx, "failed to update chat stats", zap.Error(err))
	}
	summary := fmt.Sprintf("✅ Download complete!\n\n%s: %s\n✅ Successful: %d/%d\n❌ Failed: %d/%d",
		titleCase(string(collection.Kind)), collection.Name, delivered, total, failed, total)
	if statusID != 0 {
		if err := b.editMessageText(chatID, statusID, summary); err != nil {
			zaplog.WarnC(ctx, "failed to edit summary", zap.Error(err))
		}
	} else {
		b.reply(ctx, chatID, summary)
	}
}

// deliverReport uploads every produced file and deletes it afterwards,
// success or failure: upload-then-delete is the bot's deterministic file
// disposition. Delivery failures are folded into the failure count.
func (b *Bot) deliverReport(ctx context.Context, chatID int64, report entity.BatchReport) (delivered, failed int) {
	for _, result := range report.Results {
		if result.Status != entity.StatusSuccess && result.Status != entity.StatusTagFailed {
			failed++
			continue
		}
		err := b.sendAudio(chatID, result.Path, result.Track)
		if removeErr := os.Remove(result.Path); removeErr != nil && !os.IsNotExist(removeErr) {
			zaplog.WarnC(ctx, "failed to remove delivered file", zap.String("path", result.Path), zap.Error(removeErr))
		}
		if err != nil {
			zaplog.ErrorC(ctx, "failed to deliver track", zap.String("title", result.Track.Title),
				zap.Error(fmt.Errorf("%w: %w", download.ErrDelivery, err)))
			failed++
			continue
		}
		delivered++
	}
	return delivered, failed
}

func (b *Bot) replyStats(ctx context.Context, chatID int64) {
	stats, err := b.Stats.GetChatStats(ctx, chatID)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to read chat stats", zap.Error(err))
		b.reply(ctx, chatID, "❌ Failed to read statistics.")
		return
	}
	rate := 0.0
	if stats.Succeeded+stats.Failed > 0 {
		rate = float64(stats.Succeeded) / float64(stats.Succeeded+stats.Failed) * 100
	}
	b.reply(ctx, chatID, fmt.Sprintf("📊 Your Statistics\n\n✅ Successful downloads: %d\n❌ Failed downloads: %d\n📈 Success rate: %.1f%%",
		stats.Succeeded, stats.Failed, rate))
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.sendMessage(chatID, text, nil); err != nil {
		zaplog.ErrorC(ctx, "failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (b *Bot) clearPending(chatID int64) {
	b.PendingLock.Acquire()
	delete(b.Pending, chatID)
	b.PendingLock.Release()
}

func (b *Bot) popPending(chatID int64) (pendingBatch, bool) {
	b.PendingLock.Acquire()
	defer b.PendingLock.Release()
	pending, found := b.Pending[chatID]
	delete(b.Pending, chatID)
	return pending, found
}

func batchStatusText(collection entity.Collection, current int, title string) string {
	text := fmt.Sprintf("⏳ Downloading %s: %s\nTotal tracks: %d\n\nProgress: %d/%d",
		collection.Kind, collection.Name, len(collection.Tracks), current, len(collection.Tracks))
	if title != "" {
		text += fmt.Sprintf("\nCurrent: %s", truncate(title, 40))
	}
	return text
}

func confirmData(link entity.Link) string {
	return fmt.Sprintf("confirm_%s_%s", link.Kind, link.ID)
}

func parseConfirmData(data string) (entity.Link, bool) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[0] != "confirm" {
		return entity.Link{}, false
	}
	kind := entity.CollectionKind(parts[1])
	if kind != entity.KindAlbum && kind != entity.KindPlaylist {
		return entity.Link{}, false
	}
	return entity.Link{Kind: kind, ID: parts[2]}, true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
