package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	telegramMaxMessageLength = 4096
	// maxAttachmentBytes caps attachment downloads (Telegram bot API file limit).
	maxAttachmentBytes int64 = 20 * 1024 * 1024
	pollTimeoutSeconds       = 30
)

// TelegramTransport implements Fetcher and Replier over the bot API.
type TelegramTransport struct {
	logger *slog.Logger
	bot    *tgbotapi.BotAPI
	client *http.Client
}

// NewTelegramTransport wraps an authorized bot client.
func NewTelegramTransport(log *slog.Logger, bot *tgbotapi.BotAPI) *TelegramTransport {
	if log == nil {
		log = slog.Default()
	}
	return &TelegramTransport{
		logger: log.With(slog.String("adapter", "telegram")),
		bot:    bot,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch resolves a file id to raw bytes via the bot file API.
func (t *TelegramTransport) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	url, err := t.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("download attachment status: %d", resp.StatusCode)
	}
	limited := &io.LimitedReader{R: resp.Body, N: maxAttachmentBytes + 1}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment too large: max %d bytes", maxAttachmentBytes)
	}
	return data, nil
}

// Reply sends plain text to the chat.
func (t *TelegramTransport) Reply(chatID int64, text string) error {
	return t.send(chatID, text, "")
}

// ReplyRich sends text with Markdown rendering.
func (t *TelegramTransport) ReplyRich(chatID int64, text string) error {
	return t.send(chatID, text, tgbotapi.ModeMarkdown)
}

func (t *TelegramTransport) send(chatID int64, text, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, truncateText(sanitizeText(text)))
	msg.ParseMode = parseMode
	_, err := t.bot.Send(msg)
	return err
}

// Typing sends a typing chat action while a turn is being processed.
func (t *TelegramTransport) Typing(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := t.bot.Request(action); err != nil {
		t.logger.Warn("send typing action failed", slog.Any("error", err))
	}
}

// Run long-polls for updates and dispatches each message as its own task.
// It returns after ctx is cancelled and the update channel is drained.
func (g *Gateway) Run(ctx context.Context, bot *tgbotapi.BotAPI, transport *TelegramTransport) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds
	updates := bot.GetUpdatesChan(updateConfig)

	g.logger.Info("telegram polling started", slog.String("bot", bot.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			// Drain so the library's polling goroutine can finish its
			// in-flight long-poll request and exit.
			for range updates {
			}
			g.logger.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				g.logger.Info("updates channel closed")
				return
			}
			if update.Message == nil {
				continue
			}
			ev := normalizeMessage(update.Message)
			if ev.Text == "" && ev.Caption == "" && len(ev.Attachments) == 0 {
				continue
			}
			go func() {
				if transport != nil && !g.router.IsCommand(ev.Text) {
					transport.Typing(ev.ChatID)
				}
				if err := g.Handle(ctx, ev); err != nil {
					g.logger.Error("handle inbound failed", slog.Int64("chat_id", ev.ChatID), slog.Any("error", err))
				}
			}()
		}
	}
}

// normalizeMessage maps a bot API message to an Event. Only document and
// photo attachments are carried; anything else is tagged AttachmentOther and
// ignored downstream.
func normalizeMessage(msg *tgbotapi.Message) Event {
	ev := Event{
		ChatID:  msg.Chat.ID,
		Text:    strings.TrimSpace(msg.Text),
		Caption: strings.TrimSpace(msg.Caption),
	}
	if msg.Document != nil {
		kind := AttachmentOther
		if isPDF(msg.Document) {
			kind = AttachmentDocument
		}
		ev.Attachments = append(ev.Attachments, Attachment{Kind: kind, FileID: msg.Document.FileID})
	}
	if len(msg.Photo) > 0 {
		ev.Attachments = append(ev.Attachments, Attachment{
			Kind:   AttachmentPhoto,
			FileID: pickLargestPhoto(msg.Photo).FileID,
		})
	}
	return ev
}

func isPDF(doc *tgbotapi.Document) bool {
	if strings.EqualFold(doc.MimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf")
}

// pickLargestPhoto selects the highest-resolution variant. The API orders
// variants smallest to largest, but the pixel comparison does not rely on it.
func pickLargestPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}

// sanitizeText strips invalid UTF-8 byte sequences before hitting the API.
func sanitizeText(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}

// truncateText truncates to the API message limit on a rune boundary.
func truncateText(text string) string {
	if len(text) <= telegramMaxMessageLength {
		return text
	}
	const suffix = "..."
	limit := telegramMaxMessageLength - len(suffix)
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + suffix
}
