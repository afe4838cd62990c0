// Package gateway bridges the messaging transport and the completion
// service: it routes commands, assembles multi-modal user turns, drives the
// completion call, and sends the reply back to the originating chat.
package gateway

import (
	"context"

	"github.com/medgateai/medgate/internal/chat"
)

// AttachmentKind classifies an inbound attachment.
type AttachmentKind string

const (
	AttachmentDocument AttachmentKind = "document"
	AttachmentPhoto    AttachmentKind = "photo"
	AttachmentOther    AttachmentKind = "other"
)

// Attachment references an inbound attachment resolvable to raw bytes.
type Attachment struct {
	Kind   AttachmentKind
	FileID string
}

// Event is one normalized inbound message. Text is set for plain text
// messages, Caption for attachment messages.
type Event struct {
	ChatID      int64
	Text        string
	Caption     string
	Attachments []Attachment
}

// Completer produces the next assistant message from ordered history.
type Completer interface {
	Complete(ctx context.Context, history []chat.Message) (chat.Message, error)
}

// Fetcher resolves an attachment reference to raw bytes.
type Fetcher interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

// Replier transmits outbound text to a chat. ReplyRich uses the transport's
// rich-text rendering mode; Reply sends verbatim plain text.
type Replier interface {
	Reply(chatID int64, text string) error
	ReplyRich(chatID int64, text string) error
}

// Extractor normalizes attachment bytes into content items.
type Extractor interface {
	Document(data []byte, caption string) (chat.ContentItem, error)
	Photo(data []byte, caption string) []chat.ContentItem
}
