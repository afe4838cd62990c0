// Package chat defines the conversation message model and the completion
// client that turns ordered history into the next assistant message.
package chat

import "strings"

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentKind identifies one content item variant.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// ContentItem is one unit of message content. A message may carry several
// items, e.g. a caption followed by an image.
type ContentItem struct {
	Kind ContentKind
	Text string
	Data []byte
	Mime string
}

// TextItem builds a text content item.
func TextItem(text string) ContentItem {
	return ContentItem{Kind: ContentText, Text: text}
}

// ImageItem builds an image content item carrying raw bytes and a mime type.
func ImageItem(data []byte, mime string) ContentItem {
	return ContentItem{Kind: ContentImage, Data: data, Mime: mime}
}

// Message is one role-tagged entry in a conversation history.
type Message struct {
	Role    Role
	Content []ContentItem
}

// SystemMessage builds a system-role message with a single text item.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: []ContentItem{TextItem(text)}}
}

// UserMessage builds a user-role message from the given content items.
func UserMessage(items ...ContentItem) Message {
	return Message{Role: RoleUser, Content: items}
}

// AssistantMessage builds an assistant-role message with a single text item.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: []ContentItem{TextItem(text)}}
}

// PlainText joins all text items of the message.
func (m Message) PlainText() string {
	texts := make([]string, 0, len(m.Content))
	for _, item := range m.Content {
		if item.Kind == ContentText && strings.TrimSpace(item.Text) != "" {
			texts = append(texts, item.Text)
		}
	}
	return strings.Join(texts, "\n")
}
