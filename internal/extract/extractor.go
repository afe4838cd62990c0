// Package extract normalizes inbound attachments into message content items.
// Documents are reduced to their extracted text because the completion
// service accepts text and image modalities only.
package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/medgateai/medgate/internal/chat"
)

// ImageMime is the media type declared for every inbound photo.
const ImageMime = "image/png"

// Extractor converts raw attachment bytes into content items.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor with the given logger.
func New(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{logger: log.With(slog.String("component", "extract"))}
}

// Document parses data as a PDF and produces a single text item combining
// the caption (when present) and the concatenated page text in page order.
// A page that yields no text contributes an empty string; a byte stream that
// is not a valid PDF fails the whole turn.
func (e *Extractor) Document(data []byte, caption string) (chat.ContentItem, error) {
	text, err := e.pdfText(data)
	if err != nil {
		return chat.ContentItem{}, err
	}
	return chat.TextItem(combineCaption(caption, text)), nil
}

// Photo produces a text item for the caption (possibly empty) followed by an
// image item carrying the raw bytes with the fixed declared media type.
func (e *Extractor) Photo(data []byte, caption string) []chat.ContentItem {
	return []chat.ContentItem{
		chat.TextItem(caption),
		chat.ImageItem(data, ImageMime),
	}
}

func (e *Extractor) pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var sb strings.Builder
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that cannot be decoded yields no text rather than
			// failing the turn.
			e.logger.Warn("page text extraction failed", slog.Int("page", num), slog.Any("error", err))
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// combineCaption applies the fixed caption-first template.
func combineCaption(caption, text string) string {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return text
	}
	return caption + "\n\n" + text
}
