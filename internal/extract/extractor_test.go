package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medgateai/medgate/internal/chat"
)

// buildPDF assembles a minimal uncompressed PDF with one Tj text operation
// per page, computing the cross-reference table offsets.
func buildPDF(pageTexts ...string) []byte {
	n := len(pageTexts)
	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	}
	fontRef := fmt.Sprintf("%d 0 R", 3+2*n)
	for i, text := range pageTexts {
		contentRef := fmt.Sprintf("%d 0 R", 4+2*i)
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %s >> >> /Contents %s >>",
			fontRef, contentRef))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)
	return buf.Bytes()
}

func TestDocument_PageOrderRoundTrip(t *testing.T) {
	t.Parallel()
	e := New(nil)

	item, err := e.Document(buildPDF("Hallazgo A", "Hallazgo B"), "")
	require.NoError(t, err)
	require.Equal(t, chat.ContentText, item.Kind)

	text := strings.Join(strings.Fields(item.Text), "")
	require.Contains(t, text, "HallazgoAHallazgoB")
}

func TestDocument_CaptionTemplate(t *testing.T) {
	t.Parallel()
	e := New(nil)

	item, err := e.Document(buildPDF("Hallazgo A", "Hallazgo B"), "Informe")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(item.Text, "Informe"), "caption must come first: %q", item.Text)

	flat := strings.Join(strings.Fields(item.Text), "")
	require.Contains(t, flat, "InformeHallazgoAHallazgoB")
}

func TestDocument_InvalidBytes(t *testing.T) {
	t.Parallel()
	e := New(nil)

	_, err := e.Document([]byte("no soy un pdf"), "Informe")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPhoto_Items(t *testing.T) {
	t.Parallel()
	e := New(nil)
	raw := []byte{0x89, 0x50, 0x4e, 0x47}

	items := e.Photo(raw, "radiografía de tórax")
	require.Len(t, items, 2)
	require.Equal(t, chat.ContentText, items[0].Kind)
	require.Equal(t, "radiografía de tórax", items[0].Text)
	require.Equal(t, chat.ContentImage, items[1].Kind)
	require.Equal(t, raw, items[1].Data)
	require.Equal(t, ImageMime, items[1].Mime)
}

func TestPhoto_EmptyCaption(t *testing.T) {
	t.Parallel()
	e := New(nil)

	items := e.Photo([]byte{1, 2}, "")
	require.Len(t, items, 2)
	require.Equal(t, "", items[0].Text)
}
