package chat

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToCompletionMessages_Roles(t *testing.T) {
	t.Parallel()
	history := []Message{
		SystemMessage("persona"),
		UserMessage(TextItem("hola")),
		AssistantMessage("buenas"),
	}

	params := toCompletionMessages(history)
	require.Len(t, params, 3)
	require.NotNil(t, params[0].OfSystem)
	require.NotNil(t, params[1].OfUser)
	require.NotNil(t, params[2].OfAssistant)
	require.Equal(t, "hola", params[1].OfUser.Content.OfString.Value)
}

func TestUserParam_TextOnlyStaysPlain(t *testing.T) {
	t.Parallel()
	msg := UserMessage(TextItem("Informe"), TextItem("Hallazgo A"))

	param := userParam(msg)
	require.NotNil(t, param.OfUser)
	require.Empty(t, param.OfUser.Content.OfArrayOfContentParts)
	require.Equal(t, "Informe\nHallazgo A", param.OfUser.Content.OfString.Value)
}

func TestUserParam_ImageBecomesParts(t *testing.T) {
	t.Parallel()
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	msg := UserMessage(TextItem("radiografía"), ImageItem(raw, "image/png"))

	param := userParam(msg)
	require.NotNil(t, param.OfUser)
	parts := param.OfUser.Content.OfArrayOfContentParts
	require.Len(t, parts, 2)

	require.NotNil(t, parts[0].OfText)
	require.Equal(t, "radiografía", parts[0].OfText.Text)

	require.NotNil(t, parts[1].OfImageURL)
	url := parts[1].OfImageURL.ImageURL.URL
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	encoded := strings.TrimPrefix(url, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestUserParam_EmptyTextItemSkipped(t *testing.T) {
	t.Parallel()
	msg := UserMessage(TextItem(""), ImageItem([]byte{1}, "image/png"))

	param := userParam(msg)
	parts := param.OfUser.Content.OfArrayOfContentParts
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].OfImageURL)
}

func TestPlainText_SkipsImagesAndBlanks(t *testing.T) {
	t.Parallel()
	msg := UserMessage(TextItem("uno"), ImageItem([]byte{1}, "image/png"), TextItem("  "), TextItem("dos"))
	require.Equal(t, "uno\ndos", msg.PlainText())
}
