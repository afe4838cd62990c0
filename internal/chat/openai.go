package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/medgateai/medgate/internal/tools"
)

// maxToolRounds bounds the autonomous tool-invocation loop for one turn.
const maxToolRounds = 8

// OpenAIClient calls an OpenAI-compatible chat completion endpoint. Tool
// calls requested by the model are executed through the registry and fed
// back until the model produces a plain assistant message.
type OpenAIClient struct {
	logger *slog.Logger
	client openai.Client
	model  string
	tools  *tools.Registry
}

// NewOpenAIClient builds a client for the given endpoint and model. An empty
// baseURL uses the library default endpoint.
func NewOpenAIClient(log *slog.Logger, baseURL, apiKey, model string, registry *tools.Registry) *OpenAIClient {
	if log == nil {
		log = slog.Default()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	return &OpenAIClient{
		logger: log.With(slog.String("component", "chat")),
		client: openai.NewClient(opts...),
		model:  model,
		tools:  registry,
	}
}

// Complete sends the full ordered history and returns the next assistant
// message. Errors from the endpoint propagate unretried.
func (c *OpenAIClient) Complete(ctx context.Context, history []Message) (Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toCompletionMessages(history),
	}
	if c.tools != nil {
		params.Tools = c.tools.Definitions()
	}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return Message{}, fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return Message{}, fmt.Errorf("chat completion: empty choices")
		}
		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return AssistantMessage(msg.Content), nil
		}
		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			params.Messages = append(params.Messages, c.tools.Dispatch(call))
		}
	}
	return Message{}, fmt.Errorf("chat completion: tool rounds exceeded (%d)", maxToolRounds)
}

// toCompletionMessages converts the session history to request params.
// User messages with image content become multi-part messages carrying
// base64 data URLs.
func toCompletionMessages(history []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.PlainText()))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.PlainText()))
		case RoleUser:
			out = append(out, userParam(msg))
		}
	}
	return out
}

func userParam(msg Message) openai.ChatCompletionMessageParamUnion {
	if !hasImage(msg) {
		return openai.UserMessage(msg.PlainText())
	}
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(msg.Content))
	for _, item := range msg.Content {
		switch item.Kind {
		case ContentText:
			if item.Text != "" {
				parts = append(parts, openai.TextContentPart(item.Text))
			}
		case ContentImage:
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURL(item.Mime, item.Data),
			}))
		}
	}
	return openai.UserMessage(parts)
}

func hasImage(msg Message) bool {
	for _, item := range msg.Content {
		if item.Kind == ContentImage {
			return true
		}
	}
	return false
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
