package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/medgateai/medgate/internal/chat"
	"github.com/medgateai/medgate/internal/command"
	"github.com/medgateai/medgate/internal/session"
)

// FailureReply is sent when a turn fails after the command check, so the
// user never faces a silent drop.
const FailureReply = "Lo siento, ha ocurrido un error al procesar tu mensaje. Por favor, inténtalo de nuevo."

// Gateway orchestrates one inbound event end to end. It keeps no state of
// its own beyond what the session store holds.
type Gateway struct {
	logger    *slog.Logger
	store     *session.Store
	router    *command.Router
	extractor Extractor
	completer Completer
	fetcher   Fetcher
	replier   Replier
}

// New wires a Gateway from its collaborators.
func New(log *slog.Logger, store *session.Store, router *command.Router, extractor Extractor, completer Completer, fetcher Fetcher, replier Replier) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		logger:    log.With(slog.String("component", "gateway")),
		store:     store,
		router:    router,
		extractor: extractor,
		completer: completer,
		fetcher:   fetcher,
		replier:   replier,
	}
}

// Handle processes one inbound event. Commands short-circuit without a
// completion call; everything else runs the content pipeline under the
// session's turn lock so concurrent events for the same chat cannot
// interleave their history mutations.
func (g *Gateway) Handle(ctx context.Context, ev Event) error {
	sess := g.store.GetOrCreate(ev.ChatID)

	if ev.Text != "" && g.router.IsCommand(ev.Text) {
		return g.replier.Reply(ev.ChatID, g.router.Route(ev.ChatID, ev.Text))
	}

	sess.Lock()
	defer sess.Unlock()

	reply, err := g.converse(ctx, sess, ev)
	if err != nil {
		g.logger.Error("turn failed", slog.Int64("chat_id", ev.ChatID), slog.Any("error", err))
		if sendErr := g.replier.Reply(ev.ChatID, FailureReply); sendErr != nil {
			g.logger.Error("failure notice send failed", slog.Int64("chat_id", ev.ChatID), slog.Any("error", sendErr))
		}
		return err
	}
	if reply == "" {
		return nil
	}
	if err := g.replier.ReplyRich(ev.ChatID, reply); err != nil {
		// Markdown rendering can be rejected for model output; retry the
		// same text without a parse mode so the turn still answers.
		g.logger.Warn("rich reply rejected, retrying plain", slog.Int64("chat_id", ev.ChatID), slog.Any("error", err))
		return g.replier.Reply(ev.ChatID, reply)
	}
	return nil
}

// converse assembles the user message, appends it, invokes the completion
// service with the full history, and appends the assistant reply. All history
// access goes through sess, the instance resolved before the turn lock was
// taken, so a /clear interposed mid-turn invalidates the turn instead of
// bleeding into a re-created session. Returns the reply text to transmit.
func (g *Gateway) converse(ctx context.Context, sess *session.Session, ev Event) (string, error) {
	items := make([]chat.ContentItem, 0, 2)
	if strings.TrimSpace(ev.Text) != "" {
		items = append(items, chat.TextItem(ev.Text))
	}
	for _, att := range ev.Attachments {
		switch att.Kind {
		case AttachmentDocument:
			data, err := g.fetcher.Fetch(ctx, att.FileID)
			if err != nil {
				return "", fmt.Errorf("fetch document: %w", err)
			}
			item, err := g.extractor.Document(data, ev.Caption)
			if err != nil {
				return "", fmt.Errorf("extract document: %w", err)
			}
			items = append(items, item)
		case AttachmentPhoto:
			data, err := g.fetcher.Fetch(ctx, att.FileID)
			if err != nil {
				return "", fmt.Errorf("fetch photo: %w", err)
			}
			items = append(items, g.extractor.Photo(data, ev.Caption)...)
		default:
			g.logger.Debug("attachment kind ignored", slog.Int64("chat_id", ev.ChatID), slog.String("kind", string(att.Kind)))
		}
	}
	if len(items) == 0 {
		// The caption was not consumed by any extractor; it still carries
		// the user's question, so the turn proceeds on it alone.
		if caption := strings.TrimSpace(ev.Caption); caption != "" {
			items = append(items, chat.TextItem(caption))
		}
	}
	if len(items) == 0 {
		// Nothing usable in the event; the turn ends without a model call.
		return "", nil
	}

	if err := g.store.Append(sess, chat.UserMessage(items...)); err != nil {
		return "", err
	}
	reply, err := g.completer.Complete(ctx, sess.History())
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if err := g.store.Append(sess, reply); err != nil {
		return "", err
	}
	return reply.PlainText(), nil
}
