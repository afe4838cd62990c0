// Package command classifies inbound text as control commands and executes
// the recognized set. Commands are local operations, not conversational
// turns: they never reach the completion service and are never persisted
// into history.
package command

import (
	"log/slog"
	"strings"
)

// Marker is the first character that makes a text message a command.
const Marker = "/"

// Fixed replies, transmitted verbatim.
const (
	WelcomeReply = "Estamos aquí para ayudarte con tus consultas de salud y bienestar. Puedes hacer preguntas relacionadas con medicina, síntomas, tratamientos, y más. Los comandos disponibles son: /help y /clear"
	HelpReply    = "Comandos disponibles:\n/start - mensaje de bienvenida\n/help - esta ayuda\n/clear - borrar el historial de la conversación\n\nTambién puedes enviar texto, imágenes o documentos PDF con tus consultas de salud."
	ClearedReply = "Historial de la conversación borrado. Empezamos de cero."
	UnknownReply = "Comando no reconocido. Usa /help para ver los comandos disponibles."
)

// SessionClearer is the single store mutation the router needs.
type SessionClearer interface {
	Clear(id int64) bool
}

// Router executes the closed command set. It keeps no state of its own.
type Router struct {
	logger   *slog.Logger
	sessions SessionClearer
}

// NewRouter creates a Router backed by the given session store.
func NewRouter(log *slog.Logger, sessions SessionClearer) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		logger:   log.With(slog.String("component", "command")),
		sessions: sessions,
	}
}

// IsCommand reports whether text must be routed as a command.
func (r *Router) IsCommand(text string) bool {
	return strings.HasPrefix(text, Marker)
}

// Route executes the command in text for the given conversation id and
// returns the reply to transmit. Callers must check IsCommand first.
func (r *Router) Route(id int64, text string) string {
	name := commandName(text)
	r.logger.Info("command", slog.Int64("chat_id", id), slog.String("name", name))
	switch name {
	case "start":
		return WelcomeReply
	case "help":
		return HelpReply
	case "clear":
		existed := r.sessions.Clear(id)
		if !existed {
			r.logger.Debug("clear on unknown session", slog.Int64("chat_id", id))
		}
		return ClearedReply
	default:
		return UnknownReply
	}
}

// commandName extracts the command token: first whitespace-separated field,
// marker stripped, "@botname" suffix dropped (Telegram group convention).
func commandName(text string) string {
	fields := strings.Fields(strings.TrimPrefix(text, Marker))
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}
