// Package tools exposes the side-capabilities the completion service may
// invoke autonomously during generation: the appointment book and the
// available-medication list.
package tools

import (
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
)

// Handler executes one tool call and returns the tool-role message carrying
// its result.
type Handler func(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion

// Registry maps tool names to handlers and carries their declarations.
type Registry struct {
	logger   *slog.Logger
	defs     []openai.ChatCompletionToolUnionParam
	handlers map[string]Handler
}

// NewRegistry builds the registry with the full tool set registered.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{
		logger:   log.With(slog.String("component", "tools")),
		handlers: map[string]Handler{},
	}
	appointments := NewAppointmentBook()
	r.register(bookAppointmentTool, appointments.book)
	r.register(cancelAppointmentTool, appointments.cancel)
	r.register(listAppointmentsTool, appointments.list)
	r.register(medicationsTool, listMedications)
	return r
}

func (r *Registry) register(def openai.ChatCompletionToolUnionParam, handler Handler) {
	name := def.OfFunction.Function.Name
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("tool already registered: %s", name))
	}
	r.defs = append(r.defs, def)
	r.handlers[name] = handler
}

// Definitions returns the tool declarations to attach to a completion call.
func (r *Registry) Definitions() []openai.ChatCompletionToolUnionParam {
	return r.defs
}

// Dispatch executes the named tool call. Unknown tools produce an error
// result message so the model can recover.
func (r *Registry) Dispatch(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion {
	name := call.Function.Name
	handler, ok := r.handlers[name]
	if !ok {
		r.logger.Warn("unknown tool requested", slog.String("name", name))
		return openai.ToolMessage(fmt.Sprintf("Error: unknown tool %q", name), call.ID)
	}
	r.logger.Info("tool call", slog.String("name", name))
	return handler(call)
}
