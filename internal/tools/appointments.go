package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

// Appointment is one booked medical appointment.
type Appointment struct {
	ID      string
	Details string
}

// AppointmentBook is the in-memory appointment store. Appointments live for
// the process lifetime only.
type AppointmentBook struct {
	mu    sync.Mutex
	items []Appointment
}

// NewAppointmentBook creates an empty AppointmentBook.
func NewAppointmentBook() *AppointmentBook {
	return &AppointmentBook{}
}

// Add books an appointment and returns it.
func (b *AppointmentBook) Add(details string) Appointment {
	appt := Appointment{ID: uuid.NewString(), Details: details}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, appt)
	return appt
}

// Remove cancels the first appointment matching details and reports whether
// one was found.
func (b *AppointmentBook) Remove(details string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, appt := range b.items {
		if appt.Details == details {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns all booked appointments in booking order.
func (b *AppointmentBook) List() []Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Appointment, len(b.items))
	copy(out, b.items)
	return out
}

var bookAppointmentTool = openai.ChatCompletionToolUnionParam{
	OfFunction: &openai.ChatCompletionFunctionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "book_appointment",
			Description: openai.String("Books a new medical appointment for the user."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"appointment_details": map[string]string{
						"type":        "string",
						"description": "Appointment details (e.g., doctor name, date, time)",
					},
				},
				"required": []string{"appointment_details"},
			},
		},
	},
}

var cancelAppointmentTool = openai.ChatCompletionToolUnionParam{
	OfFunction: &openai.ChatCompletionFunctionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "cancel_appointment",
			Description: openai.String("Cancels an existing medical appointment."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"appointment_details": map[string]string{
						"type":        "string",
						"description": "Appointment details to cancel (e.g., doctor name, date, time)",
					},
				},
				"required": []string{"appointment_details"},
			},
		},
	},
}

var listAppointmentsTool = openai.ChatCompletionToolUnionParam{
	OfFunction: &openai.ChatCompletionFunctionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "list_appointments",
			Description: openai.String("Lists all medical appointments."),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	},
}

type appointmentArguments struct {
	Details string `json:"appointment_details"`
}

func (b *AppointmentBook) book(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion {
	var args appointmentArguments
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return openai.ToolMessage(fmt.Sprint("Error calling tool book_appointment: ", err), call.ID)
	}
	if strings.TrimSpace(args.Details) == "" {
		return openai.ToolMessage("Error: appointment details cannot be empty.", call.ID)
	}
	appt := b.Add(args.Details)
	return openai.ToolMessage(fmt.Sprintf("Appointment booked successfully: %s", appt.Details), call.ID)
}

func (b *AppointmentBook) cancel(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion {
	var args appointmentArguments
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return openai.ToolMessage(fmt.Sprint("Error calling tool cancel_appointment: ", err), call.ID)
	}
	if !b.Remove(args.Details) {
		return openai.ToolMessage(fmt.Sprintf("Error: no appointment found for details: %s", args.Details), call.ID)
	}
	return openai.ToolMessage(fmt.Sprintf("Appointment canceled successfully: %s", args.Details), call.ID)
}

func (b *AppointmentBook) list(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion {
	items := b.List()
	if len(items) == 0 {
		return openai.ToolMessage("No appointments found.", call.ID)
	}
	lines := make([]string, len(items))
	for i, appt := range items {
		lines[i] = appt.Details
	}
	return openai.ToolMessage("Appointments:\n"+strings.Join(lines, "\n"), call.ID)
}
