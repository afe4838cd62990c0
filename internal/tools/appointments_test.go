package tools

import (
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/require"
)

func toolCall(name, arguments string) openai.ChatCompletionMessageToolCallUnion {
	var call openai.ChatCompletionMessageToolCallUnion
	call.ID = "call-1"
	call.Function.Name = name
	call.Function.Arguments = arguments
	return call
}

func toolResult(t *testing.T, msg openai.ChatCompletionMessageParamUnion) string {
	t.Helper()
	require.NotNil(t, msg.OfTool, "expected a tool-role result message")
	return msg.OfTool.Content.OfString.Value
}

func TestAppointmentBook_BookAndList(t *testing.T) {
	t.Parallel()
	book := NewAppointmentBook()

	appt := book.Add("Dra. Gómez, viernes 10:00")
	require.NotEmpty(t, appt.ID)

	book.Add("Dr. Ruiz, lunes 9:30")
	items := book.List()
	require.Len(t, items, 2)
	require.Equal(t, "Dra. Gómez, viernes 10:00", items[0].Details)
	require.Equal(t, "Dr. Ruiz, lunes 9:30", items[1].Details)
	require.NotEqual(t, items[0].ID, items[1].ID)
}

func TestAppointmentBook_Remove(t *testing.T) {
	t.Parallel()
	book := NewAppointmentBook()
	book.Add("Dra. Gómez, viernes 10:00")

	require.False(t, book.Remove("no existe"))
	require.True(t, book.Remove("Dra. Gómez, viernes 10:00"))
	require.Empty(t, book.List())
}

func TestRegistry_Definitions(t *testing.T) {
	t.Parallel()
	r := NewRegistry(nil)

	names := make([]string, 0, len(r.Definitions()))
	for _, def := range r.Definitions() {
		names = append(names, def.OfFunction.Function.Name)
	}
	require.ElementsMatch(t, names, []string{
		"book_appointment", "cancel_appointment", "list_appointments", "medicamentos_get",
	})
}

func TestRegistry_DispatchBookCancelList(t *testing.T) {
	t.Parallel()
	r := NewRegistry(nil)

	out := toolResult(t, r.Dispatch(toolCall("book_appointment", `{"appointment_details":"Dra. Gómez, viernes 10:00"}`)))
	require.Contains(t, out, "Appointment booked successfully")

	out = toolResult(t, r.Dispatch(toolCall("list_appointments", `{}`)))
	require.Contains(t, out, "Dra. Gómez, viernes 10:00")

	out = toolResult(t, r.Dispatch(toolCall("cancel_appointment", `{"appointment_details":"Dra. Gómez, viernes 10:00"}`)))
	require.Contains(t, out, "Appointment canceled successfully")

	out = toolResult(t, r.Dispatch(toolCall("list_appointments", `{}`)))
	require.Equal(t, "No appointments found.", out)
}

func TestRegistry_DispatchErrors(t *testing.T) {
	t.Parallel()
	r := NewRegistry(nil)

	out := toolResult(t, r.Dispatch(toolCall("book_appointment", `{"appointment_details":"  "}`)))
	require.Contains(t, out, "cannot be empty")

	out = toolResult(t, r.Dispatch(toolCall("cancel_appointment", `{"appointment_details":"nada"}`)))
	require.Contains(t, out, "no appointment found")

	out = toolResult(t, r.Dispatch(toolCall("desconocida", `{}`)))
	require.Contains(t, out, "unknown tool")
}

func TestRegistry_DispatchMedications(t *testing.T) {
	t.Parallel()
	r := NewRegistry(nil)

	out := toolResult(t, r.Dispatch(toolCall("medicamentos_get", `{}`)))
	require.Equal(t, availableMedications, out)
}
