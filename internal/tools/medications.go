package tools

import "github.com/openai/openai-go/v3"

// availableMedications is the fixed list the assistant may offer.
const availableMedications = "Ibuprofeno, paracetamol, amoxicilina"

var medicationsTool = openai.ChatCompletionToolUnionParam{
	OfFunction: &openai.ChatCompletionFunctionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "medicamentos_get",
			Description: openai.String("Medicine the user can request"),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	},
}

func listMedications(call openai.ChatCompletionMessageToolCallUnion) openai.ChatCompletionMessageParamUnion {
	return openai.ToolMessage(availableMedications, call.ID)
}
