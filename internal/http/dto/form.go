package dto

import (
	"github.com/invopop/jsonschema"
)

// FormResponse describes a form in place of a rendered page.
type FormResponse struct {
	Form   *jsonschema.Schema `json:"form"`
	Errors map[string]any     `json:"errors"`
	Old    map[string]string  `json:"old"`
	Status string             `json:"status,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type ErrorResponse struct {
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors,omitempty"`
}

// FormSchema reflects v into an inline JSON Schema.
func FormSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}
