// Package response defines the uniform JSON envelope used by every handler.
package response

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ValidationEnvelope carries field-level validation messages alongside the
// envelope fields.
type ValidationEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// FieldError names a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Error builds a failure envelope.
func Error(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// Invalid builds a failure envelope with field errors.
func Invalid(message string, errs []FieldError) ValidationEnvelope {
	return ValidationEnvelope{Success: false, Message: message, Errors: errs}
}
