package response

// Envelope is the error payload returned by middleware and the central
// HTTP error handler.
type Envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Error(code, message string, data any) Envelope {
	return Envelope{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
