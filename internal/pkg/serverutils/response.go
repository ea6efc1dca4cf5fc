package serverutils

// ResponseEnvelope is the uniform JSON wrapper for every endpoint.
type ResponseEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) ResponseEnvelope {
	return ResponseEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ResponseEnvelope {
	return ResponseEnvelope{
		Success: false,
		Message: message,
	}
}
