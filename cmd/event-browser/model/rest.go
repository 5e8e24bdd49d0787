package model

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// FieldErrorResponse is one entry of a validation failure body.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created []string         `json:"created"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}
