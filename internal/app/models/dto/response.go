package dto

import "time"

// APIResponse is the standard response envelope.
type APIResponse struct {
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SuccessResponse carries a confirmation message for operations that
// return no record, such as delete.
type SuccessResponse struct {
	Message string `json:"message"`
}
