package entity

import "errors"

var (
	// Validation errors (client-caused, mapped to 400)
	ErrBadRequest = errors.New("bad request")

	// Configuration errors (operator-caused, mapped to 500)
	ErrConfig = errors.New("service configuration incomplete")

	// Upstream errors (mapped to 500)
	ErrUpstreamAuth = errors.New("upstream authentication failed")
	ErrNotFound     = errors.New("not found in remote storage")

	// Compose errors (mapped to 500)
	ErrDecode = errors.New("image decode failed")
)

// ErrorResponse is the single JSON error shape for all failure responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}
