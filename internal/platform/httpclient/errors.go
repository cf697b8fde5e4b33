package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ResponseError is a non-2xx answer from the API.
type ResponseError struct {
	StatusCode int
	// Message is the server's "message" field, empty when absent.
	Message string
	Body    []byte
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// errorResponse is the error body shape the backend answers with. Only
// message is meant for display.
type errorResponse struct {
	Message string `json:"message"`
}

func newResponseError(resp *http.Response) *ResponseError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	respErr := &ResponseError{StatusCode: resp.StatusCode, Body: body}

	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil {
		respErr.Message = parsed.Message
	}
	return respErr
}

// ServerMessage returns the message the server attached to err, or fallback
// when the failure carried none (transport errors, empty bodies).
func ServerMessage(err error, fallback string) string {
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	return fallback
}
