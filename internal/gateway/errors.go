package gateway

import (
	"encoding/json"
	"net/http"
)

const genericFailure = "request failed"

// GatewayError is any non-2xx answer from the remote gateway. Message is the
// gateway-supplied error string when the body carries one, otherwise a
// generic fallback.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

func errorFromResponse(resp *http.Response) error {
	msg := genericFailure
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &GatewayError{Status: resp.StatusCode, Message: msg}
}
