package api

import (
	"encoding/json"
	"fmt"
)

// envelope is the uniform wrapper every backend endpoint returns. Older
// endpoints ship the payload under "data" instead of "result"; the decode
// layer tolerates both so call sites never see the difference.
type envelope struct {
	IsSuccess  bool            `json:"isSuccess"`
	ResCode    string          `json:"resCode,omitempty"`
	ResMessage string          `json:"resMessage,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// payload returns whichever of result/data the backend populated.
func (e *envelope) payload() json.RawMessage {
	if len(e.Result) > 0 {
		return e.Result
	}
	return e.Data
}

// decodeEnvelope unwraps an envelope body into out. status is the HTTP
// status the body arrived with; an isSuccess=false envelope on a 2xx still
// yields an *Error carrying the backend's code and message.
func decodeEnvelope(status int, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if !env.IsSuccess {
		return &Error{Status: status, Code: env.ResCode, Message: env.ResMessage}
	}
	if out == nil {
		return nil
	}
	payload := env.payload()
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
