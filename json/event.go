// Package json implements the JSON wire formats of the StudyPal backend:
// stream event records, presentation channel messages and the transcript
// file format.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/studypal"
)

// eventDTO is the union of all fields a stream record may carry. The
// backend is loose about which fields accompany which type, so decoding
// looks at fields as well as the type discriminator.
type eventDTO struct {
	Type      string          `json:"type"`
	Error     json.RawMessage `json:"error"`
	Message   string          `json:"message"`
	Done      bool            `json:"done"`
	SessionID string          `json:"session_id"`
	Status    string          `json:"status"`
	Content   string          `json:"content"`
	Data      json.RawMessage `json:"data"`
}

// errorMessage reports whether the error field marks the record as a
// failure. Strings are used as-is; any other non-null value is reported as
// its JSON text. A missing, null or empty-string field is not an error.
func errorMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	return string(raw), true
}

type followupDTO struct {
	Response          string   `json:"response"`
	FollowupQuestions []string `json:"followup_questions"`
}

// DecodeEvent decodes the JSON payload of one "data: " line. It returns a
// nil event and nil error for well-formed records that carry nothing the
// client acts on (timestamps, keep-alives, unknown types).
//
// Precedence: a non-empty error field, then a true done flag, then the type
// discriminator, then a non-empty content field.
func DecodeEvent(data []byte) (studypal.Event, error) {
	var dto eventDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	if msg, ok := errorMessage(dto.Error); ok {
		return studypal.EventError{Message: msg}, nil
	}
	if dto.Done {
		return studypal.EventDone{}, nil
	}

	switch dto.Type {
	case "session":
		if dto.SessionID == "" {
			return nil, nil
		}
		return studypal.EventSession{SessionID: dto.SessionID}, nil
	case "status":
		if dto.Status == "" {
			return nil, nil
		}
		return studypal.EventStatus{Status: studypal.Status(dto.Status)}, nil
	case "search_start", "search_complete", "response_start", "image_complete":
		return studypal.EventStatus{Status: studypal.Status(dto.Type)}, nil
	case "image_start", "generating_image":
		return studypal.EventStatus{Status: studypal.StatusGeneratingImage}, nil
	case "followup_questions":
		var f followupDTO
		if len(dto.Data) > 0 {
			if err := json.Unmarshal(dto.Data, &f); err != nil {
				return nil, fmt.Errorf("decode followup_questions: %w", err)
			}
		}
		return studypal.EventFollowup{Response: f.Response, Questions: f.FollowupQuestions}, nil
	case "done", "complete", "stream_complete":
		return studypal.EventDone{}, nil
	case "error":
		msg := dto.Message
		if msg == "" {
			msg = "unknown backend error"
		}
		return studypal.EventError{Message: msg}, nil
	}

	if dto.Content != "" {
		return studypal.EventContent{Content: dto.Content}, nil
	}
	return nil, nil
}
