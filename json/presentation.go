package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/studypal"
)

// envelopeDTO is the {type, data} frame used in both directions on the
// presentation channel.
type envelopeDTO struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type startDTO struct {
	Topic      string `json:"topic"`
	SlideCount int    `json:"slideCount"`
	Tone       string `json:"tone"`
	Theme      string `json:"theme"`
}

type progressDTO struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Step     string `json:"step"`
}

type imageStatusDTO struct {
	SlideNumber int    `json:"slide_number"`
	Status      string `json:"status"`
	Thumbnail   string `json:"thumbnail"`
}

type slidePreviewDTO struct {
	SlideNumber    int      `json:"slide_number"`
	Title          string   `json:"title"`
	Points         []string `json:"points"`
	ImageThumbnail string   `json:"image_thumbnail"`
	Status         string   `json:"status"`
}

type slideCompletedDTO struct {
	Title string `json:"title"`
}

type presentationDTO struct {
	Title                string `json:"title"`
	PresentationURL      string `json:"presentation_url"`
	PresentationEmbedURL string `json:"presentation_embed_url"`
	TotalSlides          int    `json:"total_slides"`
	Message              string `json:"message"`
}

type errorDTO struct {
	Message string `json:"message"`
}

// MarshalStart encodes a start_presentation message.
func MarshalStart(req studypal.PresentationRequest) ([]byte, error) {
	data, err := json.Marshal(startDTO{
		Topic:      req.Topic,
		SlideCount: req.SlideCount,
		Tone:       req.Tone,
		Theme:      req.Theme,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelopeDTO{Type: "start_presentation", Data: data})
}

// Ping is the keepalive message sent on the presentation channel.
var Ping = []byte(`{"type":"ping"}`)

// DecodePresentationMessage decodes one inbound presentation channel
// message. Unknown types (agent_status, browser_opened, pong, ...) decode to
// a nil message and nil error.
func DecodePresentationMessage(data []byte) (studypal.PresentationMessage, error) {
	var env envelopeDTO
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode presentation message: %w", err)
	}

	switch env.Type {
	case "progress":
		var d progressDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.PresentationProgress{Progress: d.Progress, Message: d.Message, Step: d.Step}, nil
	case "image_status":
		var d imageStatusDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.ImageStatus{SlideNumber: d.SlideNumber, Status: d.Status, Thumbnail: d.Thumbnail}, nil
	case "slide_preview":
		var d slidePreviewDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.SlidePreview{
			SlideNumber: d.SlideNumber,
			Title:       d.Title,
			Points:      d.Points,
			Thumbnail:   d.ImageThumbnail,
			Status:      d.Status,
		}, nil
	case "slide_completed":
		var d slideCompletedDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.SlideCompleted{Title: d.Title}, nil
	case "presentation_created":
		var d presentationDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.PresentationCreated{URL: d.PresentationURL}, nil
	case "completed":
		var d presentationDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.PresentationCompleted{
			Title:       d.Title,
			URL:         d.PresentationURL,
			EmbedURL:    d.PresentationEmbedURL,
			TotalSlides: d.TotalSlides,
			Message:     d.Message,
		}, nil
	case "error":
		var d errorDTO
		if err := decodeData(env, &d); err != nil {
			return nil, err
		}
		return studypal.PresentationError{Message: d.Message}, nil
	default:
		return nil, nil
	}
}

func decodeData(env envelopeDTO, v any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode %s data: %w", env.Type, err)
	}
	return nil
}
