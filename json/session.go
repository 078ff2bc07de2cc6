package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/studypal"
)

// envelope is the v1 wire format for a saved transcript.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

type messageDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Followup  []string  `json:"followup,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s studypal.Session) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Messages:  make([]messageDTO, len(s.Messages)),
	}
	for i, msg := range s.Messages {
		switch m := msg.(type) {
		case studypal.UserMessage:
			env.Messages[i] = messageDTO{Role: string(studypal.RoleUser), Text: m.Text, Timestamp: m.Timestamp}
		case studypal.AssistantMessage:
			env.Messages[i] = messageDTO{
				Role:      string(studypal.RoleAssistant),
				Text:      m.Text,
				Followup:  m.Followup,
				Failed:    m.Failed,
				Timestamp: m.Timestamp,
			}
		default:
			return nil, fmt.Errorf("message %d: unknown message type %T", i, msg)
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (studypal.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return studypal.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return studypal.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]studypal.Message, len(env.Messages))
	for i, dto := range env.Messages {
		switch studypal.Role(dto.Role) {
		case studypal.RoleUser:
			msgs[i] = studypal.UserMessage{Text: dto.Text, Timestamp: dto.Timestamp}
		case studypal.RoleAssistant:
			msgs[i] = studypal.AssistantMessage{
				Text:      dto.Text,
				Followup:  dto.Followup,
				Failed:    dto.Failed,
				Timestamp: dto.Timestamp,
			}
		default:
			return studypal.Session{}, fmt.Errorf("message %d: unknown role: %q", i, dto.Role)
		}
	}
	return studypal.Session{
		ID:        env.ID,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Messages:  msgs,
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
func Save(path string, s studypal.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (studypal.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return studypal.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}
