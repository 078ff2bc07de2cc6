package studypal

import "time"

// Session is an in-memory chat transcript. ID is empty until the backend
// assigns one.
type Session struct {
	ID        string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
