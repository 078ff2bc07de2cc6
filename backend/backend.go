// Package backend implements [studypal.ChatService] and
// [studypal.CanvasSolver] over the StudyPal HTTP API.
//
// Chat replies arrive as a chunked "data: <json>" body and are decoded by
// the sse package into a pull-based [studypal.Stream].
package backend

const (
	defaultBaseURL = "http://localhost:8012"
	defaultUserID  = "default"

	chatStreamPath = "/chat/stream"
	sessionPath    = "/session/"
	newSessionPath = "/session/new"
	solvePath      = "/solve-problem"
	healthPath     = "/health"

	healthyStatus = "healthy"
)

// apiChatRequest is the JSON body sent to /chat/stream. A nil SessionID is
// sent as null so the backend assigns one.
type apiChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
	UserID    string  `json:"user_id"`
}

type apiNewSessionRequest struct {
	UserID string `json:"user_id"`
}

type apiNewSessionResponse struct {
	SessionID string `json:"session_id"`
}

type apiSolveRequest struct {
	Image string `json:"image"`
}

type apiSolveResponse struct {
	Success  bool   `json:"success"`
	Solution string `json:"solution"`
	Error    string `json:"error"`
}

type apiHealthResponse struct {
	Status string `json:"status"`
}

// apiErrorResponse is the FastAPI error body.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}
