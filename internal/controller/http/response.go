package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
)

// JSONPrefix предваряет каждый JSON-ответ (защита от JSON hijacking); клиент должен его отрезать.
const JSONPrefix = ")]}',\n"

const (
	messageInvalidPayload  = "Invalid request payload"
	messagePayloadTooLarge = "request entity too large"
	messageInternalError   = "Internal server error"
)

// Response единый конверт всех ответов API.
type Response struct {
	Status   int    `json:"status"`
	Body     any    `json:"body,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload Response) {
	payload.Status = code
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to encode response")
		code = http.StatusInternalServerError
		data, _ = json.Marshal(Response{Status: code, Message: messageInternalError})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, JSONPrefix)
	_, _ = w.Write(data)
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, Response{Message: message})
}

// respondNoContent отвечает 204 без тела: так API сообщает, что задача не найдена.
func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
