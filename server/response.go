package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"proptech-analytics/services"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type notFoundData struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// WriteJSON encodes resp before committing status, so an unencodable payload
// becomes a 500 envelope instead of an empty body.
func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(APIResponse{Success: false, Message: "Internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeOK(w http.ResponseWriter, message string, data interface{}) {
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: message})
}

// writeError maps a service error onto a status code and envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *services.LocalityNotFoundError
	switch {
	case errors.As(err, &notFound):
		suggestions := notFound.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		WriteJSON(w, http.StatusNotFound, APIResponse{
			Success: false,
			Message: err.Error(),
			Data:    notFoundData{Query: notFound.Query, Suggestions: suggestions},
		})
	case errors.Is(err, services.ErrLocalityNotFound):
		WriteJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: err.Error()})
	case services.IsValidation(err):
		writeBadRequest(w, err.Error())
	case errors.Is(err, services.ErrDataUnavailable):
		WriteJSON(w, http.StatusServiceUnavailable, APIResponse{Success: false, Message: err.Error()})
	default:
		h.logger.Error("[server] %s %s failed: request_id=%s err=%v", r.Method, r.URL.Path, RequestID(r.Context()), err)
		WriteJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "Internal server error"})
	}
}
