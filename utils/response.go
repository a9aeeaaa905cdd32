package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mealprep/apperr"
)

type successEnvelope struct {
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

type errorEnvelope struct {
	Error     string         `json:"error"`
	Code      apperr.Code    `json:"code"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithData writes the success envelope.
func RespondWithData(w http.ResponseWriter, statusCode int, data any, message string) {
	RespondWithJSON(w, statusCode, successEnvelope{Data: data, Message: message, Timestamp: timestamp()})
}

// RespondWithError writes the error envelope for err. Internal errors are
// logged with their cause; the client only sees the generic message.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError {
		LoggerFrom(r.Context()).WithError(err).Error("request failed")
	}
	RespondWithJSON(w, e.Status, errorEnvelope{
		Error:     e.Message,
		Code:      e.Code,
		Details:   e.Details,
		Timestamp: timestamp(),
	})
}

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a JSON request body of at most MaxBodyBytes into v.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperr.Validation("Request body is required")
	}
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.BodyTooLarge(tooLarge.Limit)
		}
		return apperr.Validation("Invalid JSON")
	}
	return nil
}
