package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/constants"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *errorBody             `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// WriteJSON writes a success envelope.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data, Meta: meta(r)}); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// WriteError maps domain errors to HTTP statuses and writes the error
// envelope. Unknown errors become opaque 500s; the detail goes to the log
// only.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	body, status := classify(err)
	if status == http.StatusInternalServerError {
		if entry, ok := r.Context().Value(constants.LoggerKey).(*logrus.Entry); ok {
			entry.WithError(err).Error("unhandled error")
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &body, Meta: meta(r)})
}

func classify(err error) (errorBody, int) {
	var validationErrs serrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		field := validationErrs.FirstField()
		first := validationErrs.First()
		var base *serrors.BaseError
		if errors.As(first, &base) {
			return errorBody{Code: base.Code, Message: base.Message, Field: field}, http.StatusBadRequest
		}
		return errorBody{Code: "VALIDATION", Message: first.Error(), Field: field}, http.StatusBadRequest
	}

	var base *serrors.BaseError
	if errors.As(err, &base) {
		return errorBody{Code: base.Code, Message: base.Message}, statusForCode(base.Code)
	}
	if errors.Is(err, composables.ErrNoUser) {
		return errorBody{Code: "UNAUTHORIZED", Message: "נדרשת התחברות"}, http.StatusUnauthorized
	}
	if errors.Is(err, composables.ErrForbidden) {
		return errorBody{Code: "FORBIDDEN", Message: "אין לך הרשאה לבצע פעולה זו"}, http.StatusForbidden
	}
	return errorBody{Code: "INTERNAL", Message: "internal server error"}, http.StatusInternalServerError
}

func statusForCode(code string) int {
	switch code {
	case "USER_NOT_FOUND", "SESSION_NOT_FOUND", "UPLOAD_NOT_FOUND",
		"REQUEST_NOT_FOUND", "COMMENT_NOT_FOUND", "RESET_TOKEN_NOT_FOUND",
		"STUDENT_NOT_FOUND":
		return http.StatusNotFound
	case "EMAIL_TAKEN":
		return http.StatusConflict
	case "INVALID_PASSWORD", "SESSION_EXPIRED":
		return http.StatusUnauthorized
	case "FORBIDDEN":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func meta(r *http.Request) map[string]interface{} {
	entry, ok := r.Context().Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return nil
	}
	id, ok := entry.Data["request_id"].(string)
	if !ok || id == "" {
		return nil
	}
	return map[string]interface{}{"request_id": id}
}
