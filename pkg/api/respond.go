package api

import (
	"encoding/json"
	"net/http"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  werrors.Code `json:"code"`
	Error string       `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := werrors.GetCode(err)
	status := statusFor(code)
	msg := werrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		code = werrors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func statusFor(code werrors.Code) int {
	switch code {
	case werrors.ErrCodeInvalidInput, werrors.ErrCodeInvalidFormat, werrors.ErrCodeMalformedInput:
		return http.StatusBadRequest
	case werrors.ErrCodeNotFound:
		return http.StatusNotFound
	case werrors.ErrCodePrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
