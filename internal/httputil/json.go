package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorResponse{Error: msg})
}

// WriteValidationError unpacks validator field errors into the details map so
// clients can see which field failed and why.
func WriteValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: "validation failed"}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		resp.Details = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			resp.Details[fe.Field()] = fmt.Sprintf("failed on the '%s' tag", fe.Tag())
		}
	}
	WriteJSON(w, http.StatusBadRequest, resp)
}
