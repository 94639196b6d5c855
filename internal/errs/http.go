package errs

import (
	"encoding/json"
	"net/http"
)

// NewInternalServerError cria um HTTPError 500.
//
// A mensagem é o texto genérico do status, nunca a causa interna.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// Write envia e como resposta JSON com status e.Status.
func Write(w http.ResponseWriter, e *HTTPError) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.Status)
	return json.NewEncoder(w).Encode(e)
}
