// Package errs define o formato de erro escrito para o cliente HTTP.
//
// O pipeline de contagem tem uma única falha visível: o store de contadores
// deixou de ser confiável. O resto é recuperado antes de chegar ao cliente.
package errs

import "strings"

// HTTPError é o corpo JSON enviado numa falha irrecuperável.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is casa com qualquer *HTTPError, independente de código ou status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores transforma "Internal Server Error" em "INTERNAL_SERVER_ERROR".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
