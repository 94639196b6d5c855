package pathcount

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"middleware-counter/internal/errs"
)

// Filter é o formato único de handler do pipeline: produz um T a partir da
// requisição ou uma falha. Middlewares e rotas têm todos esse mesmo formato.
type Filter[T any] func(r *http.Request) (T, error)

// Wrapper embrulha um Filter sem mudar o tipo que ele produz.
type Wrapper[T any] func(next Filter[T]) Filter[T]

// Chain aplica os wrappers em ordem: o primeiro é o mais externo.
func Chain[T any](f Filter[T], ws ...Wrapper[T]) Filter[T] {
	for i := len(ws) - 1; i >= 0; i-- {
		f = ws[i](f)
	}
	return f
}

// Responder escreve um T como resposta HTTP.
type Responder[T any] func(w http.ResponseWriter, v T)

// Text responde v como text/plain.
func Text(w http.ResponseWriter, v string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, v)
}

// Handler adapta um Filter para http.Handler.
//
// Um erro que chega aqui não foi recuperado pelo pipeline (na prática, falha do
// store): vira 500 com o corpo JSON de errs.
func Handler[T any](f Filter[T], respond Responder[T], logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := f(r)
		if err != nil {
			logger.Error().
				Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("unrecoverable pipeline error")
			_ = errs.Write(w, errs.NewInternalServerError())
			return
		}
		respond(w, v)
	})
}
