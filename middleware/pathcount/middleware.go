package pathcount

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"middleware-counter/internal/errs"
	"middleware-counter/middleware/pathcount/application"
	"middleware-counter/middleware/pathcount/domain"
)

type Options struct {
	Store   domain.CounterStore
	Stats   domain.StatsStore
	KeyFn   KeyFunc
	Logger  *zerolog.Logger
	Metrics *Metrics

	// StatsWarnEvery limita os avisos de falha do Stats (padrão 1m).
	StatsWarnEvery time.Duration
}

// observer é a parte comum de Wrap e Middleware: chave + Observe + métricas.
// Montado uma vez, na composição; seguro para uso concorrente.
type observer struct {
	svc     *application.Service
	keyFn   KeyFunc
	metrics *Metrics
}

func newObserver(opts Options) *observer {
	if opts.KeyFn == nil {
		opts.KeyFn = PathKey
	}
	if opts.StatsWarnEvery <= 0 {
		opts.StatsWarnEvery = time.Minute
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	logger.Info().Msg("Called inc_by_path_wrapper during init.")

	return &observer{
		svc: &application.Service{
			Store:     opts.Store,
			Stats:     opts.Stats,
			Logger:    logger,
			StatsWarn: application.NewStatsWarn(opts.StatsWarnEvery),
		},
		keyFn:   opts.KeyFn,
		metrics: opts.Metrics,
	}
}

func (o *observer) observe(r *http.Request) error {
	err := o.svc.Observe(r.Context(), application.Call{
		Key:       domain.Key(o.keyFn(r)),
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: RequestIDFromContext(r.Context()),
	})
	if err != nil {
		o.metrics.incStoreFaults()
		return err
	}
	o.metrics.incIncrements()
	return nil
}

// Wrap devolve um Filter que conta a chamada e depois roda next com a mesma request.
//
// Funciona para qualquer T: o resultado de next passa intacto. Se o store falhar,
// next não roda e a falha sobe. A montagem (e o log de init) acontece aqui, uma vez.
func Wrap[T any](next Filter[T], opts Options) Filter[T] {
	obs := newObserver(opts)
	return func(r *http.Request) (T, error) {
		if err := obs.observe(r); err != nil {
			var zero T
			return zero, err
		}
		return next(r)
	}
}

// WrapWith é Wrap na forma de Wrapper, para uso com Chain.
func WrapWith[T any](opts Options) Wrapper[T] {
	return func(next Filter[T]) Filter[T] {
		return Wrap(next, opts)
	}
}

// Middleware é o mesmo comportamento de Wrap para http.Handler comum.
// Falha do store responde 500 e não chama next.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	obs := newObserver(opts)
	logger := obs.svc.Logger

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := obs.observe(r); err != nil {
				logger.Error().
					Err(err).
					Str("path", r.URL.Path).
					Str("request_id", RequestIDFromContext(r.Context())).
					Msg("counter store fault")
				_ = errs.Write(w, errs.NewInternalServerError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
