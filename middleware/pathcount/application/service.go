package application

import (
	"context"
	"time"

	"middleware-counter/middleware/pathcount/domain"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Call carrega o que o caso de uso precisa saber da requisição.
type Call struct {
	Key       domain.Key
	Method    string
	Path      string
	RequestID string
}

// Service concentra a regra de contagem.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas incrementa e registra.
type Service struct {
	Store  domain.CounterStore
	Stats  domain.StatsStore
	Logger zerolog.Logger

	// StatsWarn limita os avisos de falha do Stats. Nil loga toda falha.
	StatsWarn *rate.Sometimes
}

// NewStatsWarn devolve o limitador padrão de avisos: o primeiro e depois um por intervalo.
func NewStatsWarn(every time.Duration) *rate.Sometimes {
	return &rate.Sometimes{First: 1, Interval: every}
}

// Observe incrementa o contador de call.Key e emite o registro "Called path ...".
//
// Não valida a chave. Só falha quando o store falha, e essa falha é fatal para a request.
func (s *Service) Observe(ctx context.Context, call Call) error {
	if s.Store == nil {
		return errors.Wrap(domain.ErrStoreFault, "no counter store configured")
	}

	n, err := s.Store.IncrementAndGet(ctx, call.Key)
	if err != nil {
		return errors.Wrapf(err, "increment %q", string(call.Key))
	}

	log := s.logger(ctx)
	log.Info().
		Str("key", string(call.Key)).
		Uint64("count", uint64(n)).
		Msgf("Called path %q %d times.", string(call.Key), uint64(n))

	if s.Stats != nil {
		ev := domain.CallEvent{
			Key:       call.Key,
			Count:     n,
			Method:    call.Method,
			Path:      call.Path,
			RequestID: call.RequestID,
			At:        time.Now(),
		}
		if err := s.Stats.Record(ctx, ev); err != nil {
			s.warnStats(log, err)
		}
	}

	return nil
}

// logger prefere o logger da request (com request_id) quando existe um no ctx.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.Logger
}

func (s *Service) warnStats(log *zerolog.Logger, err error) {
	warn := func() {
		log.Warn().Err(err).Msg("stats record failed")
	}
	if s.StatsWarn == nil {
		warn()
		return
	}
	s.StatsWarn.Do(warn)
}
