package infra

import (
	"context"
	"sync"

	"middleware-counter/middleware/pathcount/domain"
)

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu      sync.Mutex
	total   int64
	byRoute map[string]int64
	byKey   map[string]domain.Count
	last    domain.CallEvent

	trackKeys bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byRoute: make(map[string]int64),
		byKey:   make(map[string]domain.Count),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.CallEvent) error {
	route := ev.Method + " " + ev.Path

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byRoute[route]++
	s.last = ev
	if s.trackKeys {
		// guarda o maior valor visto: eventos concorrentes podem chegar fora de ordem
		if ev.Count > s.byKey[string(ev.Key)] {
			s.byKey[string(ev.Key)] = ev.Count
		}
	}
	return nil
}

func (s *MemoryStatsStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) Last() domain.CallEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *MemoryStatsStore) ByRoute() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.byRoute))
	for k, v := range s.byRoute {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByKey() map[string]domain.Count {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Count, len(s.byKey))
	for k, v := range s.byKey {
		out[k] = v
	}
	return out
}
