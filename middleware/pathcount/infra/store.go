package infra

import (
	"context"
	"math"
	"sync"

	"middleware-counter/middleware/pathcount/domain"
)

// MemoryStore é o contador compartilhado: map de chave para contagem sob um único mutex.
//
// O valor zero já é utilizável. Não há expiração: as contagens vivem até o processo sair.
type MemoryStore struct {
	mu       sync.Mutex
	counts   map[domain.Key]domain.Count
	poisoned bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[domain.Key]domain.Count)}
}

// IncrementAndGet implementa domain.CounterStore.
//
// Um panic dentro da seção crítica envenena o store: o panic segue adiante e
// toda chamada posterior devolve domain.ErrStorePoisoned.
func (s *MemoryStore) IncrementAndGet(_ context.Context, key domain.Key) (domain.Count, error) {
	return s.critical(func(counts map[domain.Key]domain.Count) (domain.Count, error) {
		cur := counts[key]
		if cur == math.MaxUint64 {
			return 0, domain.ErrCountOverflow
		}
		counts[key] = cur + 1
		return cur + 1, nil
	})
}

// critical roda fn com o lock tomado. Se fn não retornar (panic), o store fica envenenado.
func (s *MemoryStore) critical(fn func(map[domain.Key]domain.Count) (domain.Count, error)) (domain.Count, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return 0, domain.ErrStorePoisoned
	}

	completed := false
	defer func() {
		if !completed {
			s.poisoned = true
		}
	}()

	if s.counts == nil {
		s.counts = make(map[domain.Key]domain.Count)
	}

	n, err := fn(s.counts)
	completed = true
	return n, err
}

// Count devolve a contagem atual de key (0 se ausente).
func (s *MemoryStore) Count(key domain.Key) domain.Count {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counts)
}

// Snapshot devolve uma cópia de todas as contagens.
func (s *MemoryStore) Snapshot() map[domain.Key]domain.Count {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Key]domain.Count, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Poisoned informa se o store recusa operações por causa de um panic anterior.
func (s *MemoryStore) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}
