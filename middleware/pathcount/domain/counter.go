package domain

// Camada de domínio da contagem por path.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import (
	"context"

	"github.com/pkg/errors"
)

// Key identifica o contador. Derivada do primeiro segmento do path.
// A string vazia é uma chave válida.
type Key string

// Count é o número de chamadas já observadas para uma Key.
type Count uint64

// CounterStore é o único estado mutável compartilhado entre requisições.
//
// IncrementAndGet lê o valor atual (0 se ausente), soma 1, grava e devolve o novo valor,
// tudo de forma atômica em relação a outros incrementos.
// Erro só em falha fatal (ErrStoreFault): nunca devolve uma contagem errada.
type CounterStore interface {
	IncrementAndGet(ctx context.Context, key Key) (Count, error)
}

var (
	// ErrStoreFault agrupa as falhas fatais do store. Use errors.Is.
	ErrStoreFault = errors.New("counter store fault")

	// ErrStorePoisoned indica que um panic ocorreu dentro da seção crítica.
	// O estado pode estar corrompido; o store recusa qualquer operação posterior.
	ErrStorePoisoned error = &faultError{msg: "counter store poisoned"}

	// ErrCountOverflow indica que o contador chegou ao valor máximo de Count.
	ErrCountOverflow error = &faultError{msg: "counter overflow"}
)

type faultError struct {
	msg string
}

func (e *faultError) Error() string { return e.msg }

// Is faz errors.Is(err, ErrStoreFault) valer para todas as falhas do store.
func (e *faultError) Is(target error) bool {
	return target == ErrStoreFault
}
