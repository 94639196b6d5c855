package domain

import (
	"context"
	"time"
)

// CallEvent representa uma chamada contada pelo middleware.
//
// Method/Path são strings genéricas, sem dependência de net/http.
//
// Observação: cuidado com cardinalidade (ex.: salvar Key/Path sem controle pode
// explodir o número de chaves em uma base como Redis).
type CallEvent struct {
	Key   Key
	Count Count

	Method    string
	Path      string
	RequestID string

	At time.Time
}

// StatsStore é a estratégia de exportação das chamadas contadas.
//
// Implementações podem armazenar em Redis, memória, etc.
// O middleware trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev CallEvent) error
}
