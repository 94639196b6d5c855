package pathcount

import "net/http"

// Fallback transforma a falha do primário em resposta. Não pode falhar.
type Fallback[T any] func(r *http.Request, err error) T

// Branch indica qual ramo produziu o resultado.
type Branch int

const (
	BranchPrimary Branch = iota
	BranchRecovered
)

func (b Branch) String() string {
	switch b {
	case BranchPrimary:
		return "primary"
	case BranchRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Outcome é o resultado antes da unificação: ou veio do primário, ou do fallback.
type Outcome[T any] struct {
	Branch    Branch
	Primary   T
	Recovered T
	// Cause é a falha do primário quando Branch == BranchRecovered.
	Cause error
}

// Attempt roda o primário e, só se ele falhar, o fallback. Sem retry.
func Attempt[T any](r *http.Request, primary Filter[T], fallback Fallback[T]) Outcome[T] {
	v, err := primary(r)
	if err == nil {
		return Outcome[T]{Branch: BranchPrimary, Primary: v}
	}
	return Outcome[T]{Branch: BranchRecovered, Recovered: fallback(r, err), Cause: err}
}

// Unify colapsa os dois ramos no tipo comum.
func (o Outcome[T]) Unify() T {
	switch o.Branch {
	case BranchRecovered:
		return o.Recovered
	default:
		return o.Primary
	}
}

// Route compõe primário + fallback num Filter que nunca devolve erro.
func Route[T any](primary Filter[T], fallback Fallback[T]) Filter[T] {
	return func(r *http.Request) (T, error) {
		return Attempt(r, primary, fallback).Unify(), nil
	}
}

// CountFallbacks embrulha o fallback para contar suas execuções em m.
func CountFallbacks[T any](m *Metrics, fallback Fallback[T]) Fallback[T] {
	return func(r *http.Request, err error) T {
		m.incFallbacks()
		return fallback(r, err)
	}
}

// Hello é o handler de referência.
func Hello(*http.Request) (string, error) {
	return "hello world\n", nil
}

// Recovered é o fallback de referência.
func Recovered(*http.Request, error) string {
	return "recovered"
}
