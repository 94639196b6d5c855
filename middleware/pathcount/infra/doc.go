// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - MemoryStore: contador por chave protegido por mutex (o estado compartilhado)
//   - MemoryStatsStore / RedisStatsStore: destino best-effort dos eventos de chamada
package infra
