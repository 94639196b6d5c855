// Package pathcount fornece o middleware de contagem de chamadas por path e os
// combinadores genéricos usados para montar o pipeline HTTP.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: caso de uso Observe (incrementa e registra) sem net/http
//   - infra: implementações concretas (contador em memória, stats em memória/Redis)
//   - pathcount (este pacote): Filter genérico, Route (primário + fallback), Wrap,
//     Middleware net/http, extração de chave, request id e métricas
//
// Fluxo por requisição:
//
//  1. Extrai a chave (primeiro segmento do path)
//  2. Incrementa o contador da chave e emite "Called path ..." (Observe)
//  3. Descarta o resultado do passo 2 e chama o handler embrulhado com a mesma request
//  4. O handler roda o primário; se falhar, o fallback produz a resposta
//
// Só uma falha do store (envenenado/overflow) escapa, como 500.
package pathcount
