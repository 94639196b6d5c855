// Package domain define contratos e tipos de domínio para a contagem de chamadas por path.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar a regra de contagem
// de detalhes de infraestrutura.
package domain
