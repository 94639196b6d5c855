// Package application contém os casos de uso (regras de aplicação) para a contagem
// por path e o limite de concorrência.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Observe(ctx, call) incrementa o contador da chave e emite o registro.
package application
