// Package buscador implements the free-text filter shared by every listing
// endpoint. It is a linear predicate over designated text fields — not a
// search engine: no ranking, no pagination, no index.
package buscador

import "strings"

// Filtrar returns the ordered subsequence of items for which at least one
// field returned by campos contains the query as a case-insensitive
// substring. An empty (or whitespace-only) query returns the input slice
// unchanged. Side-effect-free; safe to call per request.
func Filtrar[T any](items []T, consulta string, campos func(T) []string) []T {
	consulta = strings.ToLower(strings.TrimSpace(consulta))
	if consulta == "" {
		return items
	}
	resultado := make([]T, 0, len(items))
	for _, item := range items {
		for _, campo := range campos(item) {
			if strings.Contains(strings.ToLower(campo), consulta) {
				resultado = append(resultado, item)
				break
			}
		}
	}
	return resultado
}
