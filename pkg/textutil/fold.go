// Package textutil ofrece normalización de texto para búsquedas
// insensibles a mayúsculas y acentos (ej. "Verônica" coincide con "veronica").
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve s en minúsculas y sin diacríticos.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		// La cadena original sigue siendo utilizable para comparar
		out = s
	}
	return strings.ToLower(out)
}

// ContainsFold indica si needle aparece en haystack ignorando mayúsculas y acentos.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
