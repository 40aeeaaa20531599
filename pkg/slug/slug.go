// Package slug genera identificadores de subdominio a partir de nombres de empresa.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 63 // longitud máxima de una etiqueta DNS

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	valid    = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
)

// reserved no pueden usarse como subdominio de una empresa.
var reserved = map[string]bool{
	"www": true, "api": true, "admin": true, "app": true, "mail": true,
}

// Make normaliza un nombre a slug: sin tildes, minúsculas, separado por guiones.
// Ej: "Frutas Doña Inés" → "frutas-dona-ines".
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	s := nonAlnum.ReplaceAllString(strings.ToLower(plain), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}

// Valid informa si s puede usarse como subdominio de empresa.
func Valid(s string) bool {
	return valid.MatchString(s) && !reserved[s]
}
