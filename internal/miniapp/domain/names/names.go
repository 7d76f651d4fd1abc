// Package names compares user-visible names the way the Mini App UI does:
// Russian collation at base strength, so case and diacritics are ignored.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collate.Collator is not safe for concurrent use; build one per call.
func collator() *collate.Collator {
	return collate.New(language.Russian, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
}

// Normalize убирает внешние пробелы.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// Equal сравнивает имена без учета регистра и диакритики.
func Equal(a, b string) bool {
	return collator().CompareString(Normalize(a), Normalize(b)) == 0
}

// Compare упорядочивает имена по правилам русской локали.
func Compare(a, b string) int {
	return collator().CompareString(a, b)
}

// Contains ищет подстроку без учета регистра (Unicode case folding).
func Contains(haystack, needle string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}
