package catalog

import "strings"

var umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// Normalize lowercases s and transliterates German umlauts and ß. Other
// diacritics and surrounding whitespace are left untouched.
func Normalize(s string) string {
	return umlauts.Replace(strings.ToLower(s))
}
