package engine

import "strings"

// closingPhrases is the fixed set that ends a conversation. Matching is
// case-insensitive containment over the raw utterance; the list mixes
// Spanish and English because callers do.
var closingPhrases = []string{
	"adiós",
	"adios",
	"chau",
	"hasta luego",
	"nos vemos",
	"eso es todo",
	"nada más",
	"nada mas",
	"colgar",
	"terminar la llamada",
	"goodbye",
	"that's all",
	"hang up",
}

// IsFarewell reports whether the utterance contains a closing phrase.
func IsFarewell(utterance string) bool {
	u := strings.ToLower(utterance)
	for _, phrase := range closingPhrases {
		if strings.Contains(u, phrase) {
			return true
		}
	}
	return false
}
