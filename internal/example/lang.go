package example

import (
	"github.com/alecthomas/chroma/v2/lexers"
)

// canonicalLang maps a language alias to the name Chroma knows it by.
// Unknown languages are returned as-is.
func canonicalLang(lang string) string {
	if lang == "" {
		return ""
	}
	if l := lexers.Get(lang); l != nil {
		return l.Config().Name
	}
	return lang
}

// detectLang guesses the language of code with Chroma's analysers.
// It returns an empty string if no analyser claims the code.
func detectLang(code string) string {
	if l := lexers.Analyse(code); l != nil {
		return l.Config().Name
	}
	return ""
}
