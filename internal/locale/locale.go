// Package locale resolves BCP-47 locale tags for the evaluator's text
// pre-processing (eval/text.go).
package locale

import "golang.org/x/text/language"

// Resolve parses tag and returns the matching language.Tag, falling
// back to language.Und (locale-independent) for an empty string or an
// unparsable tag rather than failing the caller.
func Resolve(tag string) language.Tag {
	if tag == "" {
		return language.Und
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return language.Und
	}
	return parsed
}
