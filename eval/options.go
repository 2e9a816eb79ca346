package eval

// Options configures per-call predicate behavior (spec §4.3). Locale is a
// BCP-47 tag; an empty or unparsable value falls back to
// golang.org/x/text/language.Und, which applies simple (non-locale-aware)
// case folding.
type Options struct {
	IgnoreCase     bool
	FoldDiacritics bool
	Locale         string
}
