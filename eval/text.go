package eval

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/kolsrud/filterql/internal/locale"
)

// foldText applies the fixed diacritic-then-case pipeline (spec §8,
// property 8): diacritics are stripped first by decomposing to NFD and
// dropping combining marks, and only then is the result case-folded.
// Reversing the order changes results on some strings: under the "tr"
// locale, "İ" becomes "ı" here (stripped to "I", then lowercased) but
// would become "i" if lowercased first. The order is not configurable.
func foldText(s string, opts Options) string {
	if opts.FoldDiacritics {
		s = stripDiacritics(s)
	}
	if opts.IgnoreCase {
		s = caseFold(s, opts.Locale)
	}
	return s
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if isCombiningMark(r) {
			continue
		}
		out = append(out, r)
	}
	return norm.NFC.String(string(out))
}

// isCombiningMark reports whether r falls in the Combining Diacritical
// Marks block (U+0300-U+036F), the range spec §4.3 step 2(a) names for
// diacritic stripping after NFD decomposition.
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// caseFold lowercases s using locale-aware rules. This is where Turkish
// ("tr") differs from every other supported locale: "I".toLower is "ı"
// (dotless) under "tr" but "i" everywhere else. Callers that need
// locale-independent caseless matching should leave Locale unset.
func caseFold(s, tag string) string {
	return cases.Lower(locale.Resolve(tag)).String(s)
}
