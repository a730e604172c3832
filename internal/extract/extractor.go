package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// Extractor turns one operator's document text into a raw extraction.
// Implementations are stateless values, hard-coded to a single report layout.
// Extraction degrades field-by-field: a field the document does not carry is
// nil in the result, and Extract never fails for a whole document.
type Extractor interface {
	Operator() string
	Extract(text string) domain.Extraction
}

// registry maps document keywords to extractor constructors, in match order.
// Order is load-bearing: a generic keyword placed before a more specific one
// would steal its documents. "PCR" is a substring risk for future operator
// names, which is why it sits last with its long spelling beside it.
var registry = []struct {
	keyword string
	build   func() Extractor
}{
	{"YPF S.A.", func() Extractor { return YPF{} }},
	{"PLUSPETROL", func() Extractor { return Pluspetrol{} }},
	{"PETROLEOS SUDAMERICANOS", func() Extractor { return PetSud{} }},
	{"PETRÓLEOS SUDAMERICANOS", func() Extractor { return PetSud{} }},
	{"ACONCAGUA ENERGIA", func() Extractor { return Aconcagua{} }},
	{"PCR", func() Extractor { return PCR{} }},
	{"COMODORO RIVADAVIA", func() Extractor { return PCR{} }},
}

// Identify selects the extractor for a document by accent-insensitive keyword
// containment, first match wins. Returns nil when no operator keyword is
// present; the caller treats the document as unprocessable.
func Identify(text string) Extractor {
	folded := foldAccents(text)
	for _, entry := range registry {
		if strings.Contains(folded, foldAccents(entry.keyword)) {
			return entry.build()
		}
	}
	return nil
}

// Operators lists the supported operator names in registry order, without
// duplicates. Used by the HTTP surface and the offline validator.
func Operators() []string {
	seen := make(map[string]bool, len(registry))
	names := make([]string, 0, len(registry))
	for _, entry := range registry {
		name := entry.build().Operator()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// foldAccents upper-cases and strips diacritics via NFD decomposition, so
// "Petróleos" and "PETROLEOS" compare equal regardless of how the PDF
// typeset the accent.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}
