// Package textclean converts raw helpdesk message bodies (usually HTML)
// into plain text with quoted history and signatures truncated.
package textclean

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// breakTags are converted to newlines before the remaining markup is
// stripped, so paragraph structure survives as whitespace.
var breakTags = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</tr>|</blockquote>|</h[1-6]>`)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// Result carries the sanitized text plus flags reporting which truncation
// heuristics fired, so downstream consumers can tell heuristic output from
// verbatim content.
type Result struct {
	Text               string
	HistoryTruncated   bool
	SignatureTruncated bool
}

type Service struct {
	structural *bluemonday.Policy
	strict     *bluemonday.Policy
}

func NewService() *Service {
	// First pass keeps only structural elements and drops script/style/
	// head/title/meta together with their contents.
	structural := bluemonday.NewPolicy()
	structural.AllowElements(
		"br", "p", "div", "span", "li", "ul", "ol",
		"table", "tr", "td", "th", "blockquote", "a",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "em", "b", "i", "u",
	)
	structural.SkipElementsContent("script", "style", "head", "title", "meta")

	return &Service{
		structural: structural,
		strict:     bluemonday.StrictPolicy(),
	}
}

// Sanitize runs the full pipeline and returns plain text.
func (s *Service) Sanitize(raw string) string {
	return s.SanitizeDetailed(raw).Text
}

// SanitizeDetailed runs the pipeline: strip noise elements, convert breaks
// to newlines, strip remaining markup, decode entities, truncate quoted
// history, truncate signatures, collapse blank lines.
func (s *Service) SanitizeDetailed(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	text := s.structural.Sanitize(raw)
	text = breakTags.ReplaceAllString(text, "\n")
	text = s.strict.Sanitize(text)
	text = html.UnescapeString(text)

	text, historyHit := truncateAt(text, historyMarkers)
	text, signatureHit := truncateAt(text, signatureMarkers)

	text = blankLines.ReplaceAllString(text, "\n\n")
	text = trimLines(text)

	return Result{
		Text:               strings.TrimSpace(text),
		HistoryTruncated:   historyHit,
		SignatureTruncated: signatureHit,
	}
}

// PreQuote returns the portion of text before the first quoted-history
// marker. It also honors a raw "<blockquote" as a marker so it can run on
// unsanitized bodies; the auto-reply heuristic uses it that way.
func PreQuote(text string) string {
	pre, _ := truncateAt(text, historyMarkers)
	if idx := strings.Index(strings.ToLower(pre), "<blockquote"); idx >= 0 {
		pre = pre[:idx]
	}
	return pre
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases text and strips diacritics, for accent-insensitive
// matching of Czech/Slovak marker phrases.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// trimLines strips trailing spaces from every line.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}
