// Package redact removes PII and credential-like values from sanitized
// message text before it is stored or shown to any AI service.
//
// Redaction runs in two ordered passes: a deterministic regex pass for
// labeled secrets and phone-shaped digit sequences, then an entity
// recognition pass for unlabeled personal data. The regex pass goes first
// because it reliably catches labeled secrets a statistical model is not
// trained to flag; output length and character offsets are not preserved.
package redact

import (
	"regexp"
	"strings"

	apperrors "desksync/internal/shared/errors"
)

const (
	PlaceholderSecret = "[REDACTED]"
	PlaceholderEmail  = "[EMAIL]"
	PlaceholderPhone  = "[PHONE]"
	PlaceholderIP     = "[IP]"
	PlaceholderName   = "[NAME]"

	// WarningMarker prefixes text whose entity-recognition pass failed.
	// Shipping unredacted text silently would be a privacy risk, so the
	// fallback is flagged loudly in the stored content itself.
	WarningMarker = "[REDACTION-INCOMPLETE]"
)

// credentialPattern matches key:value / key=value pairs whose key belongs
// to the credential vocabulary; only the value is replaced.
var credentialPattern = regexp.MustCompile(
	`(?i)(heslo|password|pwd|passphrase|pass|access[_-]?token|token|api[_-]?key|klic|key|secret|dsw|customer[_-]?id|zakaznicke[_-]?cislo)(\s*[:=]\s*)(\S+)`)

// phonePattern matches phone-shaped digit sequences: an optional country
// code prefix followed by three groups of three digits.
var phonePattern = regexp.MustCompile(`(\+\d{1,3}[ .\-]?)?\b\d{3}[ .\-]?\d{3}[ .\-]?\d{3}\b`)

// Redactor applies both passes. The Recognizer is injectable; the default
// is the prose-backed implementation in recognizer.go.
type Redactor struct {
	rec Recognizer
}

func NewRedactor() *Redactor {
	return &Redactor{rec: NewProseRecognizer()}
}

func NewRedactorWithRecognizer(rec Recognizer) *Redactor {
	return &Redactor{rec: rec}
}

// Redact returns text with secrets and PII replaced by placeholders. When
// the entity-recognition pass fails, the regex-redacted text is returned
// with WarningMarker prefixed and a redaction-typed error describing the
// failure; processing of the owning ticket must not abort on it.
func (r *Redactor) Redact(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	redacted := redactPatterns(text)

	entities, err := r.rec.Recognize(redacted)
	if err != nil {
		return WarningMarker + "\n" + redacted,
			apperrors.NewRedactionError("entity recognition failed", err)
	}

	for _, ent := range entities {
		if ent.Text == "" {
			continue
		}
		redacted = strings.ReplaceAll(redacted, ent.Text, placeholderFor(ent.Label))
	}
	return redacted, nil
}

// redactPatterns is the deterministic first pass.
func redactPatterns(text string) string {
	text = credentialPattern.ReplaceAllString(text, "${1}${2}"+PlaceholderSecret)
	text = phonePattern.ReplaceAllString(text, PlaceholderPhone)
	return text
}

func placeholderFor(label string) string {
	switch label {
	case LabelEmail:
		return PlaceholderEmail
	case LabelPhone:
		return PlaceholderPhone
	case LabelIP:
		return PlaceholderIP
	case LabelPerson:
		return PlaceholderName
	default:
		return PlaceholderSecret
	}
}
