package redact

import (
	"fmt"
	"regexp"

	prose "github.com/jdkato/prose/v2"
)

// Entity labels produced by the recognition pass.
const (
	LabelEmail  = "EMAIL_ADDRESS"
	LabelPhone  = "PHONE_NUMBER"
	LabelIP     = "IP_ADDRESS"
	LabelPerson = "PERSON"
)

// Entity is one detected span. Replacement is by text value, not offset:
// the statistical model reports entity text without positions.
type Entity struct {
	Text  string
	Label string
}

// Recognizer detects PII entities in already-regex-redacted text.
type Recognizer interface {
	Recognize(text string) ([]Entity, error)
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	ipv4Pattern  = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// proseRecognizer combines lexical detection of email addresses, IPv4
// addresses, and residual phone numbers with the prose statistical model
// for person names. It stands in for the NER engine of the original
// pipeline; anything it misses is an accepted false negative.
type proseRecognizer struct{}

func NewProseRecognizer() Recognizer {
	return proseRecognizer{}
}

func (proseRecognizer) Recognize(text string) ([]Entity, error) {
	var entities []Entity

	for _, match := range emailPattern.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Label: LabelEmail})
	}
	for _, match := range ipv4Pattern.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Label: LabelIP})
	}
	for _, match := range phonePattern.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Label: LabelPhone})
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			entities = append(entities, Entity{Text: ent.Text, Label: LabelPerson})
		}
	}

	return entities, nil
}
