// Package askguard is the policy layer in front of the question answerer.
// It redacts PII, detects credit myths, classifies and risk-scans the
// question, resolves answer depth, and decides whether to block before a
// single token reaches the model.
package askguard

import "regexp"

// Redaction tokens. Fixed strings, so logs and audits are stable.
const (
	TokenEmail = "[EMAIL]"
	TokenPhone = "[PHONE]"
	TokenSSN   = "[SSN]"
	TokenCard  = "[CARD]"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Card numbers first: a 16 digit PAN would otherwise partially match
	// the phone pattern.
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]?){13,16}\d\b`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}\b`)
)

// Redact replaces PII in free text with fixed tokens. The redacted form
// is what gets logged, cached, and sent to the model.
func Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, TokenEmail)
	text = cardPattern.ReplaceAllString(text, TokenCard)
	text = ssnPattern.ReplaceAllString(text, TokenSSN)
	text = phonePattern.ReplaceAllString(text, TokenPhone)
	return text
}
