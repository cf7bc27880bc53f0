// Package contact holds the contact form: the visitor's draft, its
// validation rules, and the submission flow with its mail-client fallback.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinMessageLength is the minimum trimmed message length, in characters.
const MinMessageLength = 10

// Field names a contact form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Validation messages, in the order the rules are checked.
const (
	MsgNameRequired    = "Please enter your name"
	MsgEmailRequired   = "Please enter your email"
	MsgEmailInvalid    = "Please enter a valid email"
	MsgMessageTooShort = "Message must be at least 10 characters"
)

// emailPattern mirrors the browser rule: non-space, "@", non-space, ".",
// non-space. RE2's \s is ASCII only, so the Unicode space separators,
// vertical tab and BOM are listed explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Draft is what the visitor has typed into the contact form. The JSON shape is
// the body posted to the delivery endpoint.
type Draft struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// ValidationError reports the first rule a draft breaks.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the rules in order and returns the first failure.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: FieldName, Message: MsgNameRequired}
	}
	if strings.TrimSpace(d.Email) == "" {
		return &ValidationError{Field: FieldEmail, Message: MsgEmailRequired}
	}
	if !ValidEmail(d.Email) {
		return &ValidationError{Field: FieldEmail, Message: MsgEmailInvalid}
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Message)) < MinMessageLength {
		return &ValidationError{Field: FieldMessage, Message: MsgMessageTooShort}
	}
	return nil
}

// ValidEmail reports whether s looks like local@domain.tld: exactly one @,
// no whitespace, and a dot in the domain part.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}
