package contact

import (
	"net/url"
	"strings"
)

// Browsers decode mailto query values the way encodeURIComponent encodes
// them, so spaces become %20 and the sub-delims below stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Subject returns the mail subject for a draft.
func Subject(d Draft) string {
	return "Portfolio contact from " + d.Name
}

// Body returns the mail body for a draft.
func Body(d Draft) string {
	return d.Message + "\n\nFrom: " + d.Email
}

// MailtoURI builds the mail-composition link handed to the visitor's mail
// client.
func MailtoURI(address string, d Draft) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(address)
	b.WriteString("?subject=")
	b.WriteString(encodeComponent(Subject(d)))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(Body(d)))
	return b.String()
}
