package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	testCases := []struct {
		name      string
		draft     Draft
		wantField Field
		wantMsg   string
	}{
		{
			name:      "empty name",
			draft:     Draft{Name: "", Email: "ada@example.com", Message: "hello there friend"},
			wantField: FieldName,
			wantMsg:   MsgNameRequired,
		},
		{
			name:      "whitespace name",
			draft:     Draft{Name: "   ", Email: "", Message: ""},
			wantField: FieldName,
			wantMsg:   MsgNameRequired,
		},
		{
			name:      "name set, email empty",
			draft:     Draft{Name: "Ada", Email: "", Message: "hello there friend"},
			wantField: FieldEmail,
			wantMsg:   MsgEmailRequired,
		},
		{
			name:      "email only whitespace",
			draft:     Draft{Name: "Ada", Email: " \t", Message: "short"},
			wantField: FieldEmail,
			wantMsg:   MsgEmailRequired,
		},
		{
			name:      "email without dot in domain",
			draft:     Draft{Name: "Ada", Email: "foo@bar", Message: "hello there friend"},
			wantField: FieldEmail,
			wantMsg:   MsgEmailInvalid,
		},
		{
			name:      "email with two at signs",
			draft:     Draft{Name: "Ada", Email: "a@b@c.com", Message: "hello there friend"},
			wantField: FieldEmail,
			wantMsg:   MsgEmailInvalid,
		},
		{
			name:      "email with inner space",
			draft:     Draft{Name: "Ada", Email: "a b@c.com", Message: "hello there friend"},
			wantField: FieldEmail,
			wantMsg:   MsgEmailInvalid,
		},
		{
			name:      "message of nine characters",
			draft:     Draft{Name: "Ada", Email: "ada@example.com", Message: "123456789"},
			wantField: FieldMessage,
			wantMsg:   MsgMessageTooShort,
		},
		{
			name:      "message padded to ten with spaces",
			draft:     Draft{Name: "Ada", Email: "ada@example.com", Message: "  123456789  "},
			wantField: FieldMessage,
			wantMsg:   MsgMessageTooShort,
		},
		{
			name:      "empty message",
			draft:     Draft{Name: "Ada", Email: "ada@example.com"},
			wantField: FieldMessage,
			wantMsg:   MsgMessageTooShort,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestDraftValidatePasses(t *testing.T) {
	testCases := []struct {
		name  string
		draft Draft
	}{
		{name: "message of exactly ten characters", draft: Draft{Name: "Ada", Email: "ada@example.com", Message: "1234567890"}},
		{name: "multibyte message", draft: Draft{Name: "Ada", Email: "ada@example.com", Message: "héllo wörld"}},
		{name: "subdomain email", draft: Draft{Name: "Ada", Email: "ada@mail.example.co.uk", Message: strings.Repeat("x", 200)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, tc.draft.Validate())
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.c"))
	assert.True(t, ValidEmail("first.last+tag@example.com"))
	assert.False(t, ValidEmail("foo@bar"))
	assert.False(t, ValidEmail("@bar.com"))
	assert.False(t, ValidEmail("foo@.com"))
	assert.False(t, ValidEmail("foo bar@baz.com"))
	assert.False(t, ValidEmail(" foo@bar.com"))
}

func TestValidEmailRejectsUnicodeWhitespace(t *testing.T) {
	testCases := []struct {
		name  string
		email string
	}{
		{name: "vertical tab", email: "a\vb@c.de"},
		{name: "no-break space", email: "a\u00a0b@c.de"},
		{name: "em space in domain", email: "ab@c.d\u2003e"},
		{name: "byte order mark", email: "\ufeffab@c.de"},
		{name: "line separator", email: "ab@c\u2028.de"},
		{name: "ogham space mark", email: "ab\u1680@c.de"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, ValidEmail(tc.email))
		})
	}
	assert.True(t, ValidEmail("zoë@exämple.de"))
}

func TestDraftIsZero(t *testing.T) {
	assert.True(t, Draft{}.IsZero())
	assert.False(t, Draft{Name: "x"}.IsZero())
}
