package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org", "x@y.z"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@b.co", "a@.", "a@b.c d"}

	for _, v := range valid {
		assert.Truef(t, Email(v), "expected %q valid", v)
	}
	for _, v := range invalid {
		assert.Falsef(t, Email(v), "expected %q invalid", v)
	}
}

func TestPhone_StripsSeparators(t *testing.T) {
	assert.True(t, Phone("+1 (555) 123-4567"))
	assert.True(t, Phone("5551234567"))
	assert.False(t, Phone("0555123"))
	assert.False(t, Phone("+1-555-abc"))
	assert.False(t, Phone("12345678901234567"))
}

func TestPassword_CountsRunes(t *testing.T) {
	assert.False(t, Password("1234567"))
	assert.True(t, Password("12345678"))
	assert.True(t, Password("ñññññññç"))
}

func TestSchema_ValidateFreshMap(t *testing.T) {
	s := Schema{
		Rules: []Rule{
			{Field: "email", Label: "Email", Required: true, Check: Email, Message: MsgEmail},
			{Field: "password", Label: "Password", Required: true, Check: Password, Message: MsgPassword},
			{Field: "confirm", Required: true, RequiredMessage: MsgConfirmRequired},
		},
		Matches: []Match{{Field: "confirm", Other: "password", Message: MsgPasswordsDiffer}},
		Gates:   []Gate{{Field: "terms", Message: MsgTerms}},
	}

	errs := s.Validate(Values{"email": "nope", "password": "longenough", "confirm": "longenougH"})
	assert.Equal(t, MsgEmail, errs.Get("email"))
	assert.Empty(t, errs.Get("password"))
	assert.Equal(t, MsgPasswordsDiffer, errs.Get("confirm"))
	assert.Equal(t, MsgTerms, errs.Get("terms"))
	assert.Equal(t, []string{"confirm", "email", "terms"}, errs.Failed())

	field, msg := errs.First(s.Fields())
	assert.Equal(t, "email", field)
	assert.Equal(t, MsgEmail, msg)

	ok := s.Validate(Values{"email": "a@b.co", "password": "longenough", "confirm": "longenough", "terms": "true"})
	assert.True(t, ok.Valid())
	assert.Len(t, ok, 4)
}

func TestRequiredMessageFallsBackToField(t *testing.T) {
	r := Rule{Field: "species", Required: true}
	assert.Equal(t, "species is required", r.requiredMessage())
}

func TestErrors_CloneIsIndependent(t *testing.T) {
	e := NewErrors("a")
	c := e.Clone()
	c.Set("a", "boom")
	assert.True(t, e.Valid())
	assert.False(t, c.Valid())
}

func TestSchema_CheckWrapsFirstError(t *testing.T) {
	s := Schema{Rules: []Rule{
		{Field: "name", Label: "Name", Required: true},
		{Field: "email", Label: "Email", Required: true, Check: Email, Message: MsgEmail},
	}}

	assert.NoError(t, s.Check(Values{"name": "x", "email": "a@b.co"}))

	err := s.Check(Values{"email": "bad"})
	var ve *Error
	if assert.ErrorAs(t, err, &ve) {
		assert.Equal(t, "Name is required", ve.Error())
		assert.Equal(t, MsgEmail, ve.Fields.Get("email"))
	}
}
