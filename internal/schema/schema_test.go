package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUser(t *testing.T) {
	s, err := LoadUser()
	require.NoError(t, err)

	assert.Equal(t, []string{"firstName", "lastName", "email", "phone"}, s.FieldNames())

	email, ok := s.Lookup("email")
	require.True(t, ok)
	assert.Equal(t, TypeEmail, email.Type)
	assert.Equal(t, "Email", email.Label)
	assert.Equal(t, "Enter email address", email.Placeholder)
	require.Len(t, email.Rules, 2)
	assert.Equal(t, RuleRequired, email.Rules[0].Kind)
	assert.Equal(t, RuleEmail, email.Rules[1].Kind)
}

func TestLoadUserIsStable(t *testing.T) {
	a := MustLoadUser()
	b := MustLoadUser()
	assert.Equal(t, a.FieldNames(), b.FieldNames())
}

func TestFieldValidateFirstFailureWins(t *testing.T) {
	s := MustLoadUser()
	first, ok := s.Lookup("firstName")
	require.True(t, ok)

	msg, ok := first.Validate("")
	assert.False(t, ok)
	assert.Equal(t, "First name is required", msg)

	msg, ok = first.Validate("A")
	assert.False(t, ok)
	assert.Equal(t, "Minimum 2 characters", msg)

	_, ok = first.Validate("Ada")
	assert.True(t, ok)
}

func TestPhoneValidation(t *testing.T) {
	s := MustLoadUser()
	phone, ok := s.Lookup("phone")
	require.True(t, ok)

	tests := []struct {
		name    string
		value   string
		ok      bool
		message string
	}{
		{"empty", "", false, "Phone number is required"},
		{"letters", "12345abcde", false, "Please enter numbers only"},
		{"too short", "123456789", false, "Phone number must be exactly 10 digits"},
		{"too long", "12345678901", false, "Phone number must be exactly 10 digits"},
		{"exactly ten digits", "1234567890", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := phone.Validate(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestEmailRule(t *testing.T) {
	s := MustLoadUser()
	email, _ := s.Lookup("email")

	_, ok := email.Validate("ada@x.com")
	assert.True(t, ok)

	msg, ok := email.Validate("not-an-email")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid email", msg)
}

func TestWidgetFor(t *testing.T) {
	tests := []struct {
		ft     FieldType
		widget Widget
	}{
		{TypeText, WidgetTextInput},
		{TypeNumber, WidgetNumberInput},
		{TypeEmail, WidgetEmailInput},
		{TypeDate, WidgetDateInput},
		{TypeTextarea, WidgetTextarea},
		{FieldType(99), WidgetTextInput}, // unknown falls back to text
	}
	for _, tt := range tests {
		assert.Equal(t, tt.widget, WidgetFor(tt.ft), tt.ft.String())
	}
}

func TestEmptySchemaDegrades(t *testing.T) {
	s, err := parse([]byte(`fields: []`))
	require.NoError(t, err)
	assert.Empty(t, s.Fields)
	assert.Empty(t, s.FieldNames())
}
