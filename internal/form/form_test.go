package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmhq/urm/internal/schema"
	"github.com/urmhq/urm/internal/store"
)

func userSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.LoadUser()
	require.NoError(t, err)
	return s
}

func TestResetFromRecordReadsBackExactly(t *testing.T) {
	f := New(userSchema(t))
	rec := store.Record{
		"id":        "1",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@x.com",
		"phone":     "1234567890",
	}
	f.Reset(rec)

	for _, name := range f.Schema.FieldNames() {
		assert.Equal(t, rec.Field(name), f.Values[name], name)
	}
	assert.NotContains(t, f.Values, "id")
}

func TestResetNilClearsValues(t *testing.T) {
	f := New(userSchema(t))
	f.SetField("firstName", "Ada")
	f.Reset(nil)
	assert.Equal(t, "", f.Values["firstName"])
	assert.Empty(t, f.Touched)
	assert.Empty(t, f.Errors)
}

func TestSwitchingRecordsLeavesNoStaleValues(t *testing.T) {
	f := New(userSchema(t))
	f.Reset(store.Record{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@x.com", "phone": "1234567890"})
	f.Reset(store.Record{"firstName": "Bob"})

	assert.Equal(t, "Bob", f.Values["firstName"])
	assert.Equal(t, "", f.Values["lastName"])
	assert.Equal(t, "", f.Values["email"])
}

func TestValidateAllBlocksOnRequired(t *testing.T) {
	f := New(userSchema(t))
	f.SetField("firstName", "Ada")
	// lastName, email, phone left empty

	ok := f.ValidateAll()
	assert.False(t, ok)
	assert.Equal(t, "Last name is required", f.Error("lastName"))
	assert.Equal(t, "Email is required", f.Error("email"))
	assert.Equal(t, "Phone number is required", f.Error("phone"))
	assert.Empty(t, f.Error("firstName"))
}

func TestValidateAllFirstFailingRuleMessage(t *testing.T) {
	f := New(userSchema(t))
	f.SetField("firstName", "A")
	f.SetField("lastName", "Lovelace")
	f.SetField("email", "nope")
	f.SetField("phone", "123")

	ok := f.ValidateAll()
	assert.False(t, ok)
	assert.Equal(t, "Minimum 2 characters", f.Error("firstName"))
	assert.Equal(t, "Please enter a valid email", f.Error("email"))
	assert.Equal(t, "Phone number must be exactly 10 digits", f.Error("phone"))
}

func TestValidFormSubmission(t *testing.T) {
	f := New(userSchema(t))
	f.SetField("firstName", "Bob")
	f.SetField("lastName", "Lee")
	f.SetField("email", "bob@x.com")
	f.SetField("phone", "9998887777")

	require.True(t, f.ValidateAll())
	sub := f.Submission()
	assert.Equal(t, map[string]any{
		"firstName": "Bob",
		"lastName":  "Lee",
		"email":     "bob@x.com",
		"phone":     "9998887777",
	}, sub)
	assert.NotContains(t, sub, "id")
}

func TestSetFieldIgnoresUnknownNames(t *testing.T) {
	f := New(userSchema(t))
	f.SetField("role", "admin")
	assert.NotContains(t, f.Values, "role")
}

func TestSetFieldClearsStaleError(t *testing.T) {
	f := New(userSchema(t))
	f.ValidateAll()
	require.NotEmpty(t, f.Error("firstName"))

	f.SetField("firstName", "Ada")
	assert.Empty(t, f.Error("firstName"))
}
