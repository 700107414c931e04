package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		value   string
		valid   bool
		code    ValidationErrorCode
		message string
	}{
		{"Ann Lee", true, ErrorNone, ""},
		{"  Ann Lee  ", true, ErrorNone, ""},
		{"Al", true, ErrorNone, ""},
		{"", false, ErrorNameRequired, MsgNameRequired},
		{"   ", false, ErrorNameRequired, MsgNameRequired},
		{"A1", false, ErrorInvalidName, MsgInvalidName},
		{"A", false, ErrorInvalidName, MsgInvalidName},
		{"O'Brien", false, ErrorInvalidName, MsgInvalidName},
		{strings.Repeat("a", 50), true, ErrorNone, ""},
		{strings.Repeat("a", 51), false, ErrorInvalidName, MsgInvalidName},
	}

	for _, tt := range tests {
		result := ValidateField(FieldName, tt.value)
		assert.Equal(t, tt.valid, result.Valid, "name %q", tt.value)
		assert.Equal(t, tt.code, result.Code, "name %q", tt.value)
		assert.Equal(t, tt.message, result.Message, "name %q", tt.value)
	}
}

func TestValidateNameUnicodeWhitespace(t *testing.T) {
	valid := []string{
		"Ann\u00A0Lee",
		"Ann\u3000Lee",
		"Ann\u2009Lee",
		"Ann\tLee",
		"\uFEFFAnn Lee\u00A0",
		"\u202F\u202FAl",
	}
	for _, value := range valid {
		assert.True(t, ValidateField(FieldName, value).Valid, "name %q", value)
	}

	// NEL and zero width space are not whitespace here
	assert.False(t, ValidateField(FieldName, "Ann\u0085Lee").Valid)
	assert.False(t, ValidateField(FieldName, "Ann\u200BLee").Valid)

	result := ValidateField(FieldName, "\u00A0\u3000")
	assert.Equal(t, ErrorNameRequired, result.Code)
}

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"555-0100",
		"123-456-7890",
		"(123) 456-7890",
		"+1-123-456-7890",
		"123.456.7890",
		"1234",
		" 555 0100 ",
		"555\u00A00100",
	}
	for _, value := range valid {
		result := ValidateField(FieldPhone, value)
		assert.True(t, result.Valid, "phone %q: %s", value, result.Message)
	}

	invalid := []string{
		"12",
		"phone",
		"555-0100 ext1",
		"555_0100",
		"1234567890123456789",
	}
	for _, value := range invalid {
		result := ValidateField(FieldPhone, value)
		assert.False(t, result.Valid, "phone %q", value)
		assert.Equal(t, ErrorInvalidPhone, result.Code, "phone %q", value)
	}

	result := ValidateField(FieldPhone, "")
	assert.False(t, result.Valid)
	assert.Equal(t, MsgPhoneRequired, result.Message)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"", true},
		{"   ", true},
		{"ann@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"ann@x", false},
		{"ann.x.com", false},
		{"ann@x.c", false},
		{"ann @x.com", false},
	}

	for _, tt := range tests {
		result := ValidateField(FieldEmail, tt.value)
		assert.Equal(t, tt.valid, result.Valid, "email %q", tt.value)
		if !result.Valid {
			assert.Equal(t, MsgInvalidEmail, result.Message, "email %q", tt.value)
		}
	}
}

func TestValidateUnknownField(t *testing.T) {
	result := ValidateField(FieldKind("address"), "anything")

	assert.False(t, result.Valid)
	assert.Equal(t, ErrorUnknownField, result.Code)
}

func TestValidateForm(t *testing.T) {
	result := ValidateForm(FormInput{Name: "Ann Lee", Phone: "555-0100"})
	require.True(t, result.IsValid, "errors: %+v", result.Errors())
	assert.Empty(t, result.Summary)

	result = ValidateForm(FormInput{Name: "A1", Phone: "", Email: "bad"})
	require.False(t, result.IsValid)
	assert.Equal(t, MsgSummary, result.Summary)

	errs := result.Errors()
	require.Len(t, errs, 3)
	for i, field := range Fields {
		assert.Equal(t, field, errs[i].Field)
	}
	assert.Equal(t, MsgPhoneRequired, result.Message(FieldPhone))
}

func TestValidateFormIsAndOfFields(t *testing.T) {
	result := ValidateForm(FormInput{Name: "Ann Lee", Phone: "555-0100", Email: "nope"})

	assert.False(t, result.IsValid)
	assert.Empty(t, result.Message(FieldName))
	assert.Empty(t, result.Message(FieldPhone))
}
