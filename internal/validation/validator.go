package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MsgNameRequired  = "Name is required"
	MsgInvalidName   = "Name must contain only letters and spaces (2-50 characters)"
	MsgPhoneRequired = "Phone number is required"
	MsgInvalidPhone  = "Please enter a valid phone number (e.g., 123-456-7890, (123) 456-7890, or +1-123-456-7890)"
	MsgInvalidEmail  = "Please enter a valid email address (e.g., user@example.com)"

	// MsgSummary is shown once, above the form, when any field fails on submit
	MsgSummary = "Please fix the validation errors before submitting."
)

// whitespace is the full Unicode whitespace set used inside the name and phone
// classes. RE2's \s only covers the ASCII part of it.
const whitespace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z` + whitespace + `]{2,50}$`)
	phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-` + whitespace + `\.]?[(]?[0-9]{1,4}[)]?[-` + whitespace + `\.]?[0-9]{1,5}[-` + whitespace + `\.]?[0-9]{1,4}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

// ValidateField checks a single field. The value is trimmed first, so the
// result depends only on the trimmed string.
func ValidateField(field FieldKind, value string) FieldResult {
	value = strings.TrimFunc(value, isWhitespace)

	switch field {
	case FieldName:
		if value == "" {
			return invalid(field, ErrorNameRequired, MsgNameRequired)
		}
		if !namePattern.MatchString(value) {
			return invalid(field, ErrorInvalidName, MsgInvalidName)
		}
	case FieldPhone:
		if value == "" {
			return invalid(field, ErrorPhoneRequired, MsgPhoneRequired)
		}
		if !phonePattern.MatchString(value) {
			return invalid(field, ErrorInvalidPhone, MsgInvalidPhone)
		}
	case FieldEmail:
		// optional
		if value != "" && !emailPattern.MatchString(value) {
			return invalid(field, ErrorInvalidEmail, MsgInvalidEmail)
		}
	default:
		return invalid(field, ErrorUnknownField, fmt.Sprintf("unknown field: %s", field))
	}

	return FieldResult{Field: field, Valid: true}
}

// ValidateForm validates every field. The form is valid only if all fields are.
func ValidateForm(in FormInput) ValidationResult {
	result := ValidationResult{
		IsValid: true,
		Fields:  make(map[FieldKind]FieldResult, len(Fields)),
	}

	for _, field := range Fields {
		res := ValidateField(field, in.Value(field))
		result.Fields[field] = res
		if !res.Valid {
			result.IsValid = false
		}
	}

	if !result.IsValid {
		result.Summary = MsgSummary
	}
	return result
}

func invalid(field FieldKind, code ValidationErrorCode, message string) FieldResult {
	return FieldResult{
		Field:   field,
		Valid:   false,
		Code:    code,
		Message: message,
	}
}
