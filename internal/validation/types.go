package validation

// FieldKind names a validated form field
type FieldKind string

const (
	FieldName  FieldKind = "name"
	FieldPhone FieldKind = "phone"
	FieldEmail FieldKind = "email"
)

// Fields lists the form fields in display order
var Fields = []FieldKind{FieldName, FieldPhone, FieldEmail}

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorNone ValidationErrorCode = iota
	ErrorNameRequired
	ErrorInvalidName
	ErrorPhoneRequired
	ErrorInvalidPhone
	ErrorInvalidEmail
	ErrorUnknownField
)

// FieldResult is the outcome of validating one field's current value
type FieldResult struct {
	Field   FieldKind
	Valid   bool
	Code    ValidationErrorCode
	Message string
}

// FormInput holds the raw values of an add or edit form
type FormInput struct {
	Name  string
	Phone string
	Email string
}

// Value returns the raw value for the given field
func (in FormInput) Value(field FieldKind) string {
	switch field {
	case FieldName:
		return in.Name
	case FieldPhone:
		return in.Phone
	case FieldEmail:
		return in.Email
	default:
		return ""
	}
}

// ValidationResult represents the result of form validation
type ValidationResult struct {
	IsValid bool
	Fields  map[FieldKind]FieldResult
	Summary string
}

// Errors returns the failing field results in display order
func (r ValidationResult) Errors() []FieldResult {
	var out []FieldResult
	for _, field := range Fields {
		if res, ok := r.Fields[field]; ok && !res.Valid {
			out = append(out, res)
		}
	}
	return out
}

// Message returns the failure message for a field, or "" when it passed
func (r ValidationResult) Message(field FieldKind) string {
	if res, ok := r.Fields[field]; ok && !res.Valid {
		return res.Message
	}
	return ""
}
