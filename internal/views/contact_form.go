package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/validation"
)

type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

// FormAction tells the app what a key press in the form asked for.
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
)

// FieldValidator checks one field as the user types.
type FieldValidator interface {
	ValidateField(field validation.FieldKind, value string) validation.FieldResult
}

type ContactFormModel struct {
	mode      FormMode
	contactID int
	validator FieldValidator
	keys      formKeyMap

	inputs  []textinput.Model
	focus   int
	results map[validation.FieldKind]validation.FieldResult
	summary string

	submitting bool
}

type formField struct {
	label       string
	placeholder string
	charLimit   int
}

var formFields = map[validation.FieldKind]formField{
	validation.FieldName:  {label: "Name: *Required", placeholder: "Enter contact name", charLimit: 60},
	validation.FieldPhone: {label: "Phone: *Required", placeholder: "e.g. 555-0100", charLimit: 30},
	validation.FieldEmail: {label: "Email:", placeholder: "Optional email address", charLimit: 100},
}

func NewContactFormModel(mode FormMode, validator FieldValidator) *ContactFormModel {
	f := &ContactFormModel{
		mode:      mode,
		validator: validator,
		keys:      newFormKeyMap(),
		results:   make(map[validation.FieldKind]validation.FieldResult),
	}

	for _, field := range validation.Fields {
		def := formFields[field]
		input := textinput.New()
		input.Placeholder = def.placeholder
		input.CharLimit = def.charLimit
		input.PromptStyle = activeLabelStyle
		input.TextStyle = textStyle
		f.inputs = append(f.inputs, input)
	}

	return f
}

func (f *ContactFormModel) ContactID() int {
	return f.contactID
}

// Load fills the edit form from a contact. A missing email shows as blank.
func (f *ContactFormModel) Load(contact models.Contact) {
	f.contactID = contact.ID
	f.inputs[0].SetValue(contact.Name)
	f.inputs[1].SetValue(contact.Phone)
	f.inputs[2].SetValue(contact.EditableEmail())
	f.ClearValidation()
	f.focus = 0
}

func (f *ContactFormModel) Input() validation.FormInput {
	return validation.FormInput{
		Name:  f.inputs[0].Value(),
		Phone: f.inputs[1].Value(),
		Email: f.inputs[2].Value(),
	}
}

// Reset empties every field and its validation state.
func (f *ContactFormModel) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.contactID = 0
	f.focus = 0
	f.ClearValidation()
}

func (f *ContactFormModel) ClearValidation() {
	f.results = make(map[validation.FieldKind]validation.FieldResult)
	f.summary = ""
	f.submitting = false
}

// ShowResult displays the per-field messages and the summary from a failed submit.
func (f *ContactFormModel) ShowResult(result validation.ValidationResult) {
	for field, res := range result.Fields {
		f.results[field] = res
	}
	f.summary = result.Summary
}

func (f *ContactFormModel) FieldError(field validation.FieldKind) string {
	if res, ok := f.results[field]; ok && !res.Valid {
		return res.Message
	}
	return ""
}

func (f *ContactFormModel) Summary() string {
	return f.summary
}

func (f *ContactFormModel) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

func (f *ContactFormModel) onSubmitButton() bool {
	return f.focus == len(f.inputs)
}

// Focus moves the cursor to the current field.
func (f *ContactFormModel) Focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if f.onSubmitButton() {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

func (f *ContactFormModel) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *ContactFormModel) next() tea.Cmd {
	if f.focus < len(f.inputs) {
		f.focus++
	}
	return f.Focus()
}

func (f *ContactFormModel) prev() tea.Cmd {
	if f.focus > 0 {
		f.focus--
	}
	return f.Focus()
}

func (f *ContactFormModel) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.onSubmitButton() {
			return FormNone, nil
		}
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return FormNone, cmd
	}

	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return FormCancel, nil
	case key.Matches(keyMsg, f.keys.Submit):
		return FormSubmit, nil
	case key.Matches(keyMsg, f.keys.Next):
		return FormNone, f.next()
	case key.Matches(keyMsg, f.keys.Prev):
		return FormNone, f.prev()
	case key.Matches(keyMsg, f.keys.Enter):
		if f.onSubmitButton() {
			return FormSubmit, nil
		}
		return FormNone, f.next()
	}

	if f.onSubmitButton() {
		return FormNone, nil
	}

	field := validation.Fields[f.focus]
	before := f.inputs[f.focus].Value()

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(keyMsg)

	if value := f.inputs[f.focus].Value(); value != before {
		f.results[field] = f.validateField(field, value)
		f.summary = ""
	}

	return FormNone, cmd
}

func (f *ContactFormModel) validateField(field validation.FieldKind, value string) validation.FieldResult {
	if f.validator == nil {
		return validation.ValidateField(field, value)
	}
	return f.validator.ValidateField(field, value)
}

func (f *ContactFormModel) View() string {
	var content strings.Builder

	title := "Add Contact"
	button := "Add Contact"
	if f.mode == FormEdit {
		title = "Edit Contact"
		button = "Update Contact"
	}

	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n\n")

	if f.summary != "" {
		content.WriteString(errorBoxStyle.Render("✗ " + f.summary))
		content.WriteString("\n\n")
	}

	for i, field := range validation.Fields {
		label := formFields[field].label
		if i == f.focus {
			label = activeLabelStyle.Render("▶ " + label)
		} else {
			label = textStyle.Render("  " + label)
		}
		content.WriteString(fieldStyle.Render(label))
		content.WriteString("\n")
		content.WriteString(fieldStyle.Render(f.inputs[i].View()))
		if msg := f.FieldError(field); msg != "" {
			content.WriteString("\n")
			content.WriteString(fieldErrorStyle.Render("✗ " + msg))
		}
		content.WriteString("\n\n")
	}

	if f.submitting {
		button = "Saving..."
	}
	if f.onSubmitButton() {
		button = "▶ " + button
	}
	style := buttonStyle
	if f.submitting {
		style = disabledButtonStyle
	}
	content.WriteString(fieldStyle.Render(style.Render(button)))

	return content.String()
}
