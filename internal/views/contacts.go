package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/contactsTUI/internal/models"
)

const (
	msgLoading        = "Loading contacts..."
	msgNoContacts     = "No contacts yet. Press a to add your first contact."
	msgNoMatches      = "No contacts found matching your search."
	msgLoadFailedHint = "Could not load contacts from the service. You can still add contacts."
)

// listStatus is what the list needs to know about the app to pick an empty state.
type listStatus struct {
	loading    bool
	loadFailed bool
	total      int
	spinner    string
}

// ContactsModel is the list screen: a search box above the filtered contacts
// and a cursor into them.
type ContactsModel struct {
	searchInput textinput.Model
	selected    int
	width       int
	height      int
}

func NewContactsModel() *ContactsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search contacts..."
	searchInput.CharLimit = 50
	searchInput.Prompt = ""

	return &ContactsModel{
		searchInput: searchInput,
	}
}

func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ContactsModel) Searching() bool {
	return m.searchInput.Focused()
}

func (m *ContactsModel) FocusSearch() tea.Cmd {
	return m.searchInput.Focus()
}

func (m *ContactsModel) BlurSearch() {
	m.searchInput.Blur()
}

func (m *ContactsModel) Query() string {
	return m.searchInput.Value()
}

func (m *ContactsModel) ClearQuery() {
	m.searchInput.SetValue("")
}

// UpdateSearch feeds msg to the search box.
func (m *ContactsModel) UpdateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *ContactsModel) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

func (m *ContactsModel) MoveDown(count int) {
	if m.selected < count-1 {
		m.selected++
	}
}

// Clamp keeps the cursor inside a list of count rows.
func (m *ContactsModel) Clamp(count int) {
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *ContactsModel) Selected(visible []models.Contact) (models.Contact, bool) {
	if m.selected < 0 || m.selected >= len(visible) {
		return models.Contact{}, false
	}
	return visible[m.selected], true
}

// SelectID moves the cursor onto the contact with id if it is visible.
func (m *ContactsModel) SelectID(visible []models.Contact, id int) {
	for i, contact := range visible {
		if contact.ID == id {
			m.selected = i
			return
		}
	}
}

func (m *ContactsModel) View(visible []models.Contact, status listStatus) string {
	var content strings.Builder

	title := "Contacts"
	if status.total > 0 {
		title += fmt.Sprintf(" (%d)", status.total)
	}
	content.WriteString(headerStyle.Width(m.width).Render(title))
	content.WriteString("\n")

	content.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Center,
		textStyle.Render("Search: "),
		searchBoxStyle.Render(m.searchInput.View()),
	))
	content.WriteString("\n")

	switch {
	case status.loading:
		content.WriteString(spinnerStyle.Padding(1, 2).Render(status.spinner + " " + msgLoading))
	case len(visible) == 0:
		content.WriteString(mutedStyle.Padding(1, 2).Render(m.emptyMessage(status)))
	default:
		content.WriteString(m.renderRows(visible))
	}

	return content.String()
}

func (m *ContactsModel) emptyMessage(status listStatus) string {
	switch {
	case strings.TrimSpace(m.Query()) != "" && status.total > 0:
		return msgNoMatches
	case status.loadFailed && status.total == 0:
		return msgLoadFailedHint
	default:
		return msgNoContacts
	}
}

func (m *ContactsModel) renderRows(visible []models.Contact) string {
	start, end := m.window(len(visible))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(visible[i], i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// window returns the slice of rows that fits on screen around the cursor.
func (m *ContactsModel) window(count int) (int, int) {
	// header, search box, help and notifications take about ten lines
	size := m.height - 10
	if size < 5 {
		size = 5
	}
	if count <= size {
		return 0, count
	}

	start := m.selected - size/2
	if start < 0 {
		start = 0
	}
	if start+size > count {
		start = count - size
	}
	return start, start + size
}

func (m *ContactsModel) renderRow(contact models.Contact, selected bool) string {
	email := contact.Email
	if !contact.HasEmail() {
		email = models.EmailNotAvailable
	}

	line := nameColumn.Render(truncate(contact.Name, 24)) +
		phoneColumn.Render(truncate(contact.Phone, 20)) +
		emailColumn.Render(truncate(email, 28))
	if !contact.IsRemote() {
		line += localBadge.Render("local")
	}

	if selected {
		return selectedRowStyle.Render("▶ " + line)
	}
	return rowStyle.Render("  " + line)
}
