package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/notify"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/store"
)

const (
	MsgContactAdded   = "Contact added successfully!"
	MsgContactUpdated = "Contact updated successfully!"
	MsgContactDeleted = "Contact deleted successfully!"
)

type ViewState int

const (
	ViewList ViewState = iota
	ViewCreate
	ViewEdit
	ViewDeleteConfirm
)

func (s ViewState) String() string {
	switch s {
	case ViewList:
		return "list"
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	case ViewDeleteConfirm:
		return "delete_confirm"
	default:
		return "unknown"
	}
}

// AppModel dispatches user actions onto the store controller. Network calls
// run in commands that only touch the contact service; their results come
// back as messages and are committed here, on the update loop.
type AppModel struct {
	ctrl    *store.Controller
	notices *notify.Center
	logger  *zap.Logger

	state  ViewState
	width  int
	height int

	list         *ContactsModel
	createForm   *ContactFormModel
	editForm     *ContactFormModel
	deleteTarget models.Contact

	listKeys    listKeyMap
	confirmKeys confirmKeyMap
	help        help.Model
	spinner     spinner.Model

	loading    bool
	loadFailed bool
	pending    bool
}

// ContactsLoadedMsg carries the result of fetching the contact set.
type ContactsLoadedMsg struct {
	Records []remote.ContactRecord
	Err     error
}

// ChangePushedMsg carries the contact service's answer to an update or delete.
type ChangePushedMsg struct {
	Change store.Change
	Err    error
}

func NewAppModel(ctrl *store.Controller, notices *notify.Center, logger *zap.Logger) *AppModel {
	if ctrl == nil {
		ctrl = store.NewController(nil, nil, logger)
	}
	if notices == nil {
		notices = notify.New(notify.DefaultErrorTTL, notify.DefaultSuccessTTL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return &AppModel{
		ctrl:        ctrl,
		notices:     notices,
		logger:      logger.Named("views"),
		state:       ViewList,
		list:        NewContactsModel(),
		createForm:  NewContactFormModel(FormCreate, ctrl),
		editForm:    NewContactFormModel(FormEdit, ctrl),
		listKeys:    newListKeyMap(),
		confirmKeys: newConfirmKeyMap(),
		help:        help.New(),
		spinner:     s,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return m.startLoad()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notify.DismissMsg:
		m.notices.Dismiss(msg)
		return m, nil

	case ContactsLoadedMsg:
		return m.handleLoaded(msg)

	case ChangePushedMsg:
		return m.handlePushed(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.state {
		case ViewList:
			return m.updateList(msg)
		case ViewCreate, ViewEdit:
			return m.updateForm(msg)
		case ViewDeleteConfirm:
			return m.updateDeleteConfirm(msg)
		}
	}

	// cursor blinks and other input housekeeping
	switch m.state {
	case ViewList:
		return m, m.list.UpdateSearch(msg)
	case ViewCreate, ViewEdit:
		_, cmd := m.activeForm().Update(msg)
		return m, cmd
	}
	return m, nil
}

// startLoad fetches the contact set. Notices from before the fetch no longer
// apply and are cleared.
func (m *AppModel) startLoad() tea.Cmd {
	m.loading = true
	m.notices.Clear()
	return tea.Batch(m.spinner.Tick, loadContacts(m.ctrl))
}

func (m *AppModel) handleLoaded(msg ContactsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if err := m.ctrl.ApplyLoad(msg.Records, msg.Err); err != nil {
		m.loadFailed = true
		m.logger.Debug("showing empty list after failed load")
		m.list.Clamp(len(m.ctrl.Visible()))
		return m, m.notices.Error(store.UserMessage(err))
	}

	m.loadFailed = false
	m.list.Clamp(len(m.ctrl.Visible()))
	return m, nil
}

func (m *AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.Searching() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.list.BlurSearch()
			return m, nil
		}
		cmd := m.list.UpdateSearch(msg)
		m.syncQuery()
		return m, cmd
	}

	visible := m.ctrl.Visible()

	switch {
	case key.Matches(msg, m.listKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.listKeys.Up):
		m.list.MoveUp()

	case key.Matches(msg, m.listKeys.Down):
		m.list.MoveDown(len(visible))

	case key.Matches(msg, m.listKeys.Search):
		return m, m.list.FocusSearch()

	case key.Matches(msg, m.listKeys.ClearSearch):
		if m.list.Query() != "" {
			m.list.ClearQuery()
			m.syncQuery()
		}

	case key.Matches(msg, m.listKeys.Add):
		m.state = ViewCreate
		return m, m.createForm.Focus()

	case key.Matches(msg, m.listKeys.Edit):
		contact, ok := m.list.Selected(visible)
		if !ok {
			return m, nil
		}
		m.editForm.Load(contact)
		m.state = ViewEdit
		return m, m.editForm.Focus()

	case key.Matches(msg, m.listKeys.Delete):
		contact, ok := m.list.Selected(visible)
		if !ok {
			return m, nil
		}
		m.deleteTarget = contact
		m.state = ViewDeleteConfirm

	case key.Matches(msg, m.listKeys.Reload):
		if !m.loading {
			return m, m.startLoad()
		}
	}

	return m, nil
}

// syncQuery pushes the search box text into the store when it changed.
func (m *AppModel) syncQuery() {
	query := m.list.Query()
	if query == m.ctrl.Store().Query() {
		return
	}
	visible := m.ctrl.Search(query)
	m.list.Clamp(len(visible))
}

func (m *AppModel) activeForm() *ContactFormModel {
	if m.state == ViewEdit {
		return m.editForm
	}
	return m.createForm
}

func (m *AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.activeForm()
	if m.pending {
		return m, nil
	}

	action, cmd := form.Update(msg)
	switch action {
	case FormCancel:
		form.ClearValidation()
		form.Blur()
		m.state = ViewList
		return m, nil
	case FormSubmit:
		if m.state == ViewEdit {
			return m.submitEdit()
		}
		return m.submitCreate()
	}
	return m, cmd
}

func (m *AppModel) submitCreate() (tea.Model, tea.Cmd) {
	contact, err := m.ctrl.Add(m.createForm.Input())
	if err != nil {
		return m, m.formError(m.createForm, err)
	}

	m.createForm.Reset()
	m.createForm.Blur()
	m.state = ViewList
	m.list.SelectID(m.ctrl.Visible(), contact.ID)
	return m, m.notices.Success(MsgContactAdded)
}

func (m *AppModel) submitEdit() (tea.Model, tea.Cmd) {
	ch, err := m.ctrl.PrepareUpdate(m.editForm.ContactID(), m.editForm.Input())
	if err != nil {
		if store.IsType(err, store.ErrNotFound) {
			m.editForm.ClearValidation()
			m.state = ViewList
			return m, m.notices.Error(store.UserMessage(err))
		}
		return m, m.formError(m.editForm, err)
	}

	if !ch.NeedsRemote() {
		return m.commit(ch)
	}

	m.pending = true
	m.editForm.SetSubmitting(true)
	return m, pushChange(m.ctrl, ch)
}

// formError shows a rejected submit. Validation failures also mark the
// offending fields.
func (m *AppModel) formError(form *ContactFormModel, err error) tea.Cmd {
	var storeErr *store.Error
	if errors.As(err, &storeErr) && storeErr.Type == store.ErrValidation && storeErr.Result != nil {
		form.ShowResult(*storeErr.Result)
	}
	return m.notices.Error(store.UserMessage(err))
}

func (m *AppModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.confirmKeys.Yes):
		ch, ok := m.ctrl.PrepareRemove(m.deleteTarget.ID)
		if !ok {
			m.state = ViewList
			return m, nil
		}
		if !ch.NeedsRemote() {
			return m.commit(ch)
		}
		m.pending = true
		return m, pushChange(m.ctrl, ch)

	case key.Matches(msg, m.confirmKeys.No):
		m.state = ViewList
	}

	return m, nil
}

func (m *AppModel) handlePushed(msg ChangePushedMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	m.editForm.SetSubmitting(false)

	if msg.Err != nil {
		m.logger.Debug("change not applied",
			zap.Stringer("kind", msg.Change.Kind),
			zap.Int("id", msg.Change.Contact.ID),
			zap.Stringer("view", m.state))
		// a failed delete returns to the list; a failed edit keeps the form open
		if msg.Change.Kind == store.ChangeRemove {
			m.state = ViewList
		}
		return m, m.notices.Error(store.UserMessage(msg.Err))
	}

	return m.commit(msg.Change)
}

func (m *AppModel) commit(ch store.Change) (tea.Model, tea.Cmd) {
	err := m.ctrl.Commit(ch)

	if ch.Kind == store.ChangeUpdate {
		m.editForm.ClearValidation()
		m.editForm.Blur()
	}
	m.state = ViewList
	visible := m.ctrl.Visible()
	m.list.Clamp(len(visible))

	if err != nil {
		return m, m.notices.Error(store.UserMessage(err))
	}

	if ch.Kind == store.ChangeRemove {
		return m, m.notices.Success(MsgContactDeleted)
	}
	m.list.SelectID(visible, ch.Contact.ID)
	return m, m.notices.Success(MsgContactUpdated)
}

func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	var keys help.KeyMap

	switch m.state {
	case ViewCreate, ViewEdit:
		form := m.activeForm()
		content = form.View()
		keys = form.keys
	case ViewDeleteConfirm:
		content = m.renderDeleteConfirm()
		keys = m.confirmKeys
	default:
		content = m.list.View(m.ctrl.Visible(), listStatus{
			loading:    m.loading,
			loadFailed: m.loadFailed,
			total:      m.ctrl.Store().Len(),
			spinner:    m.spinner.View(),
		})
		keys = m.listKeys
	}

	sections := []string{content}
	if notices := m.renderNotices(); notices != "" {
		sections = append(sections, notices)
	}
	sections = append(sections, mutedStyle.Padding(0, 1).Render(m.help.View(keys)))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(strings.Join(sections, "\n\n"))
}

func (m *AppModel) renderNotices() string {
	var notices []string
	if text := m.notices.Text(notify.LevelSuccess); text != "" {
		notices = append(notices, successBoxStyle.Render("✓ "+text))
	}
	if text := m.notices.Text(notify.LevelError); text != "" {
		notices = append(notices, errorBoxStyle.Render("✗ "+text))
	}
	return strings.Join(notices, "\n")
}

func (m *AppModel) renderDeleteConfirm() string {
	var content strings.Builder

	content.WriteString(headerStyle.Width(m.width).Render("Delete Contact"))
	content.WriteString("\n\n")

	content.WriteString(warningStyle.Render(
		fmt.Sprintf("Are you sure you want to delete the contact '%s'?", m.deleteTarget.Name)))
	content.WriteString("\n\n")

	info := fmt.Sprintf("Phone: %s\nEmail: %s", m.deleteTarget.Phone, m.deleteTarget.Email)
	content.WriteString(fieldStyle.Render(info))

	if m.pending {
		content.WriteString("\n\n")
		content.WriteString(fieldStyle.Render(m.spinner.View() + " Deleting..."))
	}

	return content.String()
}

func loadContacts(ctrl *store.Controller) tea.Cmd {
	return func() tea.Msg {
		records, err := ctrl.Fetch(context.Background())
		return ContactsLoadedMsg{Records: records, Err: err}
	}
}

func pushChange(ctrl *store.Controller, ch store.Change) tea.Cmd {
	return func() tea.Msg {
		return ChangePushedMsg{Change: ch, Err: ctrl.Push(context.Background(), ch)}
	}
}
