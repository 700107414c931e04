package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/notify"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/store"
	"rhystmorgan/contactsTUI/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSource struct {
	mu         sync.Mutex
	records    []remote.ContactRecord
	replaceErr error
	deleteErr  error
	replaced   []remote.ContactRecord
	deleted    []int
}

func (f *fakeSource) ListContacts(ctx context.Context) ([]remote.ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.ContactRecord(nil), f.records...), nil
}

func (f *fakeSource) ReplaceContact(ctx context.Context, record remote.ContactRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, record)
	return f.replaceErr
}

func (f *fakeSource) DeleteContact(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func newTestApp(t *testing.T) (*AppModel, *fakeSource) {
	t.Helper()
	source := &fakeSource{records: []remote.ContactRecord{
		{ID: 1, Name: "Ann Lee", Phone: "555-0100 ext1", Email: "ann@x.com"},
		{ID: 2, Name: "Bob Stone", Phone: "777-0200", Email: "bob@x.com"},
	}}
	logger := zaptest.NewLogger(t)
	ctrl := store.NewController(store.New(store.DefaultInitialID), source, logger)
	app := NewAppModel(ctrl, notify.New(time.Hour, time.Hour), logger)

	send(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	// run the fetch the way the program would, without the spinner
	send(app, loadContacts(ctrl)())
	return app, source
}

func send(m *AppModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func press(m *AppModel, keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = send(m, tea.KeyMsg{Type: k})
	}
	return cmd
}

func typeText(m *AppModel, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		cmd = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return cmd
}

func TestInitStartsLoading(t *testing.T) {
	app := NewAppModel(nil, nil, nil)

	cmd := app.Init()
	assert.NotNil(t, cmd)
	assert.True(t, app.loading)
}

func TestLoadPopulatesList(t *testing.T) {
	app, _ := newTestApp(t)

	assert.False(t, app.loading)
	require.Len(t, app.ctrl.Visible(), 2)
	assert.Equal(t, "555-0100", app.ctrl.Visible()[0].Phone)
	assert.Contains(t, app.View(), "Ann Lee")
}

func TestLoadFailureShowsErrorAndHint(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, ContactsLoadedMsg{Err: remote.NewStatusError("list contacts", 500)})

	assert.Empty(t, app.ctrl.Visible())
	assert.Equal(t, store.MsgLoadFailed, app.notices.Text(notify.LevelError))
	assert.Contains(t, app.View(), msgLoadFailedHint)

	// adding still works after a failed load
	press(app, tea.KeyCtrlN)
	typeText(app, "Cara Diaz")
	press(app, tea.KeyTab)
	typeText(app, "888-0300")
	press(app, tea.KeyCtrlS)
	assert.Len(t, app.ctrl.Visible(), 1)
}

func TestSearchFiltersAsYouType(t *testing.T) {
	app, _ := newTestApp(t)

	typeText(app, "/")
	typeText(app, "555")

	require.Len(t, app.ctrl.Visible(), 1)
	assert.Equal(t, 1, app.ctrl.Visible()[0].ID)

	typeText(app, "9")
	assert.Empty(t, app.ctrl.Visible())
	assert.Contains(t, app.View(), msgNoMatches)

	// first esc leaves the search box, the second clears the query
	press(app, tea.KeyEsc)
	assert.Empty(t, app.ctrl.Visible())
	press(app, tea.KeyEsc)
	assert.Len(t, app.ctrl.Visible(), 2)
}

func TestAddContact(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "a")
	require.Equal(t, ViewCreate, app.state)

	typeText(app, "Cara Diaz")
	press(app, tea.KeyTab)
	typeText(app, "888-0300")
	press(app, tea.KeyCtrlS)

	assert.Equal(t, ViewList, app.state)
	require.Len(t, app.ctrl.Visible(), 3)
	added := app.ctrl.Visible()[2]
	assert.Equal(t, "Cara Diaz", added.Name)
	assert.Equal(t, models.EmailNotAvailable, added.Email)
	assert.Equal(t, models.OriginLocal, added.Origin)
	assert.Equal(t, MsgContactAdded, app.notices.Text(notify.LevelSuccess))
	assert.Empty(t, source.replaced)

	// the form is reset for the next contact
	assert.Equal(t, validation.FormInput{}, app.createForm.Input())
}

func addContact(t *testing.T, m *AppModel, name, phone string) models.Contact {
	t.Helper()
	typeText(m, "a")
	typeText(m, name)
	press(m, tea.KeyTab)
	typeText(m, phone)
	press(m, tea.KeyCtrlS)
	require.Equal(t, ViewList, m.state)

	for _, c := range m.ctrl.Visible() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("contact %q was not added", name)
	return models.Contact{}
}

func TestReloadKeepsLocalContactsAndIDs(t *testing.T) {
	app, _ := newTestApp(t)

	first := addContact(t, app, "Cara Diaz", "888-0300")
	assert.Equal(t, 3, first.ID)

	cmd := typeText(app, "r")
	require.NotNil(t, cmd)
	assert.True(t, app.loading)
	// a reload starts from a clean notice area
	assert.Empty(t, app.notices.Text(notify.LevelSuccess))

	send(app, loadContacts(app.ctrl)())
	assert.False(t, app.loading)
	require.Len(t, app.ctrl.Visible(), 3)
	assert.Equal(t, first, app.ctrl.Visible()[2])

	second := addContact(t, app, "Dan Wu", "999-0400")
	assert.Greater(t, second.ID, first.ID)
}

func TestReloadIgnoredWhileLoading(t *testing.T) {
	app, _ := newTestApp(t)

	require.NotNil(t, typeText(app, "r"))
	assert.Nil(t, typeText(app, "r"))
}

func TestAddInvalidShowsFieldErrors(t *testing.T) {
	app, _ := newTestApp(t)

	typeText(app, "a")
	press(app, tea.KeyCtrlS)

	assert.Equal(t, ViewCreate, app.state)
	assert.Equal(t, validation.MsgSummary, app.notices.Text(notify.LevelError))
	assert.Equal(t, validation.MsgSummary, app.createForm.Summary())
	assert.Equal(t, validation.MsgNameRequired, app.createForm.FieldError(validation.FieldName))
	assert.Equal(t, validation.MsgPhoneRequired, app.createForm.FieldError(validation.FieldPhone))
	assert.Len(t, app.ctrl.Visible(), 2)
}

func TestAddDuplicatePhone(t *testing.T) {
	app, _ := newTestApp(t)

	typeText(app, "a")
	typeText(app, "Cara Diaz")
	press(app, tea.KeyTab)
	typeText(app, "555-0100")
	press(app, tea.KeyCtrlS)

	assert.Equal(t, ViewCreate, app.state)
	assert.Equal(t, store.MsgDuplicatePhone, app.notices.Text(notify.LevelError))
	assert.Len(t, app.ctrl.Visible(), 2)
}

func TestInlineValidationWhileTyping(t *testing.T) {
	app, _ := newTestApp(t)

	typeText(app, "a")
	typeText(app, "Al1")
	assert.Equal(t, validation.MsgInvalidName, app.createForm.FieldError(validation.FieldName))
	assert.Empty(t, app.createForm.Summary())

	press(app, tea.KeyBackspace)
	assert.Empty(t, app.createForm.FieldError(validation.FieldName))

	// leaving the form clears the messages but keeps the typed text
	press(app, tea.KeyEsc)
	assert.Equal(t, ViewList, app.state)
	assert.Empty(t, app.createForm.FieldError(validation.FieldName))
	assert.Equal(t, "Al", app.createForm.Input().Name)
}

func TestEditRemoteContact(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "e")
	require.Equal(t, ViewEdit, app.state)
	assert.Equal(t, validation.FormInput{Name: "Ann Lee", Phone: "555-0100", Email: "ann@x.com"}, app.editForm.Input())

	app.editForm.inputs[0].SetValue("Ann Marie Lee")
	cmd := press(app, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, app.pending)

	// nothing is committed until the service answers
	got, _ := app.ctrl.Store().Get(1)
	assert.Equal(t, "Ann Lee", got.Name)

	send(app, cmd())

	assert.False(t, app.pending)
	assert.Equal(t, ViewList, app.state)
	assert.Equal(t, MsgContactUpdated, app.notices.Text(notify.LevelSuccess))
	require.Len(t, source.replaced, 1)
	assert.Equal(t, "Ann Marie Lee", source.replaced[0].Name)

	got, _ = app.ctrl.Store().Get(1)
	assert.Equal(t, "Ann Marie Lee", got.Name)
}

func TestEditRemoteFailureKeepsFormOpen(t *testing.T) {
	app, source := newTestApp(t)
	source.replaceErr = remote.NewStatusError("replace contact", 503)

	typeText(app, "e")
	app.editForm.inputs[0].SetValue("Ann Marie Lee")
	cmd := press(app, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	send(app, cmd())

	assert.Equal(t, ViewEdit, app.state)
	assert.False(t, app.editForm.submitting)
	assert.Equal(t, store.MsgUpdateFailed, app.notices.Text(notify.LevelError))

	got, _ := app.ctrl.Store().Get(1)
	assert.Equal(t, "Ann Lee", got.Name)
}

func TestEditLocalContactCommitsImmediately(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "a")
	typeText(app, "Cara Diaz")
	press(app, tea.KeyTab)
	typeText(app, "888-0300")
	press(app, tea.KeyCtrlS)

	// the new contact is selected after adding
	typeText(app, "e")
	require.Equal(t, ViewEdit, app.state)
	assert.Equal(t, "", app.editForm.Input().Email)

	app.editForm.inputs[2].SetValue("cara@x.com")
	press(app, tea.KeyCtrlS)

	assert.False(t, app.pending)
	assert.Equal(t, ViewList, app.state)
	assert.Equal(t, MsgContactUpdated, app.notices.Text(notify.LevelSuccess))
	assert.Empty(t, source.replaced)

	got, _ := app.ctrl.Store().Get(app.editForm.ContactID())
	assert.Equal(t, "cara@x.com", got.Email)
}

func TestKeysIgnoredWhileSaving(t *testing.T) {
	app, _ := newTestApp(t)

	typeText(app, "e")
	cmd := press(app, tea.KeyCtrlS)
	require.NotNil(t, cmd)

	press(app, tea.KeyEsc)
	assert.Equal(t, ViewEdit, app.state)
	assert.Nil(t, press(app, tea.KeyCtrlS))
}

func TestDeleteRemoteContact(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "j")
	typeText(app, "d")
	require.Equal(t, ViewDeleteConfirm, app.state)
	assert.Contains(t, app.View(), "Bob Stone")

	cmd := send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.True(t, app.pending)
	assert.Len(t, app.ctrl.Visible(), 2)

	send(app, cmd())

	assert.Equal(t, ViewList, app.state)
	assert.Equal(t, []int{2}, source.deleted)
	require.Len(t, app.ctrl.Visible(), 1)
	assert.Equal(t, MsgContactDeleted, app.notices.Text(notify.LevelSuccess))
	assert.Equal(t, 0, app.list.selected)
}

func TestDeleteRemoteFailureKeepsContact(t *testing.T) {
	app, source := newTestApp(t)
	source.deleteErr = errors.New("connection reset")

	typeText(app, "d")
	cmd := send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	send(app, cmd())

	assert.Equal(t, ViewList, app.state)
	assert.Len(t, app.ctrl.Visible(), 2)
	assert.Equal(t, store.MsgDeleteFailed, app.notices.Text(notify.LevelError))
}

func TestDeleteCancelled(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "d")
	typeText(app, "n")

	assert.Equal(t, ViewList, app.state)
	assert.Len(t, app.ctrl.Visible(), 2)
	assert.Empty(t, source.deleted)
}

func TestDeleteLocalContactSkipsService(t *testing.T) {
	app, source := newTestApp(t)

	typeText(app, "a")
	typeText(app, "Cara Diaz")
	press(app, tea.KeyTab)
	typeText(app, "888-0300")
	press(app, tea.KeyCtrlS)

	typeText(app, "d")
	require.Equal(t, ViewDeleteConfirm, app.state)
	press(app, tea.KeyEnter)

	assert.False(t, app.pending)
	assert.Len(t, app.ctrl.Visible(), 2)
	assert.Empty(t, source.deleted)
	assert.Equal(t, MsgContactDeleted, app.notices.Text(notify.LevelSuccess))
}

func TestNotificationDismissal(t *testing.T) {
	app, _ := newTestApp(t)

	app.notices.Error("first")
	app.notices.Error("second")

	// the timer for the first message must not clear the second
	send(app, notify.DismissMsg{Level: notify.LevelError, Seq: 1})
	assert.Equal(t, "second", app.notices.Text(notify.LevelError))

	send(app, notify.DismissMsg{Level: notify.LevelError, Seq: 2})
	assert.Empty(t, app.notices.Text(notify.LevelError))
}

func TestQuit(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	typeText(app, "a")
	cmd = press(app, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
