package store

import (
	"math"
	"strings"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/validation"
)

// DefaultInitialID keeps locally created ids clear of the service's ids until a
// successful load re-seeds the counter.
const DefaultInitialID = 10001

// noContact is passed as the excluded id when no existing contact is being edited.
const noContact = math.MinInt

type ChangeKind int

const (
	ChangeUpdate ChangeKind = iota
	ChangeRemove
)

func (k ChangeKind) String() string {
	if k == ChangeRemove {
		return "remove"
	}
	return "update"
}

// Change is a validated mutation that has not been applied yet. Remote-origin
// changes must be pushed to the contact service before they are committed.
type Change struct {
	Kind    ChangeKind
	Contact models.Contact
}

func (c Change) NeedsRemote() bool {
	return c.Contact.IsRemote()
}

func (c Change) Record() remote.ContactRecord {
	return remote.ContactRecord{
		ID:    c.Contact.ID,
		Name:  c.Contact.Name,
		Phone: c.Contact.Phone,
		Email: c.Contact.Email,
	}
}

// Store owns the contact list, the active query and the derived view. It does
// no I/O and is not safe for concurrent use; callers drive it from one loop.
type Store struct {
	contacts models.ContactList
	filtered []models.Contact
	query    string
	nextID   int
	assigned int // highest id handed to a local contact, 0 before the first add
}

func New(initialID int) *Store {
	if initialID <= 0 {
		initialID = DefaultInitialID
	}
	return &Store{
		filtered: []models.Contact{},
		nextID:   initialID,
	}
}

// Seed replaces the remote part of the list with records from the contact
// service. Every record is tagged remote and only the first token of each phone
// is kept. Local contacts survive unless the service now uses their id. The id
// counter moves to one past the largest id seen, but never back to an id that
// was already assigned locally.
func (s *Store) Seed(records []remote.ContactRecord) {
	contacts := make([]models.Contact, 0, len(records))
	seen := make(map[int]bool, len(records))
	maxRemote := 0
	for _, rec := range records {
		contacts = append(contacts, models.NewContact(rec.ID, rec.Name, firstToken(rec.Phone), rec.Email, models.OriginRemote))
		seen[rec.ID] = true
		if len(contacts) == 1 || rec.ID > maxRemote {
			maxRemote = rec.ID
		}
	}
	for _, c := range s.contacts.Contacts {
		if !c.IsRemote() && !seen[c.ID] {
			contacts = append(contacts, c)
		}
	}
	s.contacts = models.ContactList{Contacts: contacts}

	if len(records) > 0 {
		s.nextID = maxRemote + 1
	}
	if s.assigned >= s.nextID {
		s.nextID = s.assigned + 1
	}
	s.refresh()
}

// Clear drops the remote contacts after a failed load. Local contacts and the
// id counter are kept so contacts added afterwards stay unique.
func (s *Store) Clear() {
	kept := make([]models.Contact, 0)
	for _, c := range s.contacts.Contacts {
		if !c.IsRemote() {
			kept = append(kept, c)
		}
	}
	s.contacts = models.ContactList{Contacts: kept}
	s.refresh()
}

// Add validates the input and appends a local contact with the next id.
func (s *Store) Add(in validation.FormInput) (models.Contact, error) {
	if err := s.check(in, noContact); err != nil {
		return models.Contact{}, err
	}

	contact := models.NewContact(s.nextID, in.Name, in.Phone, in.Email, models.OriginLocal)
	s.assigned = s.nextID
	s.nextID++
	s.contacts.Add(contact)
	s.refresh()

	return contact, nil
}

// PrepareUpdate builds the updated record without applying it.
func (s *Store) PrepareUpdate(id int, in validation.FormInput) (Change, error) {
	existing, ok := s.contacts.FindByID(id)
	if !ok {
		return Change{}, NewNotFoundError(id)
	}
	if err := s.check(in, id); err != nil {
		return Change{}, err
	}

	return Change{
		Kind:    ChangeUpdate,
		Contact: existing.WithFields(in.Name, in.Phone, in.Email),
	}, nil
}

// PrepareRemove reports false when the id is unknown; removing it is then a no-op.
func (s *Store) PrepareRemove(id int) (Change, bool) {
	existing, ok := s.contacts.FindByID(id)
	if !ok {
		return Change{}, false
	}
	return Change{Kind: ChangeRemove, Contact: existing}, true
}

// Commit applies a prepared change. An update whose contact vanished in the
// meantime fails with NotFound; a remove of a vanished contact does nothing.
func (s *Store) Commit(ch Change) error {
	switch ch.Kind {
	case ChangeUpdate:
		if !s.contacts.Replace(ch.Contact) {
			return NewNotFoundError(ch.Contact.ID)
		}
	case ChangeRemove:
		if !s.contacts.Remove(ch.Contact.ID) {
			return nil
		}
	}
	s.refresh()
	return nil
}

// Search sets the active query and recomputes the view.
func (s *Store) Search(query string) {
	s.query = query
	s.refresh()
}

func (s *Store) Query() string {
	return s.query
}

// Visible returns a copy of the filtered view.
func (s *Store) Visible() []models.Contact {
	out := make([]models.Contact, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Contacts returns a copy of the full list.
func (s *Store) Contacts() []models.Contact {
	return s.contacts.Snapshot()
}

func (s *Store) Len() int {
	return s.contacts.Len()
}

func (s *Store) Get(id int) (models.Contact, bool) {
	return s.contacts.FindByID(id)
}

func (s *Store) NextID() int {
	return s.nextID
}

func (s *Store) check(in validation.FormInput, excludeID int) error {
	result := validation.ValidateForm(in)
	if !result.IsValid {
		return NewValidationError(result)
	}

	if _, dup := s.contacts.FindByPhone(strings.TrimSpace(in.Phone), excludeID); dup {
		return NewDuplicateError(validation.FieldPhone)
	}
	if _, dup := s.contacts.FindByEmail(in.Email, excludeID); dup {
		return NewDuplicateError(validation.FieldEmail)
	}
	return nil
}

func (s *Store) refresh() {
	s.filtered = Filter(s.contacts.Contacts, s.query)
}

func firstToken(phone string) string {
	fields := strings.Fields(phone)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
