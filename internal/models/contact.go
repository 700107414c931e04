package models

import (
	"strings"
)

// EmailNotAvailable is stored in place of an email the user left blank.
const EmailNotAvailable = "N/A"

// Origin records where a contact came from. Remote contacts are mirrored to the
// contact service on update and delete; local ones never leave the process.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

type Contact struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Origin Origin `json:"-"`
}

type ContactList struct {
	Contacts []Contact `json:"contacts"`
}

func NewContact(id int, name, phone, email string, origin Origin) Contact {
	return Contact{
		ID:     id,
		Name:   strings.TrimSpace(name),
		Phone:  strings.TrimSpace(phone),
		Email:  NormalizeEmail(email),
		Origin: origin,
	}
}

// NormalizeEmail trims the value and substitutes the sentinel for an empty one.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return EmailNotAvailable
	}
	return email
}

// HasEmail reports whether the contact holds a real email address.
func (c Contact) HasEmail() bool {
	return c.Email != "" && c.Email != EmailNotAvailable
}

// EditableEmail is the value shown in an edit form: the sentinel becomes blank.
func (c Contact) EditableEmail() string {
	if !c.HasEmail() {
		return ""
	}
	return c.Email
}

func (c Contact) IsRemote() bool {
	return c.Origin == OriginRemote
}

// WithFields returns a copy carrying new name, phone and email. ID and origin are kept.
func (c Contact) WithFields(name, phone, email string) Contact {
	return NewContact(c.ID, name, phone, email, c.Origin)
}

func (cl *ContactList) Len() int {
	return len(cl.Contacts)
}

func (cl *ContactList) Add(contact Contact) {
	cl.Contacts = append(cl.Contacts, contact)
}

func (cl *ContactList) IndexOf(id int) int {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			return i
		}
	}
	return -1
}

func (cl *ContactList) FindByID(id int) (Contact, bool) {
	if i := cl.IndexOf(id); i >= 0 {
		return cl.Contacts[i], true
	}
	return Contact{}, false
}

// Replace swaps the contact with the same ID in place. It reports false when
// no such contact exists.
func (cl *ContactList) Replace(contact Contact) bool {
	i := cl.IndexOf(contact.ID)
	if i < 0 {
		return false
	}
	cl.Contacts[i] = contact
	return true
}

func (cl *ContactList) Remove(id int) bool {
	i := cl.IndexOf(id)
	if i < 0 {
		return false
	}
	cl.Contacts = append(cl.Contacts[:i], cl.Contacts[i+1:]...)
	return true
}

// FindByPhone matches byte-for-byte, skipping the contact with excludeID.
func (cl *ContactList) FindByPhone(phone string, excludeID int) (Contact, bool) {
	for _, contact := range cl.Contacts {
		if contact.ID != excludeID && contact.Phone == phone {
			return contact, true
		}
	}
	return Contact{}, false
}

// FindByEmail matches case-insensitively, skipping the contact with excludeID.
// Blank and sentinel emails never match.
func (cl *ContactList) FindByEmail(email string, excludeID int) (Contact, bool) {
	email = strings.TrimSpace(email)
	if email == "" || email == EmailNotAvailable {
		return Contact{}, false
	}
	for _, contact := range cl.Contacts {
		if contact.ID != excludeID && contact.HasEmail() && strings.EqualFold(contact.Email, email) {
			return contact, true
		}
	}
	return Contact{}, false
}

// MaxID returns the largest ID in the list and false when the list is empty.
func (cl *ContactList) MaxID() (int, bool) {
	if len(cl.Contacts) == 0 {
		return 0, false
	}
	max := cl.Contacts[0].ID
	for _, contact := range cl.Contacts[1:] {
		if contact.ID > max {
			max = contact.ID
		}
	}
	return max, true
}

// Snapshot returns a copy of the contacts that callers may keep.
func (cl *ContactList) Snapshot() []Contact {
	out := make([]Contact, len(cl.Contacts))
	copy(out, cl.Contacts)
	return out
}
