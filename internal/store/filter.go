package store

import (
	"strings"

	"rhystmorgan/contactsTUI/internal/models"
)

// Filter returns the contacts whose name, phone or email contains query,
// ignoring case and surrounding whitespace. An empty query returns every
// contact. The result is always a fresh slice in source order.
func Filter(contacts []models.Contact, query string) []models.Contact {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if query == "" || Matches(contact, query) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// Matches expects a query that is already lower-cased and trimmed. A missing
// email never matches.
func Matches(contact models.Contact, query string) bool {
	if strings.Contains(strings.ToLower(contact.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(contact.Phone), query) {
		return true
	}
	return contact.HasEmail() && strings.Contains(strings.ToLower(contact.Email), query)
}
