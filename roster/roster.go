// Package roster keeps the ordered, deduplicated list of page invitees.
package roster

import (
	"strings"

	"github.com/tidepool-org/landing/models"
)

// Roster is not safe for concurrent use; it is owned by a single workflow.
type Roster struct {
	invitees []models.Invitee
}

func New() *Roster {
	return &Roster{invitees: []models.Invitee{}}
}

// Add appends an invitee. Emails are compared exactly, case included.
func (r *Roster) Add(email string, role models.Role) error {
	if strings.TrimSpace(email) == "" {
		return models.NewEmptyEmailError()
	}
	if !role.IsValid() {
		return models.NewBadFormatError(models.FieldInviteeRole)
	}
	if r.Contains(email) {
		return models.NewDuplicateError(email)
	}
	r.invitees = append(r.invitees, models.Invitee{Email: email, Role: role})
	return nil
}

// Remove drops the invitee with the given email. Absent emails are ignored.
func (r *Roster) Remove(email string) {
	for i, invitee := range r.invitees {
		if invitee.Email == email {
			r.invitees = append(r.invitees[:i:i], r.invitees[i+1:]...)
			return
		}
	}
}

func (r *Roster) Contains(email string) bool {
	for _, invitee := range r.invitees {
		if invitee.Email == email {
			return true
		}
	}
	return false
}

// List returns a copy in insertion order.
func (r *Roster) List() []models.Invitee {
	list := make([]models.Invitee, len(r.invitees))
	copy(list, r.invitees)
	return list
}

func (r *Roster) Len() int {
	return len(r.invitees)
}

// Clear removes every invitee.
func (r *Roster) Clear() {
	r.invitees = []models.Invitee{}
}
