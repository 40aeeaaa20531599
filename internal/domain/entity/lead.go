package entity

import "time"

// Estados de lead.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusLost      = "lost"
	LeadStatusWon       = "won"
)

// IsLeadStatus informa si s es un estado de lead válido.
func IsLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost, LeadStatusWon:
		return true
	}
	return false
}

// Lead prospecto comercial.
type Lead struct {
	ID         string
	CompanyID  string
	Name       string
	Email      string
	Phone      string
	Source     string
	Status     string
	Notes      string
	AssignedTo string // user id, vacío = sin asignar
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
