package entity

import (
	"strings"
	"time"
)

// Affiliate represents a member/contributor whose deposits are documented by vouchers
type Affiliate struct {
	ID              int64  `json:"id"`
	FullName        string `json:"fullName"`
	FirstName       string `json:"firstName"`
	SecondName      string `json:"secondName,omitempty"`
	PaternalSurname string `json:"paternalSurname,omitempty"`
	MaternalSurname string `json:"maternalSurname,omitempty"`
	IdentityCard    string `json:"identityCard"`

	// Server-managed fields, not exposed on the list payload
	AffiliateCode string     `json:"-"`
	AdmissionDate *time.Time `json:"-"`
	Status        string     `json:"-"`
}

// ComposeFullName joins the non-empty name parts with single spaces
func ComposeFullName(firstName, secondName, paternalSurname, maternalSurname string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{firstName, secondName, paternalSurname, maternalSurname} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
