package domain

import (
	"strings"
	"time"
)

type Member struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	CI             string     `json:"ci"`
	CIExpedition   string     `json:"ci_expedition"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	PhotoPath      string     `json:"photo_path,omitempty"`
	Active         bool       `json:"active"`
	CredentialUUID string     `json:"credential_uuid"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PublicCredential is the subset exposed by the unauthenticated
// verification endpoint.
type PublicCredential struct {
	FullName     string `json:"full_name"`
	CI           string `json:"ci"`
	CIExpedition string `json:"ci_expedition"`
	Active       bool   `json:"active"`
	PhotoPath    string `json:"photo_path,omitempty"`
}

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

func (m Member) Public() PublicCredential {
	return PublicCredential{
		FullName:     m.FullName(),
		CI:           m.CI,
		CIExpedition: m.CIExpedition,
		Active:       m.Active,
		PhotoPath:    m.PhotoPath,
	}
}

// Initials returns the two-letter placeholder shown when a member has no
// photo, in the list avatar and on the generated credential alike.
func (m Member) Initials() string {
	return initialOf(m.FirstName) + initialOf(m.LastName)
}

func initialOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	return strings.ToUpper(string([]rune(s)[0]))
}
