package models

import (
	"time"

	"github.com/lib/pq"
)

// TeamMemberType separates staff from site developers.
type TeamMemberType string

const (
	TeamMemberTypeTeam      TeamMemberType = "team"
	TeamMemberTypeDeveloper TeamMemberType = "developer"
)

// TeamMember is a person listed on the team page.
type TeamMember struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Role            string         `db:"role" json:"role"`
	Email           string         `db:"email" json:"email"`
	Bio             string         `db:"bio" json:"bio"`
	Image           string         `db:"image" json:"image"`
	Qualifications  pq.StringArray `db:"qualifications" json:"qualifications"`
	AreasOfInterest pq.StringArray `db:"areas_of_interest" json:"areasOfInterest"`
	Type            TeamMemberType `db:"type" json:"type"`
	IsActive        bool           `db:"is_active" json:"isActive"`
	Order           int            `db:"display_order" json:"order"`
	Skills          string         `db:"skills" json:"skills"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// Normalize replaces nil list fields with empty lists.
func (m *TeamMember) Normalize() {
	if m.Qualifications == nil {
		m.Qualifications = pq.StringArray{}
	}
	if m.AreasOfInterest == nil {
		m.AreasOfInterest = pq.StringArray{}
	}
}

// TeamFilter allows listing team members.
type TeamFilter struct {
	ListOptions
	Type     TeamMemberType
	IsActive *bool
}
