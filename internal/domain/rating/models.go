package rating

import (
	"time"

	"kraeval/internal/domain/catalog"
)

// Submission is the single record per participant and KRA that both raters
// write into. Self and manager sides occupy disjoint fields.
type Submission struct {
	ID                  string     `json:"id"`
	OrganizationID      string     `json:"organizationId"`
	ParticipantID       string     `json:"participantId"`
	KRAID               string     `json:"responsibilityKraId"`
	ResponsibilityID    string     `json:"responsibilityId"`
	SelfRating          *int       `json:"selfRating"`
	SelfComments        *string    `json:"selfComments"`
	SelfRatingAt        *time.Time `json:"selfRatingAt"`
	ManagerID           *string    `json:"managerId"`
	ManagerRating       *int       `json:"managerRating"`
	ManagerComments     *string    `json:"managerComments"`
	ManagerRatingAt     *time.Time `json:"managerRatingAt"`
	CalculatedScore     *float64   `json:"calculatedScore"`
	FinalScore          *float64   `json:"finalScore"`
	WeightAdjustedScore *float64   `json:"weightAdjustedScore"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// KRAWithRating is the rating sheet row shape: every active KRA for a
// responsibility joined with the participant's submission, nil when unrated.
type KRAWithRating struct {
	KRA    catalog.KRA `json:"kra"`
	Rating *Submission `json:"rating"`
}

// KRADefinition abstracts the weighted definitions ratings are recorded
// against. Catalog KRAs satisfy it today; job-specific KRAs satisfy it too,
// so wiring them into the same pipeline is an assembly change, not a
// rearchitecture.
type KRADefinition interface {
	DefinitionID() string
	DefinitionName() string
	DefinitionWeight() int
}
