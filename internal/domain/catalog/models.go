package catalog

import "time"

type KRA struct {
	ID                string    `json:"id"`
	OrganizationID    string    `json:"organizationId"`
	ResponsibilityID  string    `json:"responsibilityId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	TargetMetric      string    `json:"targetMetric"`
	MeasurementMethod string    `json:"measurementMethod"`
	Weight            int       `json:"weight"`
	IsRequired        bool      `json:"isRequired"`
	IsActive          bool      `json:"isActive"`
	SequenceOrder     int       `json:"sequenceOrder"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (k KRA) DefinitionID() string {
	return k.ID
}

func (k KRA) DefinitionName() string {
	return k.Name
}

func (k KRA) DefinitionWeight() int {
	return k.Weight
}
