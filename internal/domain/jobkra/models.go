package jobkra

import "time"

// JobSpecificKRA is a per-job copy of a catalog KRA (or an AI-sourced
// equivalent) that can be edited independently of its catalog ancestor.
type JobSpecificKRA struct {
	ID                  string     `json:"id"`
	JobResponsibilityID string     `json:"jobResponsibilityId"`
	SourceKRAID         *string    `json:"sourceKraId"`
	Name                string     `json:"name"`
	JobSpecificTarget   *string    `json:"jobSpecificTarget"`
	MeasurementMethod   *string    `json:"measurementMethod"`
	Weight              int        `json:"weight"`
	IsInherited         bool       `json:"isInherited"`
	AIGenerated         bool       `json:"aiGenerated"`
	AISource            *string    `json:"aiSource"`
	SequenceOrder       int        `json:"sequenceOrder"`
	CustomizedAt        *time.Time `json:"customizedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (k JobSpecificKRA) DefinitionID() string {
	return k.ID
}

func (k JobSpecificKRA) DefinitionName() string {
	return k.Name
}

func (k JobSpecificKRA) DefinitionWeight() int {
	return k.Weight
}
