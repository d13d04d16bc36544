package reports

// ResponsibilityScore is one responsibility's contribution to an appraisal:
// the weighted rollup over its rated KRAs plus completion counts.
type ResponsibilityScore struct {
	ResponsibilityID string  `json:"responsibilityId"`
	Title            string  `json:"title"`
	Rollup           float64 `json:"rollup"`
	RatedKRAs        int     `json:"ratedKras"`
	TotalKRAs        int     `json:"totalKras"`
}

type AppraisalSummary struct {
	ParticipantID    string                `json:"participantId"`
	Responsibilities []ResponsibilityScore `json:"responsibilities"`
	OverallScore     float64               `json:"overallScore"`
	RatedKRAs        int                   `json:"ratedKras"`
	TotalKRAs        int                   `json:"totalKras"`
}
