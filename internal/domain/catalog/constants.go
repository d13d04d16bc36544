package catalog

const (
	MeasurementQuantitative   = "quantitative"
	MeasurementQualitative    = "qualitative"
	MeasurementMilestoneBased = "milestone_based"
	MeasurementPeerValidated  = "peer_validated"

	// TotalWeight is the percentage the active KRA set for a responsibility
	// is expected to sum to. Non-conformance is advisory, not an error.
	TotalWeight = 100
)

var MeasurementMethods = []string{
	MeasurementQuantitative,
	MeasurementQualitative,
	MeasurementMilestoneBased,
	MeasurementPeerValidated,
}
