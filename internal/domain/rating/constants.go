package rating

const (
	StatusNotRated     = "not_rated"
	StatusSelfRated    = "self_rated"
	StatusManagerRated = "manager_rated"
	StatusCompleted    = "completed"

	SideSelf    = "self"
	SideManager = "manager"

	// ScaleMin and ScaleMax bound submitted ratings. ScaleMax is also the
	// normalization denominator for weight-adjusted scores, so switching to
	// another scale is a change here rather than a hunt for literals.
	ScaleMin = 1
	ScaleMax = 5
)
