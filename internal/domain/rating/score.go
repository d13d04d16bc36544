package rating

// ValidRating reports whether a submitted rating is on the scale.
func ValidRating(rating int) bool {
	return rating >= ScaleMin && rating <= ScaleMax
}

// BlendFinalScore derives the final per-KRA score: the arithmetic mean when
// both raters are present, the manager value alone otherwise. Without a
// manager rating there is no final score.
func BlendFinalScore(selfRating, managerRating *int) *float64 {
	if managerRating == nil {
		return nil
	}
	score := float64(*managerRating)
	if selfRating != nil {
		score = (float64(*selfRating) + float64(*managerRating)) / 2
	}
	return &score
}

// WeightAdjustedScore normalizes a final score against the rating scale and
// applies the KRA's percentage weight.
func WeightAdjustedScore(finalScore float64, weight int) float64 {
	return finalScore / ScaleMax * float64(weight)
}

// NextStatus advances the submission state machine for one rating side.
// Manager and self inputs each move a half-rated record to completed;
// completed is terminal and re-submissions stay there.
func NextStatus(current, side string) string {
	switch current {
	case "", StatusNotRated:
		if side == SideManager {
			return StatusManagerRated
		}
		return StatusSelfRated
	case StatusSelfRated:
		if side == SideManager {
			return StatusCompleted
		}
		return StatusSelfRated
	case StatusManagerRated:
		if side == SideSelf {
			return StatusCompleted
		}
		return StatusManagerRated
	default:
		return StatusCompleted
	}
}
