package rollup

import (
	"math"

	"kraeval/internal/domain/catalog"
	"kraeval/internal/domain/rating"
)

// CalculateResponsibilityRollup combines per-KRA final scores into one
// responsibility-level score on the rating scale. KRAs without a usable
// final score are skipped and their weight drops out of the denominator, so
// a partially rated responsibility is averaged over what was actually rated
// rather than penalized for incompleteness. The result is rounded to two
// decimals; an empty or fully unrated set yields 0.
func CalculateResponsibilityRollup(ratings []rating.Submission, kras []rating.KRADefinition) float64 {
	if len(ratings) == 0 || len(kras) == 0 {
		return 0
	}

	byKRA := make(map[string]rating.Submission, len(ratings))
	for _, sub := range ratings {
		byKRA[sub.KRAID] = sub
	}

	weightedSum := 0.0
	totalWeight := 0
	for _, kra := range kras {
		sub, ok := byKRA[kra.DefinitionID()]
		if !ok || sub.FinalScore == nil {
			continue
		}
		weightedSum += *sub.FinalScore * float64(kra.DefinitionWeight())
		totalWeight += kra.DefinitionWeight()
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Round(weightedSum/float64(totalWeight)*100) / 100
}

// Definitions widens catalog KRAs to the definition interface the rollup
// consumes.
func Definitions(kras []catalog.KRA) []rating.KRADefinition {
	defs := make([]rating.KRADefinition, len(kras))
	for i := range kras {
		defs[i] = kras[i]
	}
	return defs
}
