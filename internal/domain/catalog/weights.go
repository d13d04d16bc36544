package catalog

import (
	"fmt"
	"sort"
)

type WeightValidation struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// ValidateWeights checks that the supplied KRA weights sum to exactly
// TotalWeight. Callers pass the active set for one responsibility; an empty
// set has nothing to validate and is reported valid.
func ValidateWeights(kras []KRA) WeightValidation {
	if len(kras) == 0 {
		return WeightValidation{IsValid: true, Message: "no KRAs to validate"}
	}
	total := 0
	for _, kra := range kras {
		total += kra.Weight
	}
	if total != TotalWeight {
		return WeightValidation{
			IsValid: false,
			Message: fmt.Sprintf("KRA weights sum to %d, expected %d", total, TotalWeight),
		}
	}
	return WeightValidation{IsValid: true, Message: fmt.Sprintf("KRA weights sum to %d", TotalWeight)}
}

// DistributeWeightsEvenly returns a copy of the supplied KRAs with weights
// reassigned so the total is exactly TotalWeight: every KRA gets
// floor(100/N), and the remainder goes one point at a time to the first KRAs
// in sequence order.
func DistributeWeightsEvenly(kras []KRA) []KRA {
	if len(kras) == 0 {
		return nil
	}

	out := make([]KRA, len(kras))
	copy(out, kras)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SequenceOrder < out[j].SequenceOrder
	})

	base := TotalWeight / len(out)
	remainder := TotalWeight - base*len(out)
	for i := range out {
		out[i].Weight = base
		if i < remainder {
			out[i].Weight++
		}
	}
	return out
}
