package loyalty

import "github.com/BruksfildServices01/mobile-barber/internal/models"

// Threshold is the number of completed cuts per earned free cut.
const Threshold = 5

type Progress struct {
	CutCount   int  `json:"cut_count"`
	Remainder  int  `json:"remainder"`
	Threshold  int  `json:"threshold"`
	NextIsFree bool `json:"next_is_free"`
}

// ApplyCompletion counts one completed cut. It reports whether this cut
// crossed a multiple of Threshold; the free cut flag is only ever raised here.
func ApplyCompletion(acc *models.Loyalty) bool {
	acc.CutCount++
	if acc.CutCount%Threshold == 0 {
		acc.FreeCutEarned = true
		return true
	}
	return false
}

// Redeem clears the free cut flag. The count is kept.
func Redeem(acc *models.Loyalty) {
	acc.FreeCutEarned = false
}

// ProgressOf projects an account for display. A nil account reads as zero.
func ProgressOf(acc *models.Loyalty) Progress {
	if acc == nil {
		return Progress{Threshold: Threshold}
	}
	return Progress{
		CutCount:   acc.CutCount,
		Remainder:  acc.CutCount % Threshold,
		Threshold:  Threshold,
		NextIsFree: acc.FreeCutEarned,
	}
}
