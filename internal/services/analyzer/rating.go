package analyzer

import "github.com/tealscan/tealscan/internal/models"

// Rating tier thresholds, in percent. Lower bounds are closed, upper open.
const (
	ratingInFormFloor  = 20.0
	ratingOnTrackFloor = 12.0
)

// Rate maps a return metric to a qualitative tier. The money-weighted rate
// is preferred; when it is unavailable the absolute return stands in.
func Rate(xirr *float64, absoluteReturn float64) models.RatingTier {
	v := absoluteReturn
	if xirr != nil {
		v = *xirr
	}

	switch {
	case v >= ratingInFormFloor:
		return models.RatingInForm
	case v >= ratingOnTrackFloor:
		return models.RatingOnTrack
	case v > 0:
		return models.RatingOffTrack
	default:
		return models.RatingOutOfForm
	}
}
