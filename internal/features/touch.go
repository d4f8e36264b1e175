package features

import (
	"time"

	"openrange/pkg/contracts/domain"
)

// firstTouch scans the outcome bars forward and reports which extreme was
// reached first. The up side is touched when a bar's high comes within tol
// of high, the down side when a bar's low comes within tol of low. A side
// seen at the same instant as the other, or never seen, yields none.
func firstTouch(bars []domain.Bar, high, low, tol float64) domain.FirstTouch {
	if !finite(high) && !finite(low) {
		return domain.FirstTouchNone
	}

	var upAt, downAt *time.Time
	for i := range bars {
		b := &bars[i]
		if upAt == nil && finite(high) && finite(b.High) && b.High >= high-tol {
			upAt = &b.Instant
		}
		if downAt == nil && finite(low) && finite(b.Low) && b.Low <= low+tol {
			downAt = &b.Instant
		}
		if upAt != nil && downAt != nil {
			break
		}
	}

	switch {
	case upAt == nil || downAt == nil:
		return domain.FirstTouchNone
	case upAt.Before(*downAt):
		return domain.FirstTouchUp
	case downAt.Before(*upAt):
		return domain.FirstTouchDown
	default:
		return domain.FirstTouchNone
	}
}
