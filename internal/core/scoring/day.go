// Package scoring turns habit completion counts into day scores and
// chart series. Every function is pure: the caller supplies "today",
// the active habit count and the already folded day -> score map.
package scoring

import (
	"math"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

// Percent returns 100*score/capacity rounded half-up, or 0 when capacity is not positive.
// Out-of-range scores are used as given; the result is not clamped to [0,100].
func Percent(score, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	if score >= 0 {
		return (200*score + capacity) / (2 * capacity)
	}
	return int(math.Round(100 * float64(score) / float64(capacity)))
}

// ScoreDay scores a single day: completed habits out of the active total,
// passing when the percent reaches the threshold.
func ScoreDay(total, completed, threshold int) domain.DayScore {
	p := Percent(completed, total)
	return domain.DayScore{
		Score:     completed,
		Total:     total,
		Percent:   p,
		Pass:      p >= threshold,
		Threshold: threshold,
	}
}
