package compliance

import "fitscore/internal/models"

const GoodDayThreshold = 80

// AdvanceStreak returns the streak after a day scored overall. A nil prev
// starts from zero. The longest streak never shrinks. Calling it twice for
// the same date counts the day twice.
func AdvanceStreak(prev *models.Streak, userID, streakType, date string, overall int) models.Streak {
	next := models.Streak{
		UserID:      userID,
		Type:        streakType,
		LastUpdated: date,
	}
	if prev != nil {
		next.CurrentStreak = prev.CurrentStreak
		next.LongestStreak = prev.LongestStreak
	}

	if overall >= GoodDayThreshold {
		next.CurrentStreak++
		next.LongestStreak = max(next.CurrentStreak, next.LongestStreak)
	} else {
		next.CurrentStreak = 0
	}
	return next
}
