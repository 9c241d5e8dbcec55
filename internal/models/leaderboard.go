package models

// LeaderboardEntry is one ranked learner.
type LeaderboardEntry struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	TotalScore int      `json:"total_score"`
	StreakDays int      `json:"streak_days"`
	Badges     []string `json:"badges"`
}
