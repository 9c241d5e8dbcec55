package services

import (
	"context"
	"sort"

	"jainvest/internal/logger"
	"jainvest/internal/models"
	"jainvest/internal/store"
)

// seedLeaderboard is the board shown before anyone has played.
var seedLeaderboard = []models.LeaderboardEntry{
	{UserID: "1", Name: "Demo Learner", TotalScore: 850, StreakDays: 7, Badges: []string{"Rookie", "Streak 7"}},
	{UserID: "user_123", Name: "Priya Sharma", TotalScore: 1200, StreakDays: 15, Badges: []string{"Scholar", "Streak 15", "Quiz Master"}},
	{UserID: "user_456", Name: "Rahul Patel", TotalScore: 980, StreakDays: 5, Badges: []string{"Rising Star", "Streak 5"}},
	{UserID: "user_789", Name: "Sneha Gupta", TotalScore: 1450, StreakDays: 23, Badges: []string{"Expert", "Streak 20", "Top Performer"}},
	{UserID: "user_321", Name: "Amit Singh", TotalScore: 720, StreakDays: 3, Badges: []string{"Beginner", "Streak 3"}},
}

func newSeedLeaderboard() []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(seedLeaderboard))
	for i, e := range seedLeaderboard {
		e.Badges = append([]string{}, e.Badges...)
		out[i] = e
	}
	return out
}

type threshold struct {
	min   int
	badge string
}

var scoreTiers = []threshold{
	{1400, "Expert"},
	{1000, "Scholar"},
	{600, "Rising Star"},
	{300, "Rookie"},
	{0, "Beginner"},
}

var streakTiers = []threshold{
	{20, "Streak 20"},
	{15, "Streak 15"},
	{10, "Streak 10"},
	{7, "Streak 7"},
	{5, "Streak 5"},
	{3, "Streak 3"},
}

// CalculateBadges returns the score tier badge, the highest streak badge
// reached (if any), then the compound badges in order.
func CalculateBadges(totalScore, streakDays int) []string {
	badges := []string{}
	for _, t := range scoreTiers {
		if totalScore >= t.min {
			badges = append(badges, t.badge)
			break
		}
	}
	if len(badges) == 0 {
		badges = append(badges, "Beginner")
	}
	for _, t := range streakTiers {
		if streakDays >= t.min {
			badges = append(badges, t.badge)
			break
		}
	}
	if totalScore >= 1200 && streakDays >= 15 {
		badges = append(badges, "Top Performer")
	}
	if totalScore >= 800 && streakDays >= 10 {
		badges = append(badges, "Quiz Master")
	}
	return badges
}

// leaderboardService keeps the ranked board in the store.
type leaderboardService struct {
	store store.Store
	locks *store.KeyLock
}

// NewLeaderboardService creates a new LeaderboardServicer.
func NewLeaderboardService(st store.Store) LeaderboardServicer {
	return &leaderboardService{store: st, locks: store.NewKeyLock()}
}

// GetLeaderboard returns the board ordered by total score, highest first.
func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	board, err := store.Load(ctx, s.store, store.LeaderboardKey, newSeedLeaderboard)
	if err != nil {
		return nil, storeError(err)
	}
	rank(board)
	return board, nil
}

// RecordScore credits points to an existing entry, extends its streak, and
// recomputes its badges. Unknown users are ignored, but the board is still
// re-sorted and saved.
func (s *leaderboardService) RecordScore(ctx context.Context, userID string, points int) ([]models.LeaderboardEntry, error) {
	board, err := store.Update(ctx, s.store, s.locks, store.LeaderboardKey, newSeedLeaderboard,
		func(board *[]models.LeaderboardEntry) error {
			for i := range *board {
				e := &(*board)[i]
				if e.UserID != userID {
					continue
				}
				e.TotalScore += points
				e.StreakDays++
				e.Badges = CalculateBadges(e.TotalScore, e.StreakDays)
				break
			}
			rank(*board)
			return nil
		})
	if err != nil {
		return nil, storeError(err)
	}
	return board, nil
}

// Enroll adds a zero-score entry for a user not yet on the board.
func (s *leaderboardService) Enroll(ctx context.Context, userID, name string) error {
	_, err := store.Update(ctx, s.store, s.locks, store.LeaderboardKey, newSeedLeaderboard,
		func(board *[]models.LeaderboardEntry) error {
			for _, e := range *board {
				if e.UserID == userID {
					return nil
				}
			}
			*board = append(*board, models.LeaderboardEntry{
				UserID: userID,
				Name:   name,
				Badges: CalculateBadges(0, 0),
			})
			rank(*board)
			return nil
		})
	if err != nil {
		return storeError(err)
	}
	logger.Get().Infow("user enrolled on leaderboard", "user_id", userID)
	return nil
}

// rank orders entries by total score descending; ties keep their order.
func rank(board []models.LeaderboardEntry) {
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].TotalScore > board[j].TotalScore
	})
}
