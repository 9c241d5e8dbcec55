package services

import (
	"context"
	"math"
	"time"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
	"jainvest/internal/metrics"
	"jainvest/internal/models"
	"jainvest/internal/store"
	"jainvest/internal/uuid"
)

// ScoreQuiz grades answers slot by slot against the quiz's answer key.
// Missing or nil slots count as wrong. The score is the percentage correct
// rounded half away from zero.
func ScoreQuiz(quiz models.Quiz, answers []*int) models.QuizResult {
	total := len(quiz.Questions)
	results := make([]models.QuestionResult, total)
	correct := 0

	for i, q := range quiz.Questions {
		var answer *int
		if i < len(answers) {
			answer = answers[i]
		}
		ok := answer != nil && *answer == q.Correct
		if ok {
			correct++
		}
		results[i] = models.QuestionResult{
			QuestionID:  q.ID,
			UserAnswer:  answer,
			Correct:     q.Correct,
			IsCorrect:   ok,
			Explanation: q.Explanation,
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return models.QuizResult{Score: score, Correct: correct, Total: total, Results: results}
}

// quizService grades attempts and keeps the append-only attempt log.
type quizService struct {
	store       store.Store
	locks       *store.KeyLock
	leaderboard LeaderboardServicer
	catalog     []models.Quiz
	now         func() time.Time
}

// NewQuizService creates a new QuizServicer. Scores are reported to the
// leaderboard after each attempt is recorded.
func NewQuizService(st store.Store, leaderboard LeaderboardServicer) QuizServicer {
	return &quizService{
		store:       st,
		locks:       store.NewKeyLock(),
		leaderboard: leaderboard,
		catalog:     quizCatalog,
		now:         time.Now,
	}
}

// ListQuizzes returns every quiz without its answer key.
func (s *quizService) ListQuizzes() []models.Quiz {
	out := make([]models.Quiz, len(s.catalog))
	for i, q := range s.catalog {
		out[i] = q.Public()
	}
	return out
}

// GetQuiz returns one quiz without its answer key.
func (s *quizService) GetQuiz(id string) (*models.Quiz, error) {
	q, err := s.find(id)
	if err != nil {
		return nil, err
	}
	public := q.Public()
	return &public, nil
}

func (s *quizService) find(id string) (*models.Quiz, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i], nil
		}
	}
	return nil, apperrors.ErrQuizNotFound
}

// SubmitAttempt grades the answers, appends the attempt to the log, and
// credits the score to the user's leaderboard entry.
func (s *quizService) SubmitAttempt(ctx context.Context, userID, quizID string, answers []*int) (*QuizSubmission, error) {
	quiz, err := s.find(quizID)
	if err != nil {
		return nil, err
	}

	result := ScoreQuiz(*quiz, answers)
	attempt := models.QuizAttempt{
		ID:        uuid.New(),
		UserID:    userID,
		QuizID:    quizID,
		Answers:   answers,
		Score:     result.Score,
		Timestamp: s.now().UTC(),
	}

	_, err = store.Update(ctx, s.store, s.locks, store.QuizAttemptsKey,
		func() []models.QuizAttempt { return []models.QuizAttempt{} },
		func(log *[]models.QuizAttempt) error {
			*log = append(*log, attempt)
			return nil
		})
	if err != nil {
		return nil, storeError(err)
	}
	metrics.QuizAttemptsTotal.WithLabelValues(quizID).Inc()

	if s.leaderboard != nil {
		if _, err := s.leaderboard.RecordScore(ctx, userID, result.Score); err != nil {
			logger.Get().Errorw("failed to record quiz score on leaderboard",
				"error", err, "user_id", userID, "quiz_id", quizID)
		}
	}

	logger.Get().Infow("quiz attempt scored", "user_id", userID, "quiz_id", quizID, "score", result.Score)
	return &QuizSubmission{Attempt: attempt, Result: result}, nil
}

// ListAttempts returns the user's attempts in submission order.
func (s *quizService) ListAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	all, err := store.Load(ctx, s.store, store.QuizAttemptsKey, func() []models.QuizAttempt { return []models.QuizAttempt{} })
	if err != nil {
		return nil, storeError(err)
	}
	out := []models.QuizAttempt{}
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
