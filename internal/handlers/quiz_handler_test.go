package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/models"
	"jainvest/internal/services"
)

func setupQuizRouter(handler *QuizHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/quizzes", injectUserID("u1"))
	g.GET("", handler.ListQuizzes)
	g.GET("/attempts", handler.ListAttempts)
	g.GET("/:id", handler.GetQuiz)
	g.POST("/:id/attempts", handler.SubmitAttempt)
	return r
}

func TestQuizHandler_SubmitAttempt(t *testing.T) {
	t.Run("returns 201 and keeps null slots", func(t *testing.T) {
		var got []*int
		svc := &mockQuizService{
			submitAttemptFn: func(userID, quizID string, answers []*int) (*services.QuizSubmission, error) {
				got = answers
				return &services.QuizSubmission{Result: models.QuizResult{Score: 67, Correct: 2, Total: 3}}, nil
			},
		}
		rec := doRequest(setupQuizRouter(NewQuizHandler(svc)), http.MethodPost, "/quizzes/basic-investing/attempts", `{"answers":[1,null,2]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 3 || got[1] != nil || *got[2] != 2 {
			t.Errorf("unexpected answers forwarded: %v", got)
		}
		result := parseJSON(t, rec)["result"].(map[string]interface{})
		if result["score"] != float64(67) {
			t.Errorf("unexpected result %v", result)
		}
	})

	t.Run("returns 404 for unknown quiz", func(t *testing.T) {
		svc := &mockQuizService{
			submitAttemptFn: func(string, string, []*int) (*services.QuizSubmission, error) {
				return nil, apperrors.ErrQuizNotFound
			},
		}
		rec := doRequest(setupQuizRouter(NewQuizHandler(svc)), http.MethodPost, "/quizzes/nope/attempts", `{"answers":[0]}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "QUIZ_NOT_FOUND")
	})

	t.Run("returns 400 without answers", func(t *testing.T) {
		rec := doRequest(setupQuizRouter(NewQuizHandler(&mockQuizService{})), http.MethodPost, "/quizzes/basic-investing/attempts", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestQuizHandler_Reads(t *testing.T) {
	r := setupQuizRouter(NewQuizHandler(&mockQuizService{}))

	rec := doRequest(r, http.MethodGet, "/quizzes", "")
	if rec.Code != http.StatusOK || len(parseJSON(t, rec)["quizzes"].([]interface{})) != 1 {
		t.Errorf("unexpected list response %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(r, http.MethodGet, "/quizzes/basic-investing", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(r, http.MethodGet, "/quizzes/attempts", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestLeaderboardHandler(t *testing.T) {
	svc := &mockLeaderboardService{
		getLeaderboardFn: func() ([]models.LeaderboardEntry, error) {
			return []models.LeaderboardEntry{{UserID: "a", TotalScore: 10}}, nil
		},
	}
	r := gin.New()
	r.GET("/leaderboard", NewLeaderboardHandler(svc).GetLeaderboard)

	rec := doRequest(r, http.MethodGet, "/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	board := parseJSON(t, rec)["leaderboard"].([]interface{})
	if len(board) != 1 {
		t.Errorf("unexpected board %v", board)
	}
}
