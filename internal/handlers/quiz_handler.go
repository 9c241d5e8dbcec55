package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/services"
)

// QuizHandler handles quiz requests.
type QuizHandler struct {
	quizService services.QuizServicer
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService services.QuizServicer) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitAttemptRequest carries one answer slot per question. A null slot
// is an unanswered question.
type SubmitAttemptRequest struct {
	Answers []*int `json:"answers" binding:"required"`
}

// ListQuizzes handles listing quizzes.
// @Summary     List quizzes
// @Tags        quizzes
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Quiz "Quizzes without answer keys"
// @Router      /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quizzes": h.quizService.ListQuizzes()})
}

// GetQuiz handles retrieving one quiz.
// @Summary     Get quiz
// @Tags        quizzes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Quiz ID"
// @Success     200 {object} models.Quiz "Quiz without answer key"
// @Failure     404 {object} ErrorResponse "Quiz not found"
// @Router      /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetQuiz(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}

// SubmitAttempt handles grading a quiz attempt.
// @Summary     Submit quiz attempt
// @Description Grade the answers, record the attempt, and credit the leaderboard
// @Tags        quizzes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Quiz ID"
// @Param       request body SubmitAttemptRequest true "Answers"
// @Success     201 {object} services.QuizSubmission "Graded attempt"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Quiz not found"
// @Router      /quizzes/{id}/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitAttemptRequest
	if !bindJSON(c, &req) {
		return
	}

	submission, err := h.quizService.SubmitAttempt(c.Request.Context(), userID, c.Param("id"), req.Answers)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListAttempts handles listing the user's attempts.
// @Summary     List my quiz attempts
// @Tags        quizzes
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.QuizAttempt "Attempts"
// @Router      /quizzes/attempts [get]
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	attempts, err := h.quizService.ListAttempts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}
