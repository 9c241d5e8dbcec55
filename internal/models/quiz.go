package models

import "time"

// Question is a single multiple-choice question. Correct is a zero-based
// index into Options.
type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is an ordered list of questions.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Public returns a copy of the quiz with the answer key and explanations removed.
func (q Quiz) Public() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Correct = 0
		question.Explanation = ""
		question.Options = append([]string{}, question.Options...)
		out.Questions[i] = question
	}
	return out
}

// QuestionResult is the grading of one answer slot.
type QuestionResult struct {
	QuestionID  string `json:"question_id"`
	UserAnswer  *int   `json:"user_answer"`
	Correct     int    `json:"correct"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// QuizResult is the outcome of grading a full attempt.
type QuizResult struct {
	Score   int              `json:"score"`
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Results []QuestionResult `json:"results"`
}

// QuizAttempt is an immutable record of a submitted quiz.
type QuizAttempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	QuizID    string    `json:"quiz_id"`
	Answers   []*int    `json:"answers"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
