package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by a SessionStore for unknown or expired ids.
var ErrSessionNotFound = errors.New("quiz session not found")

// QuizSession links an issued question to its answer so it can be graded later.
type QuizSession struct {
	QuestionID      string    `json:"question_id"`
	CorrectAnswer   string    `json:"correct_answer"`
	ScientificName  string    `json:"scientific_name"`
	FamilyLocalized string    `json:"family_jp"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionStore keeps quiz sessions between issuance and grading.
// Sessions are not consumed by Get.
type SessionStore interface {
	Put(ctx context.Context, session *QuizSession) error
	Get(ctx context.Context, questionID string) (*QuizSession, error)
}
