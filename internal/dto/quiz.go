package dto

// QuizQuestionResponse is an issued question.
// @Description Quiz question with one playable recording
type QuizQuestionResponse struct {
	QuestionID     string   `json:"question_id"`
	AudioURL       string   `json:"audio_url"`
	AudioSource    string   `json:"audio_source"`
	CorrectAnswer  string   `json:"correct_answer"`
	Choices        []string `json:"choices"`
	ScientificName string   `json:"scientific_name,omitempty"`
	VoiceType      string   `json:"voice_type,omitempty"`
	Location       string   `json:"location,omitempty"`
	Family         string   `json:"family,omitempty"`
	Recordist      string   `json:"recordist,omitempty"`
	LicenseURL     string   `json:"license_url,omitempty"`
	XCID           string   `json:"xc_id,omitempty"`
}

// AnswerRequest is the body of POST /api/quiz/answer.
// @Description Request body for grading an answer
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// AnswerResponse is the grading result.
type AnswerResponse struct {
	IsCorrect      bool   `json:"is_correct"`
	CorrectAnswer  string `json:"correct_answer"`
	Message        string `json:"message"`
	ScientificName string `json:"scientific_name,omitempty"`
	Family         string `json:"family,omitempty"`
}
