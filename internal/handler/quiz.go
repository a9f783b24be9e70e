package handler

import (
	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/dto"
	"birdcall-quiz/internal/middleware"
	"birdcall-quiz/internal/service"
	"birdcall-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetQuestion godoc
// @Summary Get a quiz question
// @Description Picks a target species with an available recording and returns four choices
// @Tags quiz
// @Produce json
// @Param voice_type query string false "xeno-canto call type, e.g. song or call"
// @Success 200 {object} dto.QuizQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/question [get]
func (h *QuizHandler) GetQuestion(c *fiber.Ctx) error {
	voiceType, _ := c.Locals(middleware.LocalVoiceType).(string)

	question, err := h.service.GenerateQuestion(c.UserContext(), voiceType)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// SubmitAnswer godoc
// @Summary Grade an answer
// @Description Compares the answer with the stored question. Grading does not consume the question.
// @Tags quiz
// @Accept json
// @Produce json
// @Param answer body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/answer [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errors := h.validator.ValidateAnswerRequest(req.QuestionID, req.UserAnswer); len(errors) > 0 {
		return errors
	}

	result, err := h.service.Grade(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
