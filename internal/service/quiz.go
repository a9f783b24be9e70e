package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/dto"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/metrics"
	"birdcall-quiz/internal/random"
	"birdcall-quiz/internal/taxonomy"

	"go.uber.org/zap"
)

const (
	MessageCorrect      = "正解！🎉"
	messageIncorrectFmt = "残念... 正解は「%s」でした"
)

// QuizOptions tunes question generation.
type QuizOptions struct {
	MaxRetries     int
	ChoiceCount    int
	RecordingLimit int
	TargetSpecies  []string
	// DistractorPool is the species set wrong choices are drawn from.
	// When empty, the resolved target species are used.
	DistractorPool []domain.Species
}

// QuizService issues and grades bird-call questions.
type QuizService interface {
	GenerateQuestion(ctx context.Context, voiceType string) (*dto.QuizQuestionResponse, error)
	Grade(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	TargetCount() int
}

type quizService struct {
	store    *taxonomy.Store
	source   domain.RecordingSource
	sessions domain.SessionStore
	rnd      random.Source
	opts     QuizOptions
	metrics  *metrics.QuizMetrics

	targets  []domain.Species
	selector *DistractorSelector

	newID func() string
	now   func() time.Time
}

// NewQuizService creates the quiz engine. store may be nil when the taxonomy
// failed to load; question generation then reports DATA_UNAVAILABLE while
// grading keeps working.
func NewQuizService(
	store *taxonomy.Store,
	source domain.RecordingSource,
	sessions domain.SessionStore,
	rnd random.Source,
	opts QuizOptions,
	m *metrics.QuizMetrics,
) QuizService {
	s := &quizService{
		store:    store,
		source:   source,
		sessions: sessions,
		rnd:      rnd,
		opts:     opts,
		metrics:  m,
		newID:    NewQuestionID,
		now:      time.Now,
	}
	if store != nil {
		s.targets = ResolveTargets(store, opts.TargetSpecies)
		pool := opts.DistractorPool
		if len(pool) == 0 {
			pool = s.targets
		}
		s.selector = NewDistractorSelector(pool, rnd)
	}
	return s
}

// ResolveTargets keeps the names that exist as species rank in store, in
// the given order and without duplicates. Missing names are logged.
func ResolveTargets(store *taxonomy.Store, names []string) []domain.Species {
	seen := make(map[string]struct{}, len(names))
	out := make([]domain.Species, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		sp, err := store.Lookup(name, false)
		if err != nil {
			logger.Get().Warn("Target species not found in taxonomy", zap.String("species", name))
			continue
		}
		out = append(out, *sp)
	}
	return out
}

func (s *quizService) TargetCount() int {
	return len(s.targets)
}

// GenerateQuestion draws untried target species until one has a recording,
// giving up after MaxRetries attempts or when every target was tried.
func (s *quizService) GenerateQuestion(ctx context.Context, voiceType string) (*dto.QuizQuestionResponse, error) {
	if s.store == nil {
		logger.Get().Error("Question requested but taxonomy data is not loaded")
		return nil, domain.NewDataUnavailableError()
	}
	if len(s.targets) == 0 {
		logger.Get().Error("No target species available for questions")
		return nil, domain.NewError(domain.CodeDataUnavailable, "出題対象の鳥データが見つかりません", nil)
	}

	untried := make([]int, len(s.targets))
	for i := range untried {
		untried[i] = i
	}

	var (
		chosen     *domain.Species
		recordings []domain.Recording
		attempts   int
	)
	for attempts < s.opts.MaxRetries && len(untried) > 0 {
		if ctx.Err() != nil {
			break
		}
		pick := s.rnd.IntN(len(untried))
		candidate := &s.targets[untried[pick]]
		untried[pick] = untried[len(untried)-1]
		untried = untried[:len(untried)-1]
		attempts++

		logger.Get().Info("Trying species for question",
			zap.String("species", candidate.LocalName),
			zap.String("scientific_name", candidate.ScientificName),
			zap.Int("attempt", attempts))

		recordings = s.source.Fetch(ctx, candidate, voiceType, s.opts.RecordingLimit)
		if len(recordings) > 0 {
			chosen = candidate
			break
		}
	}

	if chosen == nil {
		s.metrics.IncQuestionsExhausted(attempts)
		logger.Get().Warn("No recording found for any tried species",
			zap.Int("attempts", attempts),
			zap.String("voice_type", voiceType),
			zap.Error(ctx.Err()))
		return nil, domain.NewNoRecordingAvailableError(ctx.Err()).WithContext("attempts", attempts)
	}

	rec := recordings[s.rnd.IntN(len(recordings))]
	choices := s.buildChoices(chosen)

	session := &domain.QuizSession{
		QuestionID:      s.newID(),
		CorrectAnswer:   chosen.LocalName,
		ScientificName:  chosen.ScientificName,
		FamilyLocalized: chosen.FamilyLocalized,
		CreatedAt:       s.now(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		logger.Get().Error("Failed to store quiz session", zap.String("question_id", session.QuestionID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to store quiz session", err)
	}

	s.metrics.IncQuestionsIssued(attempts)
	return &dto.QuizQuestionResponse{
		QuestionID:     session.QuestionID,
		AudioURL:       rec.AudioURL,
		AudioSource:    rec.Source,
		CorrectAnswer:  chosen.LocalName,
		Choices:        choices,
		ScientificName: chosen.ScientificName,
		VoiceType:      rec.CallType,
		Location:       rec.Location,
		Family:         chosen.FamilyLocalized,
		Recordist:      rec.Recordist,
		LicenseURL:     rec.LicenseURL,
		XCID:           rec.ExternalID,
	}, nil
}

// buildChoices returns the correct name plus distractors in random order.
// Distractors come from the selector and are padded from the target set
// when the selector's pool is too small.
func (s *quizService) buildChoices(correct *domain.Species) []string {
	k := s.opts.ChoiceCount
	choices := make([]string, 0, k)
	choices = append(choices, correct.LocalName)
	seen := map[string]struct{}{correct.LocalName: {}}

	for _, n := range s.selector.Choose(correct.LocalName, correct.FamilyLocalized, k-1) {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		choices = append(choices, n)
	}

	if len(choices) < k {
		var extra []string
		for _, t := range s.targets {
			if _, dup := seen[t.LocalName]; !dup {
				extra = append(extra, t.LocalName)
			}
		}
		choices = append(choices, random.Sample(s.rnd, extra, k-len(choices))...)
	}

	s.rnd.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// Grade compares the answer with the stored session. Sessions are kept after
// grading, so the same answer always grades the same way.
func (s *quizService) Grade(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	session, err := s.sessions.Get(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			logger.Get().Info("Answer submitted for unknown question", zap.String("question_id", req.QuestionID))
			return nil, domain.NewUnknownQuestionError(req.QuestionID)
		}
		logger.Get().Error("Failed to load quiz session", zap.String("question_id", req.QuestionID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to load quiz session", err)
	}

	isCorrect := req.UserAnswer == session.CorrectAnswer
	s.metrics.IncAnswersGraded(isCorrect)

	message := MessageCorrect
	if !isCorrect {
		message = fmt.Sprintf(messageIncorrectFmt, session.CorrectAnswer)
	}
	return &dto.AnswerResponse{
		IsCorrect:      isCorrect,
		CorrectAnswer:  session.CorrectAnswer,
		Message:        message,
		ScientificName: session.ScientificName,
		Family:         session.FamilyLocalized,
	}, nil
}
