package handler

import (
	"context"
	"time"

	"birdcall-quiz/internal/dto"
	"birdcall-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	ServiceName    = "鳥の鳴き声クイズ API"
	ServiceVersion = "1.0.0"
)

// LimiterStatus is the read-only view of the upstream rate limiter.
type LimiterStatus interface {
	TimeUntilReady() time.Duration
	MinInterval() time.Duration
}

// Pinger checks a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusInfo is fixed at startup.
type StatusInfo struct {
	AudioSource      string
	RecordingSource  string
	APIKeyConfigured bool
	TaxonomyLoaded   bool
	SpeciesCount     int
	TargetCount      int
	SessionBackend   string
	// SessionPinger is nil for in-process stores.
	SessionPinger Pinger
}

// StatusHandler serves the banner, health and rate-limit endpoints. They
// always answer 200.
type StatusHandler struct {
	info    StatusInfo
	limiter LimiterStatus
}

func NewStatusHandler(info StatusInfo, limiter LimiterStatus) *StatusHandler {
	return &StatusHandler{info: info, limiter: limiter}
}

// Root godoc
// @Summary Service banner
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *StatusHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message:     ServiceName,
		Version:     ServiceVersion,
		AudioSource: h.info.AudioSource,
	})
}

// Health godoc
// @Summary Health check
// @Tags status
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *StatusHandler) Health(c *fiber.Ctx) error {
	res := dto.HealthResponse{
		Status: "healthy",
		DataLoaded: dto.DataLoadedStatus{
			Taxonomy:     h.info.TaxonomyLoaded,
			SpeciesCount: h.info.SpeciesCount,
			TargetCount:  h.info.TargetCount,
		},
		RateLimiter: dto.RateLimiterHealth{
			NextRequestWait: h.limiter.TimeUntilReady().Seconds(),
		},
		XenoCanto: dto.XenoCantoAPIStatus{
			Version:          "v3",
			APIKeyConfigured: h.info.APIKeyConfigured,
		},
		RecordingSource: h.info.RecordingSource,
	}
	if !h.info.TaxonomyLoaded {
		res.Status = "degraded"
	}

	if h.info.SessionPinger != nil {
		st := &dto.SessionStoreStatus{Backend: h.info.SessionBackend, Healthy: true}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.info.SessionPinger.Ping(ctx); err != nil {
			logger.Get().Warn("Session store ping failed", zap.Error(err))
			st.Healthy = false
			st.Error = err.Error()
			res.Status = "degraded"
		}
		res.SessionStore = st
	}
	return c.JSON(res)
}

// RateLimitStatus godoc
// @Summary Upstream rate limiter state
// @Tags status
// @Produce json
// @Success 200 {object} dto.RateLimitStatusResponse
// @Router /rate-limit/status [get]
func (h *StatusHandler) RateLimitStatus(c *fiber.Ctx) error {
	wait := h.limiter.TimeUntilReady()
	return c.JSON(dto.RateLimitStatusResponse{
		XenoCanto: dto.RateLimitStatus{
			MinIntervalSeconds:     h.limiter.MinInterval().Seconds(),
			NextRequestWaitSeconds: wait.Seconds(),
			Ready:                  wait == 0,
		},
	})
}
