package handler

import (
	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/dto"
	"birdcall-quiz/internal/middleware"
	"birdcall-quiz/internal/service"
	"birdcall-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the read-only taxonomy endpoints.
type CatalogHandler struct {
	service   service.CatalogService
	validator *validation.Validator
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ListSpecies godoc
// @Summary List species
// @Description Species-rank records in checklist order
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.SpeciesListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /species [get]
func (h *CatalogHandler) ListSpecies(c *fiber.Ctx) error {
	res, err := h.service.ListSpecies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ListFamilies godoc
// @Summary List families
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.FamilyListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /families [get]
func (h *CatalogHandler) ListFamilies(c *fiber.Ctx) error {
	res, err := h.service.ListFamilies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetBird godoc
// @Summary Bird detail
// @Tags catalog
// @Produce json
// @Param name path string true "Japanese name"
// @Success 200 {object} dto.BirdDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bird/{name} [get]
func (h *CatalogHandler) GetBird(c *fiber.Ctx) error {
	name, _ := c.Locals(middleware.LocalSpeciesName).(string)
	res, err := h.service.GetBird(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Search godoc
// @Summary Search a bird
// @Description Taxonomy info plus recordings from the configured source
// @Tags catalog
// @Accept json
// @Produce json
// @Param search body dto.SearchRequest true "Search parameters"
// @Success 200 {object} dto.BirdInfoResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /search [post]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errors := h.validator.ValidateSearchRequest(req.SpeciesName, req.VoiceType, req.Limit); len(errors) > 0 {
		return errors
	}

	res, err := h.service.Search(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
