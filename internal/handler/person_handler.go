package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

// PersonHandler handles HTTP requests for person detail.
type PersonHandler struct {
	svc *service.CatalogService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(svc *service.CatalogService) *PersonHandler {
	return &PersonHandler{svc: svc}
}

// GetPerson returns the aggregated detail document for one person.
// Same parameter-free contract as movie detail.
// @Summary Get person detail
// @Tags people
// @Produce json
// @Param id path string true "Person identifier"
// @Success 200 {object} models.PersonDetail
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /people/{id} [get]
func (h *PersonHandler) GetPerson(c fiber.Ctx) error {
	if msg, stray := strayQueryParams(c); stray {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: msg})
	}

	detail, err := h.svc.GetPersonDetail(c.Params("id"))
	if err != nil {
		return respondError(c, err, "No record exists of a person with this ID")
	}
	return c.JSON(detail)
}
