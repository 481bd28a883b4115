package institution

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/services"
	"github.com/okravets/institutions-api/utils/middleware"
	"github.com/okravets/institutions-api/utils/response"
	"github.com/okravets/institutions-api/utils/validation"
)

// InstitutionHandler maps the REST surface onto the institution service.
// Bodies on this surface are the raw wire objects, not the envelope the
// rest of the API uses, and an absent id is a 404 with an empty body.
type InstitutionHandler struct {
	service   *services.InstitutionService
	audit     *services.AuditService
	validator *validation.Validator
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(service *services.InstitutionService, audit *services.AuditService) *InstitutionHandler {
	return &InstitutionHandler{
		service:   service,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// ListInstitutions handles GET /institutions
func (h *InstitutionHandler) ListInstitutions(c *fiber.Ctx) error {
	institutions, err := h.service.ReadAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch institutions")
	}

	return c.Status(fiber.StatusOK).JSON(institutions)
}

// GetInstitution handles GET /institutions/:id
func (h *InstitutionHandler) GetInstitution(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	institution, err := h.service.ReadByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return notFound(c)
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}

	return c.Status(fiber.StatusOK).JSON(institution)
}

// CreateInstitution handles POST /institutions
func (h *InstitutionHandler) CreateInstitution(c *fiber.Ctx) error {
	var req services.InstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sanitizeRequest(&req)

	institution, err := h.service.Create(req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create institution")
	}

	actor, _ := middleware.GetPrincipal(c)
	h.audit.Record(actor, "institution_create", institution.ID, nil, institution)

	return c.Status(fiber.StatusCreated).JSON(institution)
}

// UpdateInstitution handles PUT /institutions/:id
func (h *InstitutionHandler) UpdateInstitution(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var req services.InstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	sanitizeRequest(&req)

	previous, err := h.service.ReadByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return notFound(c)
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}

	institution, err := h.service.UpdateByID(id, req)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return notFound(c)
		}
		return response.InternalServerError(c, "Failed to update institution")
	}

	actor, _ := middleware.GetPrincipal(c)
	h.audit.Record(actor, "institution_update", id, previous, institution)

	return c.Status(fiber.StatusOK).JSON(institution)
}

// DeleteInstitution handles DELETE /institutions/:id. The response body is
// the aggregate as it was immediately before deletion.
func (h *InstitutionHandler) DeleteInstitution(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	institution, err := h.service.DeleteByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return notFound(c)
		}
		return response.InternalServerError(c, "Failed to delete institution")
	}

	actor, _ := middleware.GetPrincipal(c)
	h.audit.Record(actor, "institution_delete", id, institution, nil)

	return c.Status(fiber.StatusOK).JSON(institution)
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// notFound responds 404 with an empty body, as the wire contract requires.
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return nil
}

func sanitizeRequest(req *services.InstitutionRequest) {
	req.Name = validation.SanitizeString(req.Name)
	req.AccreditationLevel = validation.SanitizeString(req.AccreditationLevel)
	req.Address = validation.SanitizeString(req.Address)
	req.Website = validation.SanitizeString(req.Website)
	req.Disciplines.Name = validation.SanitizeString(req.Disciplines.Name)
	req.Disciplines.Institution = validation.SanitizeString(req.Disciplines.Institution)
	req.Disciplines.SpecialityCode = validation.SanitizeString(req.Disciplines.SpecialityCode)
}
