package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/catalog"
	"github.com/hawlader/taller-api/internal/application/dto"
)

// CompanyHandler maneja los datos de la empresa emisora (protegido).
type CompanyHandler struct {
	uc *catalog.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *catalog.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener datos de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar datos de la empresa
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CompanyDetailsRequest  true  "Datos de la empresa"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	var in dto.CompanyDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if err := h.uc.Save(in); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
