package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/application/orders"
)

// EntryHandler maneja las peticiones HTTP para entradas (protegido).
type EntryHandler struct {
	uc *orders.UseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *orders.UseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

func paramCode(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("code"))
}

// Create godoc
// @Summary      Registrar entrada
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Entrada con líneas"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la entrada necesita al menos una línea"})
	}
	out, err := h.uc.AddEntry(c.Context(), GetUsername(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListEntries(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ListFalta godoc
// @Summary      Listar entradas con cantidades pendientes
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries/falta [get]
func (h *EntryHandler) ListFalta(c *fiber.Ctx) error {
	out, err := h.uc.ListFalta(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una entrada con desglose de entregas
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        code  path  int  true  "Código de la entrada"
// @Success      200   {object}  dto.EntryDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries/{code} [get]
func (h *EntryHandler) Get(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	out, err := h.uc.GetEntry(c.Context(), code)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar entrada
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  int                     true  "Código de la entrada"
// @Param        body  body  dto.UpdateEntryRequest  true  "Entrada completa"
// @Success      200   {object}  dto.EntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries/{code} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateEntry(c.Context(), code, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una entrada a mano
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Param        code  path  int                           true  "Código de la entrada"
// @Param        body  body  dto.UpdateEntryStatusRequest  true  "Nuevo estado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{code}/status [patch]
func (h *EntryHandler) UpdateStatus(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	var in dto.UpdateEntryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateEntryStatus(c.Context(), code, in.Status); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar entrada y sus entregas
// @Tags         entries
// @Security     Bearer
// @Param        code  path  int  true  "Código de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{code} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	code, err := paramCode(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	if err := h.uc.DeleteEntry(c.Context(), code); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMany godoc
// @Summary      Eliminar entradas en lote
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.DeleteManyRequest  true  "Códigos a eliminar"
// @Success      204
// @Router       /api/entries [delete]
func (h *EntryHandler) DeleteMany(c *fiber.Ctx) error {
	var in dto.DeleteManyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Codes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codes no puede estar vacío"})
	}
	if err := h.uc.DeleteEntries(c.Context(), in.Codes); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recompute godoc
// @Summary      Recalcular los estados derivables de todas las entradas
// @Tags         entries
// @Security     Bearer
// @Success      204
// @Router       /api/entries/recompute-statuses [post]
func (h *EntryHandler) Recompute(c *fiber.Ctx) error {
	if err := h.uc.RecomputeAllStatuses(c.Context()); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
