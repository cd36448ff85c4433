package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/billing"
	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// DocumentHandler maneja prefacturas y facturas (protegido).
type DocumentHandler struct {
	assembler *billing.Assembler
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(assembler *billing.Assembler) *DocumentHandler {
	return &DocumentHandler{assembler: assembler}
}

// ListInvoiceable godoc
// @Summary      Listar entradas elegibles para facturar
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvoiceableEntryResponse
// @Router       /api/documents/invoiceable [get]
func (h *DocumentHandler) ListInvoiceable(c *fiber.Ctx) error {
	out, err := h.assembler.ListInvoiceable(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// CreateDraft godoc
// @Summary      Ensamblar un borrador a partir de entradas
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  true  "Entradas y parámetros"
// @Success      200   {object}  dto.DocumentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/draft [post]
func (h *DocumentHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.EntryCodes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entry_codes no puede estar vacío"})
	}
	out, err := h.assembler.CreateDraft(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar documento (borrador nuevo o edición)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentDTO  true  "Documento completo"
// @Success      200   {object}  dto.DocumentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Save(c *fiber.Ctx) error {
	var in dto.DocumentDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.assembler.SaveDocument(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos guardados
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DocumentDTO
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.assembler.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener documento por ID
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.assembler.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// NextNumber godoc
// @Summary      Próximo número de documento para un tipo
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  true  "Prefactura o Factura"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/next-number [get]
func (h *DocumentHandler) NextNumber(c *fiber.Ctx) error {
	documentType := c.Query("type")
	if documentType != entity.DocumentTypePrefactura && documentType != entity.DocumentTypeFactura {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser Prefactura o Factura"})
	}
	number, err := h.assembler.NextDocumentNumber(documentType)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"document_number": number})
}

// Delete godoc
// @Summary      Eliminar documento (las entradas vuelven a ser facturables)
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.assembler.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMany godoc
// @Summary      Eliminar documentos en lote
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.DeleteManyIDsRequest  true  "IDs a eliminar"
// @Success      204
// @Router       /api/documents [delete]
func (h *DocumentHandler) DeleteMany(c *fiber.Ctx) error {
	var in dto.DeleteManyIDsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids no puede estar vacío"})
	}
	if err := h.assembler.DeleteMany(c.Context(), in.IDs); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
