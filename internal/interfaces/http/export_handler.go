package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/exporting"
)

// ExportHandler sirve las descargas: CSV de entradas y PDF/XML de documentos.
type ExportHandler struct {
	exporter *exporting.Exporter
}

// NewExportHandler construye el handler.
func NewExportHandler(exporter *exporting.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// EntriesCSV godoc
// @Summary      Descargar todas las entradas en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/entries.csv [get]
func (h *ExportHandler) EntriesCSV(c *fiber.Ctx) error {
	out, err := h.exporter.EntriesCSV(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="entradas.csv"`)
	return c.Send(out)
}

// DocumentsCSV godoc
// @Summary      Descargar todos los documentos en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/documents.csv [get]
func (h *ExportHandler) DocumentsCSV(c *fiber.Ctx) error {
	out, err := h.exporter.DocumentsCSV(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="documentos.csv"`)
	return c.Send(out)
}

// DocumentPDF godoc
// @Summary      Descargar el PDF de un documento
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *ExportHandler) DocumentPDF(c *fiber.Ctx) error {
	out, filename, err := h.exporter.DocumentPDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// DocumentXML godoc
// @Summary      Descargar el XML UBL de un documento
// @Tags         export
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/xml [get]
func (h *ExportHandler) DocumentXML(c *fiber.Ctx) error {
	out, filename, err := h.exporter.DocumentXML(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
