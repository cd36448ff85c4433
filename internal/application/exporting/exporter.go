// Package exporting produce las representaciones descargables: PDF y XML
// de documentos de facturación, y CSV del listado de entradas.
package exporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

// PDFGenerator renderiza un documento de facturación como PDF.
type PDFGenerator interface {
	Generate(doc *entity.Document, company *entity.CompanyDetails, client *entity.Client) ([]byte, error)
}

// XMLGenerator serializa un documento de facturación como factura electrónica.
type XMLGenerator interface {
	Build(doc *entity.Document, company *entity.CompanyDetails, client *entity.Client) ([]byte, error)
}

// Exporter resuelve el documento y sus partes y delega en los generadores.
type Exporter struct {
	docRepo      repository.DocumentRepository
	entryRepo    repository.EntryRepository
	deliveryRepo repository.DeliveryRepository
	companyRepo  repository.CompanyRepository
	clientRepo   repository.ClientRepository
	pdf          PDFGenerator
	xml          XMLGenerator
}

// NewExporter construye el servicio de exportación.
func NewExporter(
	docRepo repository.DocumentRepository,
	entryRepo repository.EntryRepository,
	deliveryRepo repository.DeliveryRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	pdf PDFGenerator,
	xml XMLGenerator,
) *Exporter {
	return &Exporter{
		docRepo:      docRepo,
		entryRepo:    entryRepo,
		deliveryRepo: deliveryRepo,
		companyRepo:  companyRepo,
		clientRepo:   clientRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// DocumentPDF genera el PDF del documento indicado.
func (e *Exporter) DocumentPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, company, client, err := e.resolve(id)
	if err != nil {
		return nil, "", err
	}
	out, err := e.pdf.Generate(doc, company, client)
	if err != nil {
		return nil, "", err
	}
	return out, doc.DocumentNumber + ".pdf", nil
}

// DocumentXML genera el XML UBL del documento indicado.
func (e *Exporter) DocumentXML(ctx context.Context, id string) ([]byte, string, error) {
	doc, company, client, err := e.resolve(id)
	if err != nil {
		return nil, "", err
	}
	out, err := e.xml.Build(doc, company, client)
	if err != nil {
		return nil, "", err
	}
	return out, doc.DocumentNumber + ".xml", nil
}

// resolve carga documento, empresa y cliente. Empresa y cliente pueden
// faltar; los generadores lo toleran.
func (e *Exporter) resolve(id string) (*entity.Document, *entity.CompanyDetails, *entity.Client, error) {
	doc, err := e.docRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("exportar documento: %w", err)
	}
	if doc == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	company, err := e.companyRepo.Get()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("exportar documento: empresa: %w", err)
	}
	var client *entity.Client
	if doc.ClientID != "" {
		client, err = e.clientRepo.GetByID(doc.ClientID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("exportar documento: cliente: %w", err)
		}
	}
	return doc, company, client, nil
}

var entriesCSVHeader = []string{
	"codigo", "fecha", "cliente", "estado", "recibida", "entregada", "falta",
}

// EntriesCSV serializa todas las entradas con sus cantidades agregadas.
func (e *Exporter) EntriesCSV(ctx context.Context) ([]byte, error) {
	entries, err := e.entryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("exportar entradas: %w", err)
	}
	deliveries, err := e.deliveryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("exportar entradas: entregas: %w", err)
	}
	byEntry := make(map[int][]entity.Delivery)
	for _, d := range deliveries {
		byEntry[d.Code] = append(byEntry[d.Code], d)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entriesCSVHeader); err != nil {
		return nil, fmt.Errorf("exportar entradas: %w", err)
	}
	for _, entry := range entries {
		recibida, delivered, remaining := quantity.EntryTotals(entry, byEntry[entry.Code])
		record := []string{
			strconv.Itoa(entry.Code),
			entry.Date.Format("2006-01-02"),
			entry.Client,
			entry.Status,
			strconv.Itoa(recibida),
			strconv.Itoa(delivered),
			strconv.Itoa(remaining),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("exportar entradas: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportar entradas: %w", err)
	}
	return buf.Bytes(), nil
}

var documentsCSVHeader = []string{
	"numero", "tipo", "fecha", "subtotal", "recargo", "iva", "total",
}

// DocumentsCSV serializa todos los documentos guardados con sus importes.
func (e *Exporter) DocumentsCSV(ctx context.Context) ([]byte, error) {
	docs, err := e.docRepo.List()
	if err != nil {
		return nil, fmt.Errorf("exportar documentos: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(documentsCSVHeader); err != nil {
		return nil, fmt.Errorf("exportar documentos: %w", err)
	}
	for _, doc := range docs {
		record := []string{
			doc.DocumentNumber,
			doc.DocumentType,
			doc.Date.Format("2006-01-02"),
			doc.Subtotal.StringFixed(2),
			doc.Surcharge.StringFixed(2),
			doc.TaxAmount.StringFixed(2),
			doc.Total.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("exportar documentos: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportar documentos: %w", err)
	}
	return buf.Bytes(), nil
}
