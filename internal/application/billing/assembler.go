// Package billing ensambla prefacturas y facturas a partir de entradas:
// elegibilidad (sin doble facturación), borradores con snapshot de líneas,
// recálculo de totales con la regla de recargo AUSTRAL, numeración
// secuencial por tipo y sellado de entradas al guardar una Prefactura.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Assembler casos de uso de documentos de facturación.
type Assembler struct {
	txRunner     TxRunner
	docRepo      repository.DocumentRepository
	entryRepo    repository.EntryRepository
	deliveryRepo repository.DeliveryRepository
	clientRepo   repository.ClientRepository
}

// NewAssembler construye el caso de uso.
func NewAssembler(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	entryRepo repository.EntryRepository,
	deliveryRepo repository.DeliveryRepository,
	clientRepo repository.ClientRepository,
) *Assembler {
	return &Assembler{
		txRunner:     txRunner,
		docRepo:      docRepo,
		entryRepo:    entryRepo,
		deliveryRepo: deliveryRepo,
		clientRepo:   clientRepo,
	}
}

// ListInvoiceable devuelve las entradas elegibles para un documento nuevo:
// estado Entregada o Prefacturado y sin aparecer en ningún documento ya
// guardado.
func (a *Assembler) ListInvoiceable(ctx context.Context) ([]dto.InvoiceableEntryResponse, error) {
	entries, err := a.entryRepo.List()
	if err != nil {
		return nil, err
	}
	billed, err := a.billedSet()
	if err != nil {
		return nil, err
	}
	var out []dto.InvoiceableEntryResponse
	for _, e := range entries {
		if e.Status != entity.StatusEntregada && e.Status != entity.StatusPrefacturado {
			continue
		}
		if billed[e.Code] {
			continue
		}
		qty := 0
		descriptions := make([]string, 0, len(e.Items))
		for _, item := range e.Items {
			qty += quantity.Sum(item.SizeQuantities)
			descriptions = append(descriptions, item.Description)
		}
		out = append(out, dto.InvoiceableEntryResponse{
			Code:        e.Code,
			Date:        e.Date.Format(dateLayout),
			Description: strings.Join(descriptions, " + "),
			Qty:         qty,
			Status:      e.Status,
			Client:      e.Client,
		})
	}
	return out, nil
}

func (a *Assembler) billedSet() (map[int]bool, error) {
	codes, err := a.docRepo.BilledEntryCodes()
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set, nil
}

// CreateDraft ensambla un borrador a partir de las entradas seleccionadas.
// Todas deben pertenecer al mismo cliente (lo fija la primera) y ninguna
// puede estar ya facturada. El borrador no se persiste: se devuelve con ID
// "new-draft" para edición en cliente.
func (a *Assembler) CreateDraft(ctx context.Context, in dto.CreateDraftRequest) (*dto.DocumentDTO, error) {
	if len(in.EntryCodes) == 0 {
		return nil, domain.ErrNoItems
	}
	if in.DocumentType != entity.DocumentTypePrefactura && in.DocumentType != entity.DocumentTypeFactura {
		return nil, domain.ErrInvalidInput
	}
	billed, err := a.billedSet()
	if err != nil {
		return nil, err
	}

	var (
		clientName string
		items      []entity.DocumentItem
	)
	for _, code := range in.EntryCodes {
		if billed[code] {
			return nil, domain.ErrAlreadyBilled
		}
		entry, err := a.entryRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, domain.ErrNotFound
		}
		if clientName == "" {
			clientName = entry.Client
		}
		deliveries, err := a.deliveryRepo.ListByEntry(code)
		if err != nil {
			return nil, err
		}
		for _, item := range entry.Items {
			recibida, _, falta := quantity.ItemTotals(item, deliveries)
			docItem := entity.DocumentItem{
				EntryCode:        code,
				ProductCode:      item.ProductID,
				Description:      item.Description,
				Reference1:       item.Reference1,
				Reference2:       item.Reference2,
				ClientName:       entry.Client,
				RecibidaQuantity: recibida,
				// Se factura lo encargado: la línea sale por la cantidad
				// recibida aunque queden unidades por entregar.
				EntregadaQuantity: recibida,
				FaltaQuantity:     falta,
				Status:            entry.Status,
				DeliveryBreakdown: quantity.BreakdownForItem(item, deliveries),
				UnitPrice:         item.UnitPrice,
			}
			docItem.Total = LineTotal(docItem)
			items = append(items, docItem)
		}
	}
	if clientName == "" {
		return nil, domain.ErrNoClient
	}
	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}

	client, err := a.clientRepo.GetByName(clientName)
	if err != nil {
		return nil, err
	}
	clientID := ""
	if client != nil {
		clientID = client.ID
	}

	doc := &entity.Document{
		ID:           entity.DraftDocumentID,
		DocumentType: in.DocumentType,
		ClientID:     clientID,
		Date:         time.Now(),
		Items:        items,
		TaxRate:      in.TaxRate,
	}
	doc.Subtotal, doc.Surcharge, doc.TaxAmount, doc.Total = Totals(items, clientName, in.TaxRate)

	start, end, err := resolveDateRange(in.DateRange, in.StartDate, in.EndDate, time.Now())
	if err != nil {
		return nil, err
	}
	doc.StartDate, doc.EndDate = start, end

	return toDocumentDTO(doc), nil
}

// resolveDateRange traduce un preset relativo a fechas absolutas en el
// momento de crear el borrador; "all" o vacío no fija periodo.
func resolveDateRange(preset, startStr, endStr string, now time.Time) (*time.Time, *time.Time, error) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch preset {
	case "", dto.DateRangeAll:
		return nil, nil, nil
	case dto.DateRangeToday:
		d := day(now)
		return &d, &d, nil
	case dto.DateRangeYesterday:
		d := day(now.AddDate(0, 0, -1))
		return &d, &d, nil
	case dto.DateRangeLast7:
		start, end := day(now.AddDate(0, 0, -7)), day(now)
		return &start, &end, nil
	case dto.DateRangeLast15:
		start, end := day(now.AddDate(0, 0, -15)), day(now)
		return &start, &end, nil
	case dto.DateRangeLast30:
		start, end := day(now.AddDate(0, 0, -30)), day(now)
		return &start, &end, nil
	case dto.DateRangeCustom:
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		return &start, &end, nil
	default:
		return nil, nil, domain.ErrInvalidInput
	}
}

// NextDocumentNumber calcula el siguiente número para un tipo: prefijo
// PF-/F- y sufijo max+1 con relleno a 4 dígitos.
func (a *Assembler) NextDocumentNumber(documentType string) (string, error) {
	prefix := "F"
	if documentType == entity.DocumentTypePrefactura {
		prefix = "PF"
	}
	max, err := a.docRepo.MaxNumberSuffix(documentType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, max+1), nil
}

// SaveDocument persiste un documento. Un borrador (ID "new-draft") recibe
// UUID y número secuencial; un documento existente se reemplaza. Guardar
// una Prefactura sella sus entradas origen como Prefacturado en la misma
// transacción.
func (a *Assembler) SaveDocument(ctx context.Context, in dto.DocumentDTO) (*dto.DocumentDTO, error) {
	doc, err := fromDocumentDTO(in)
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	clientName := doc.Items[0].ClientName
	Recalculate(doc, clientName)

	isNew := doc.ID == "" || doc.ID == entity.DraftDocumentID
	now := time.Now()
	if isNew {
		doc.ID = uuid.New().String()
		doc.CreatedAt = now
		number, err := a.NextDocumentNumber(doc.DocumentType)
		if err != nil {
			return nil, err
		}
		doc.DocumentNumber = number
	}
	doc.UpdatedAt = now

	err = a.txRunner.RunBilling(ctx, func(
		docRepo repository.DocumentRepository,
		entryRepo repository.EntryRepository,
	) error {
		if isNew {
			if err := docRepo.Create(doc); err != nil {
				return err
			}
		} else {
			if err := docRepo.Update(doc); err != nil {
				return err
			}
		}
		if doc.DocumentType != entity.DocumentTypePrefactura {
			return nil
		}
		stamped := make(map[int]bool)
		for _, item := range doc.Items {
			if stamped[item.EntryCode] {
				continue
			}
			stamped[item.EntryCode] = true
			if err := entryRepo.UpdateStatus(item.EntryCode, entity.StatusPrefacturado); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDocumentDTO(doc), nil
}

// Get obtiene un documento guardado.
func (a *Assembler) Get(ctx context.Context, id string) (*dto.DocumentDTO, error) {
	doc, err := a.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentDTO(doc), nil
}

// List lista los documentos guardados.
func (a *Assembler) List(ctx context.Context) ([]dto.DocumentDTO, error) {
	docs, err := a.docRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentDTO(d))
	}
	return out, nil
}

// Delete elimina un documento; sus entradas vuelven a ser elegibles.
func (a *Assembler) Delete(ctx context.Context, id string) error {
	return a.docRepo.Delete(id)
}

// DeleteMany elimina varios documentos.
func (a *Assembler) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	return a.docRepo.DeleteMany(ids)
}

func toDocumentDTO(doc *entity.Document) *dto.DocumentDTO {
	items := make([]dto.DocumentItemDTO, 0, len(doc.Items))
	for _, it := range doc.Items {
		breakdown := make([]dto.BreakdownResponse, 0, len(it.DeliveryBreakdown))
		for _, b := range it.DeliveryBreakdown {
			breakdown = append(breakdown, dto.BreakdownResponse{Date: b.Date, Qty: b.Qty})
		}
		items = append(items, dto.DocumentItemDTO{
			EntryCode:         it.EntryCode,
			ProductCode:       it.ProductCode,
			Description:       it.Description,
			Reference1:        it.Reference1,
			Reference2:        it.Reference2,
			ClientName:        it.ClientName,
			RecibidaQuantity:  it.RecibidaQuantity,
			EntregadaQuantity: it.EntregadaQuantity,
			FaltaQuantity:     it.FaltaQuantity,
			Status:            it.Status,
			DeliveryBreakdown: breakdown,
			UnitPrice:         it.UnitPrice,
			Total:             it.Total,
		})
	}
	out := &dto.DocumentDTO{
		ID:             doc.ID,
		DocumentNumber: doc.DocumentNumber,
		DocumentType:   doc.DocumentType,
		ClientID:       doc.ClientID,
		Date:           doc.Date.Format(dateLayout),
		Items:          items,
		Subtotal:       doc.Subtotal,
		Surcharge:      doc.Surcharge,
		TaxRate:        doc.TaxRate,
		TaxAmount:      doc.TaxAmount,
		Total:          doc.Total,
	}
	if doc.StartDate != nil {
		out.StartDate = doc.StartDate.Format(dateLayout)
	}
	if doc.EndDate != nil {
		out.EndDate = doc.EndDate.Format(dateLayout)
	}
	return out
}

func fromDocumentDTO(in dto.DocumentDTO) (*entity.Document, error) {
	date := time.Now()
	if in.Date != "" {
		parsed, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = parsed
	}
	items := make([]entity.DocumentItem, 0, len(in.Items))
	for _, it := range in.Items {
		breakdown := make([]entity.DeliveryBreakdown, 0, len(it.DeliveryBreakdown))
		for _, b := range it.DeliveryBreakdown {
			breakdown = append(breakdown, entity.DeliveryBreakdown{Date: b.Date, Qty: b.Qty})
		}
		items = append(items, entity.DocumentItem{
			EntryCode:         it.EntryCode,
			ProductCode:       it.ProductCode,
			Description:       it.Description,
			Reference1:        it.Reference1,
			Reference2:        it.Reference2,
			ClientName:        it.ClientName,
			RecibidaQuantity:  it.RecibidaQuantity,
			EntregadaQuantity: it.EntregadaQuantity,
			FaltaQuantity:     it.FaltaQuantity,
			Status:            it.Status,
			DeliveryBreakdown: breakdown,
			UnitPrice:         it.UnitPrice,
			Total:             it.Total,
		})
	}
	doc := &entity.Document{
		ID:             in.ID,
		DocumentNumber: in.DocumentNumber,
		DocumentType:   in.DocumentType,
		ClientID:       in.ClientID,
		Date:           date,
		Items:          items,
		Subtotal:       in.Subtotal,
		Surcharge:      in.Surcharge,
		TaxRate:        in.TaxRate,
		TaxAmount:      in.TaxAmount,
		Total:          in.Total,
	}
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		doc.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		doc.EndDate = &t
	}
	if doc.DocumentType != entity.DocumentTypePrefactura && doc.DocumentType != entity.DocumentTypeFactura {
		return nil, domain.ErrInvalidInput
	}
	return doc, nil
}
