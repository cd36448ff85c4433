// Package orders es el agregado de entradas y entregas: altas y ediciones
// con reprocesado de catálogo, validación de cantidades pendientes,
// recálculo de estado y borrado en cascada.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hawlader/taller-api/internal/application/catalog"
	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

// dateLayout formato de fechas de entrada/entrega en la API.
const dateLayout = "2006-01-02"

// UseCase operaciones sobre el agregado entradas/entregas.
type UseCase struct {
	txRunner     TxRunner
	entryRepo    repository.EntryRepository
	deliveryRepo repository.DeliveryRepository
	productRepo  repository.ProductRepository
	clientRepo   repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	entryRepo repository.EntryRepository,
	deliveryRepo repository.DeliveryRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		deliveryRepo: deliveryRepo,
		productRepo:  productRepo,
		clientRepo:   clientRepo,
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// AddEntry procesa las líneas contra el catálogo, asigna el siguiente
// código (max+1, 1 si no hay entradas), fuerza estado Recibida y persiste
// entrada y productos nuevos en una sola transacción.
func (uc *UseCase) AddEntry(ctx context.Context, username string, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if len(in.Items) == 0 || in.Client == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByName(in.Client)
	if err != nil {
		return nil, err
	}
	cat, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	items, newProducts, err := catalog.ProcessItems(in.Items, client, cat)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var entry *entity.Entry
	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		deliveryRepo repository.DeliveryRepository,
		productRepo repository.ProductRepository,
	) error {
		if len(newProducts) > 0 {
			if err := productRepo.CreateMany(newProducts); err != nil {
				return err
			}
		}
		maxCode, err := entryRepo.MaxCode()
		if err != nil {
			return err
		}
		entry = &entity.Entry{
			Code:      maxCode + 1,
			Date:      date,
			WhoInput:  username,
			Client:    in.Client,
			Status:    entity.StatusRecibida,
			Items:     items,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return entryRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}
	return uc.toEntryResponse(entry, nil), nil
}

// UpdateEntry reprocesa las líneas (permite re-resolución de catálogo) y
// reemplaza la entrada conservando el código. Rechaza reducciones de
// cantidad por debajo de lo ya entregado para cualquier talla, de modo que
// el pendiente nunca queda negativo.
func (uc *UseCase) UpdateEntry(ctx context.Context, code int, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	existing, err := uc.entryRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	clientName := in.Client
	if clientName == "" {
		clientName = existing.Client
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByName(clientName)
	if err != nil {
		return nil, err
	}
	cat, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	items, newProducts, err := catalog.ProcessItems(in.Items, client, cat)
	if err != nil {
		return nil, err
	}

	deliveries, err := uc.deliveryRepo.ListByEntry(code)
	if err != nil {
		return nil, err
	}
	if err := validateAgainstDelivered(existing.Items, items, deliveries); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = existing.Status
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	updated := &entity.Entry{
		Code:      code,
		Date:      date,
		WhoInput:  existing.WhoInput,
		Client:    clientName,
		Status:    status,
		Items:     items,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	// La pasada reactiva corrige el estado si las nuevas cantidades lo
	// justifican; Prefacturado y Entregada manual quedan intactos.
	recibida, delivered, _ := quantity.EntryTotals(updated, deliveries)
	updated.Status = quantity.DeriveStatus(status, recibida, delivered)

	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		_ repository.DeliveryRepository,
		productRepo repository.ProductRepository,
	) error {
		if len(newProducts) > 0 {
			if err := productRepo.CreateMany(newProducts); err != nil {
				return err
			}
		}
		return entryRepo.Update(updated)
	})
	if err != nil {
		return nil, err
	}
	return uc.toEntryResponse(updated, deliveries), nil
}

// validateAgainstDelivered comprueba que ninguna línea reduce una talla por
// debajo de lo ya entregado; quitar una línea con entregas también cuenta
// como reducción.
func validateAgainstDelivered(oldItems, newItems []entity.EntryItem, deliveries []entity.Delivery) error {
	newByID := make(map[string]entity.EntryItem, len(newItems))
	for _, it := range newItems {
		newByID[it.ID] = it
	}
	for _, old := range oldItems {
		delivered := quantity.DeliveredForItem(old, deliveries)
		replacement, kept := newByID[old.ID]
		for size, qty := range delivered {
			if qty == 0 {
				continue
			}
			if !kept || replacement.SizeQuantities[size] < qty {
				return domain.ErrRemainingExceeded
			}
		}
	}
	return nil
}

// AddDelivery valida que cada cantidad solicitada no supere el pendiente
// por talla (rechazo, nunca recorte silencioso), persiste la entrega con un
// deliveryId generado y recalcula el estado de la entrada afectada en la
// misma transacción.
func (uc *UseCase) AddDelivery(ctx context.Context, username string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	entry, err := uc.entryRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	date, err := parseDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	deliveries, err := uc.deliveryRepo.ListByEntry(in.Code)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[string]entity.EntryItem, len(entry.Items))
	for _, it := range entry.Items {
		itemsByID[it.ID] = it
	}
	deliveryItems := make([]entity.DeliveryItem, 0, len(in.Items))
	for _, di := range in.Items {
		item, ok := itemsByID[di.EntryItemID]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		remaining := quantity.RemainingForItem(item, deliveries)
		for size, qty := range di.DeliveryQuantities {
			if qty < 0 {
				return nil, domain.ErrInvalidInput
			}
			if qty > remaining[size] {
				return nil, domain.ErrRemainingExceeded
			}
		}
		deliveryItems = append(deliveryItems, entity.DeliveryItem{
			EntryItemID:        di.EntryItemID,
			DeliveryQuantities: di.DeliveryQuantities,
		})
	}

	delivery := &entity.Delivery{
		DeliveryID:   uuid.New().String(),
		Code:         in.Code,
		DeliveryDate: date,
		WhoDelivered: username,
		Items:        deliveryItems,
		CreatedAt:    time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
	) error {
		if err := deliveryRepo.Create(delivery); err != nil {
			return err
		}
		// Pasada de estado limitada a la entrada afectada.
		all := append(deliveries, *delivery)
		recibida, delivered, _ := quantity.EntryTotals(entry, all)
		if derived := quantity.DeriveStatus(entry.Status, recibida, delivered); derived != entry.Status {
			return entryRepo.UpdateStatus(entry.Code, derived)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery), nil
}

// DeleteEntry elimina una entrada y, en cascada, todas sus entregas.
func (uc *UseCase) DeleteEntry(ctx context.Context, code int) error {
	return uc.DeleteEntries(ctx, []int{code})
}

// DeleteEntries elimina varias entradas con cascada de entregas.
func (uc *UseCase) DeleteEntries(ctx context.Context, codes []int) error {
	if len(codes) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
	) error {
		if err := deliveryRepo.DeleteByEntries(codes); err != nil {
			return err
		}
		return entryRepo.DeleteMany(codes)
	})
}

// UpdateEntryStatus es el override manual de estado: único camino para
// entrar o salir de Prefacturado fuera del guardado de documentos.
func (uc *UseCase) UpdateEntryStatus(ctx context.Context, code int, status string) error {
	if !entity.ValidStatus(status) {
		return domain.ErrInvalidInput
	}
	entry, err := uc.entryRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return uc.entryRepo.UpdateStatus(code, status)
}

// ListEntries devuelve todas las entradas con cantidades agregadas.
func (uc *UseCase) ListEntries(ctx context.Context) ([]dto.EntryResponse, error) {
	entries, err := uc.entryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		deliveries, err := uc.deliveryRepo.ListByEntry(e.Code)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc.toEntryResponse(e, deliveries))
	}
	return out, nil
}

// ListFalta devuelve las entradas que aún deben mercancía: pendiente > 0 y
// estado distinto de Entregada (Recibida, En proceso o Prefacturado).
func (uc *UseCase) ListFalta(ctx context.Context) ([]dto.EntryResponse, error) {
	entries, err := uc.entryRepo.List()
	if err != nil {
		return nil, err
	}
	var out []dto.EntryResponse
	for _, e := range entries {
		deliveries, err := uc.deliveryRepo.ListByEntry(e.Code)
		if err != nil {
			return nil, err
		}
		_, _, remaining := quantity.EntryTotals(e, deliveries)
		if remaining > 0 && e.Status != entity.StatusEntregada {
			out = append(out, *uc.toEntryResponse(e, deliveries))
		}
	}
	return out, nil
}

// GetEntry devuelve el detalle de una entrada: cantidades por línea,
// pendiente por talla, desglose de entregas y última fecha de entrega.
func (uc *UseCase) GetEntry(ctx context.Context, code int) (*dto.EntryDetailResponse, error) {
	entry, err := uc.entryRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	deliveries, err := uc.deliveryRepo.ListByEntry(code)
	if err != nil {
		return nil, err
	}
	detail := &dto.EntryDetailResponse{EntryResponse: *uc.toEntryResponse(entry, deliveries)}
	for _, item := range entry.Items {
		_, delivered, falta := quantity.ItemTotals(item, deliveries)
		detail.ItemDetails = append(detail.ItemDetails, dto.EntryItemDetail{
			EntryItemResponse: toItemResponse(item),
			DeliveredQuantity: delivered,
			FaltaQuantity:     falta,
			Remaining:         quantity.RemainingForItem(item, deliveries),
			DeliveryBreakdown: toBreakdownResponse(quantity.BreakdownForItem(item, deliveries)),
		})
	}
	if latest := latestDeliveryDate(deliveries); !latest.IsZero() {
		detail.LatestDeliveryDate = latest.Format(dateLayout)
	}
	return detail, nil
}

// ListDeliveries devuelve todas las entregas registradas.
func (uc *UseCase) ListDeliveries(ctx context.Context) ([]dto.DeliveryResponse, error) {
	deliveries, err := uc.deliveryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		out = append(out, *toDeliveryResponse(&deliveries[i]))
	}
	return out, nil
}

// RecomputeAllStatuses es la operación de mantenimiento para importaciones
// masivas: rederiva el estado de todas las entradas auto-derivables.
func (uc *UseCase) RecomputeAllStatuses(ctx context.Context) error {
	entries, err := uc.entryRepo.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Status != entity.StatusRecibida && e.Status != entity.StatusEnProceso {
			continue
		}
		deliveries, err := uc.deliveryRepo.ListByEntry(e.Code)
		if err != nil {
			return err
		}
		recibida, delivered, _ := quantity.EntryTotals(e, deliveries)
		if derived := quantity.DeriveStatus(e.Status, recibida, delivered); derived != e.Status {
			if err := uc.entryRepo.UpdateStatus(e.Code, derived); err != nil {
				return err
			}
		}
	}
	return nil
}

func latestDeliveryDate(deliveries []entity.Delivery) time.Time {
	var latest time.Time
	for _, d := range deliveries {
		if d.DeliveryDate.After(latest) {
			latest = d.DeliveryDate
		}
	}
	return latest
}

func (uc *UseCase) toEntryResponse(e *entity.Entry, deliveries []entity.Delivery) *dto.EntryResponse {
	recibida, delivered, remaining := quantity.EntryTotals(e, deliveries)
	items := make([]dto.EntryItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, toItemResponse(it))
	}
	return &dto.EntryResponse{
		Code:              e.Code,
		Date:              e.Date.Format(dateLayout),
		WhoInput:          e.WhoInput,
		Client:            e.Client,
		Status:            e.Status,
		Items:             items,
		RecibidaQuantity:  recibida,
		DeliveredQuantity: delivered,
		RemainingQuantity: remaining,
	}
}

func toItemResponse(it entity.EntryItem) dto.EntryItemResponse {
	return dto.EntryItemResponse{
		ID:             it.ID,
		ProductID:      it.ProductID,
		Description:    it.Description,
		Reference1:     it.Reference1,
		Reference2:     it.Reference2,
		SizeQuantities: it.SizeQuantities,
		UnitPrice:      it.UnitPrice,
	}
}

func toBreakdownResponse(breakdown []entity.DeliveryBreakdown) []dto.BreakdownResponse {
	out := make([]dto.BreakdownResponse, 0, len(breakdown))
	for _, b := range breakdown {
		out = append(out, dto.BreakdownResponse{Date: b.Date, Qty: b.Qty})
	}
	return out
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	items := make([]dto.DeliveryItemInput, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DeliveryItemInput{
			EntryItemID:        it.EntryItemID,
			DeliveryQuantities: it.DeliveryQuantities,
		})
	}
	return &dto.DeliveryResponse{
		DeliveryID:   d.DeliveryID,
		Code:         d.Code,
		DeliveryDate: d.DeliveryDate.Format(dateLayout),
		WhoDelivered: d.WhoDelivered,
		Items:        items,
	}
}
