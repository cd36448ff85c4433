package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la entrega y sus líneas.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (delivery_id, entry_code, delivery_date, who_delivered, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.DeliveryID, delivery.Code, delivery.DeliveryDate,
		delivery.WhoDelivered, delivery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	itemQuery := `
		INSERT INTO delivery_items (delivery_id, entry_item_id, delivery_quantities)
		VALUES ($1, $2, $3)`
	for _, item := range delivery.Items {
		quantities, err := json.Marshal(item.DeliveryQuantities)
		if err != nil {
			return fmt.Errorf("marshal delivery quantities: %w", err)
		}
		if _, err := r.q.Exec(context.Background(), itemQuery,
			delivery.DeliveryID, item.EntryItemID, quantities); err != nil {
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

// ListByEntry devuelve las entregas de una entrada, de la más antigua a la
// más reciente.
func (r *DeliveryRepo) ListByEntry(code int) ([]entity.Delivery, error) {
	return r.list(`WHERE entry_code = $1`, code)
}

// List devuelve todas las entregas registradas.
func (r *DeliveryRepo) List() ([]entity.Delivery, error) {
	return r.list("")
}

func (r *DeliveryRepo) list(where string, args ...any) ([]entity.Delivery, error) {
	query := `
		SELECT delivery_id, entry_code, delivery_date, who_delivered, created_at
		FROM deliveries ` + where + ` ORDER BY delivery_date, created_at`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var deliveries []entity.Delivery
	byID := make(map[string]int)
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.DeliveryID, &d.Code, &d.DeliveryDate, &d.WhoDelivered, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		byID[d.DeliveryID] = len(deliveries)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(deliveries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(deliveries))
	for _, d := range deliveries {
		ids = append(ids, d.DeliveryID)
	}
	itemQuery := `
		SELECT delivery_id, entry_item_id, delivery_quantities
		FROM delivery_items WHERE delivery_id = ANY($1) ORDER BY id`
	itemRows, err := r.q.Query(context.Background(), itemQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var deliveryID string
		var item entity.DeliveryItem
		var quantities []byte
		if err := itemRows.Scan(&deliveryID, &item.EntryItemID, &quantities); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		if err := json.Unmarshal(quantities, &item.DeliveryQuantities); err != nil {
			return nil, fmt.Errorf("unmarshal delivery quantities: %w", err)
		}
		if idx, ok := byID[deliveryID]; ok {
			deliveries[idx].Items = append(deliveries[idx].Items, item)
		}
	}
	return deliveries, itemRows.Err()
}

// DeleteByEntries borra todas las entregas de los códigos dados.
func (r *DeliveryRepo) DeleteByEntries(codes []int) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM deliveries WHERE entry_code = ANY($1)`, codes)
	if err != nil {
		return fmt.Errorf("delete deliveries: %w", err)
	}
	return nil
}
