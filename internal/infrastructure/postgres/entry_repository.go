package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository (usable con pool o tx).
// Las cantidades por talla se guardan como JSONB en entry_items.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste la cabecera y todas las líneas.
func (r *EntryRepo) Create(entry *entity.Entry) error {
	query := `
		INSERT INTO entries (code, date, who_input, client, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.Code, entry.Date, entry.WhoInput, entry.Client, entry.Status,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("entry code already exists: %w", err)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return r.insertItems(entry.Code, entry.Items)
}

func (r *EntryRepo) insertItems(code int, items []entity.EntryItem) error {
	query := `
		INSERT INTO entry_items (id, entry_code, product_id, description, reference1, reference2, size_quantities, unit_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i, item := range items {
		sizes, err := json.Marshal(item.SizeQuantities)
		if err != nil {
			return fmt.Errorf("marshal size quantities: %w", err)
		}
		_, err = r.q.Exec(context.Background(), query,
			item.ID, code, item.ProductID, item.Description,
			nullIfEmpty(item.Reference1), nullIfEmpty(item.Reference2),
			sizes, item.UnitPrice, i,
		)
		if err != nil {
			return fmt.Errorf("insert entry item: %w", err)
		}
	}
	return nil
}

// Update reemplaza la cabecera y todas las líneas de la entrada.
func (r *EntryRepo) Update(entry *entity.Entry) error {
	query := `
		UPDATE entries
		SET date = $2, who_input = $3, client = $4, status = $5, updated_at = $6
		WHERE code = $1`
	tag, err := r.q.Exec(context.Background(), query,
		entry.Code, entry.Date, entry.WhoInput, entry.Client, entry.Status, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update entry %d: no existe", entry.Code)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM entry_items WHERE entry_code = $1`, entry.Code); err != nil {
		return fmt.Errorf("delete entry items: %w", err)
	}
	return r.insertItems(entry.Code, entry.Items)
}

// Delete elimina la entrada; las líneas caen por ON DELETE CASCADE.
func (r *EntryRepo) Delete(code int) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entries WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// DeleteMany elimina varias entradas.
func (r *EntryRepo) DeleteMany(codes []int) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entries WHERE code = ANY($1)`, codes)
	if err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}

// GetByCode obtiene una entrada completa por código. Devuelve nil si no existe.
func (r *EntryRepo) GetByCode(code int) (*entity.Entry, error) {
	query := `
		SELECT code, date, who_input, client, status, created_at, updated_at
		FROM entries WHERE code = $1`
	var e entity.Entry
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&e.Code, &e.Date, &e.WhoInput, &e.Client, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	items, err := r.itemsFor(code)
	if err != nil {
		return nil, err
	}
	e.Items = items
	return &e, nil
}

func (r *EntryRepo) itemsFor(code int) ([]entity.EntryItem, error) {
	query := `
		SELECT id, product_id, description, COALESCE(reference1, ''), COALESCE(reference2, ''), size_quantities, unit_price
		FROM entry_items WHERE entry_code = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list entry items: %w", err)
	}
	defer rows.Close()
	var items []entity.EntryItem
	for rows.Next() {
		item, err := scanEntryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanEntryItem(row pgx.Row) (entity.EntryItem, error) {
	var item entity.EntryItem
	var sizes []byte
	if err := row.Scan(&item.ID, &item.ProductID, &item.Description,
		&item.Reference1, &item.Reference2, &sizes, &item.UnitPrice); err != nil {
		return item, fmt.Errorf("scan entry item: %w", err)
	}
	if err := json.Unmarshal(sizes, &item.SizeQuantities); err != nil {
		return item, fmt.Errorf("unmarshal size quantities: %w", err)
	}
	return item, nil
}

// List devuelve todas las entradas con sus líneas, ordenadas por código.
func (r *EntryRepo) List() ([]*entity.Entry, error) {
	query := `
		SELECT code, date, who_input, client, status, created_at, updated_at
		FROM entries ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var entries []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.Code, &e.Date, &e.WhoInput, &e.Client, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Segunda consulta para las líneas: evita N+1 sobre el listado completo.
	if err := r.attachItems(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *EntryRepo) attachItems(entries []*entity.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	byCode := make(map[int]*entity.Entry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}
	query := `
		SELECT entry_code, id, product_id, description, COALESCE(reference1, ''), COALESCE(reference2, ''), size_quantities, unit_price
		FROM entry_items ORDER BY entry_code, position`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return fmt.Errorf("list entry items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code int
		var item entity.EntryItem
		var sizes []byte
		if err := rows.Scan(&code, &item.ID, &item.ProductID, &item.Description,
			&item.Reference1, &item.Reference2, &sizes, &item.UnitPrice); err != nil {
			return fmt.Errorf("scan entry item: %w", err)
		}
		if err := json.Unmarshal(sizes, &item.SizeQuantities); err != nil {
			return fmt.Errorf("unmarshal size quantities: %w", err)
		}
		if e, ok := byCode[code]; ok {
			e.Items = append(e.Items, item)
		}
	}
	return rows.Err()
}

// ListByProduct devuelve las entradas con alguna línea del producto dado.
func (r *EntryRepo) ListByProduct(productCode string) ([]*entity.Entry, error) {
	query := `
		SELECT DISTINCT entry_code FROM entry_items WHERE product_id = $1`
	rows, err := r.q.Query(context.Background(), query, productCode)
	if err != nil {
		return nil, fmt.Errorf("list entries by product: %w", err)
	}
	defer rows.Close()
	var codes []int
	for rows.Next() {
		var code int
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan entry code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var entries []*entity.Entry
	for _, code := range codes {
		e, err := r.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// MaxCode devuelve el código más alto existente (0 si no hay entradas).
func (r *EntryRepo) MaxCode() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(), `SELECT COALESCE(MAX(code), 0) FROM entries`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max entry code: %w", err)
	}
	return max, nil
}

// UpdateStatus cambia solo el estado de la entrada.
func (r *EntryRepo) UpdateStatus(code int, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE entries SET status = $2, updated_at = NOW() WHERE code = $1`, code, status)
	if err != nil {
		return fmt.Errorf("update entry status: %w", err)
	}
	return nil
}

// UpdateItemUnitPrice reescribe el precio snapshot de una línea.
func (r *EntryRepo) UpdateItemUnitPrice(itemID string, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE entry_items SET unit_price = $2 WHERE id = $1`, itemID, price)
	if err != nil {
		return fmt.Errorf("update item unit price: %w", err)
	}
	return nil
}
