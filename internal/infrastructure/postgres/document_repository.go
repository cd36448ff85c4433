package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// El desglose de entregas de cada línea se guarda como JSONB.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, document_number, document_type, client_id, date,
		                       subtotal, surcharge, tax_rate, tax_amount, total,
		                       start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.DocumentNumber, doc.DocumentType, nullIfEmpty(doc.ClientID), doc.Date,
		doc.Subtotal, doc.Surcharge, doc.TaxRate, doc.TaxAmount, doc.Total,
		doc.StartDate, doc.EndDate, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document number already exists: %w", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return r.insertItems(doc.ID, doc.Items)
}

func (r *DocumentRepo) insertItems(docID string, items []entity.DocumentItem) error {
	query := `
		INSERT INTO document_items (document_id, entry_code, product_code, description,
		                            reference1, reference2, client_name,
		                            recibida_quantity, entregada_quantity, falta_quantity,
		                            status, delivery_breakdown, unit_price, total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i, item := range items {
		breakdown, err := json.Marshal(item.DeliveryBreakdown)
		if err != nil {
			return fmt.Errorf("marshal delivery breakdown: %w", err)
		}
		_, err = r.q.Exec(context.Background(), query,
			docID, item.EntryCode, nullIfEmpty(item.ProductCode), item.Description,
			nullIfEmpty(item.Reference1), nullIfEmpty(item.Reference2), item.ClientName,
			item.RecibidaQuantity, item.EntregadaQuantity, item.FaltaQuantity,
			item.Status, breakdown, item.UnitPrice, item.Total, i,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

// Update reemplaza cabecera y líneas.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents
		SET document_number = $2, document_type = $3, client_id = $4, date = $5,
		    subtotal = $6, surcharge = $7, tax_rate = $8, tax_amount = $9, total = $10,
		    start_date = $11, end_date = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.DocumentNumber, doc.DocumentType, nullIfEmpty(doc.ClientID), doc.Date,
		doc.Subtotal, doc.Surcharge, doc.TaxRate, doc.TaxAmount, doc.Total,
		doc.StartDate, doc.EndDate, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update document %s: no existe", doc.ID)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM document_items WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	return r.insertItems(doc.ID, doc.Items)
}

// Delete elimina un documento; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// DeleteMany elimina varios documentos.
func (r *DocumentRepo) DeleteMany(ids []string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

const documentSelect = `
	SELECT id, document_number, document_type, COALESCE(client_id, ''), date,
	       subtotal, surcharge, tax_rate, tax_amount, total,
	       start_date, end_date, created_at, updated_at
	FROM documents`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.DocumentNumber, &d.DocumentType, &d.ClientID, &d.Date,
		&d.Subtotal, &d.Surcharge, &d.TaxRate, &d.TaxAmount, &d.Total,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// GetByID obtiene un documento completo por ID. Devuelve nil si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	doc, err := scanDocument(r.q.QueryRow(context.Background(), documentSelect+` WHERE id = $1`, id))
	if err != nil || doc == nil {
		return doc, err
	}
	items, err := r.itemsFor(id)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

func (r *DocumentRepo) itemsFor(docID string) ([]entity.DocumentItem, error) {
	query := `
		SELECT entry_code, COALESCE(product_code, ''), description,
		       COALESCE(reference1, ''), COALESCE(reference2, ''), client_name,
		       recibida_quantity, entregada_quantity, falta_quantity,
		       status, delivery_breakdown, unit_price, total
		FROM document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, docID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	var items []entity.DocumentItem
	for rows.Next() {
		var item entity.DocumentItem
		var breakdown []byte
		if err := rows.Scan(&item.EntryCode, &item.ProductCode, &item.Description,
			&item.Reference1, &item.Reference2, &item.ClientName,
			&item.RecibidaQuantity, &item.EntregadaQuantity, &item.FaltaQuantity,
			&item.Status, &breakdown, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		if err := json.Unmarshal(breakdown, &item.DeliveryBreakdown); err != nil {
			return nil, fmt.Errorf("unmarshal delivery breakdown: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List devuelve todos los documentos con sus líneas, del más reciente al más antiguo.
func (r *DocumentRepo) List() ([]*entity.Document, error) {
	rows, err := r.q.Query(context.Background(), documentSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		items, err := r.itemsFor(doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Items = items
	}
	return docs, nil
}

// MaxNumberSuffix devuelve el sufijo numérico más alto de los números de
// documento del tipo dado (0 si no hay ninguno).
func (r *DocumentRepo) MaxNumberSuffix(documentType string) (int, error) {
	query := `
		SELECT COALESCE(MAX(split_part(document_number, '-', 2)::int), 0)
		FROM documents WHERE document_type = $1`
	var max int
	if err := r.q.QueryRow(context.Background(), query, documentType).Scan(&max); err != nil {
		return 0, fmt.Errorf("max document number: %w", err)
	}
	return max, nil
}

// BilledEntryCodes devuelve los códigos de entrada que ya figuran en alguna
// línea de cualquier documento guardado.
func (r *DocumentRepo) BilledEntryCodes() ([]int, error) {
	rows, err := r.q.Query(context.Background(), `SELECT DISTINCT entry_code FROM document_items`)
	if err != nil {
		return nil, fmt.Errorf("billed entry codes: %w", err)
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
	return codes, rows.Err()
}
