package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productInsert = `
	INSERT INTO products (code, model_name, reference, price, category, description, client_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create persiste un producto del catálogo.
func (r *ProductRepo) Create(product *entity.Product) error {
	_, err := r.q.Exec(context.Background(), productInsert,
		product.Code, product.ModelName, nullIfEmpty(product.Reference), product.Price,
		product.Category, nullIfEmpty(product.Description), nullIfEmpty(product.ClientID),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateMany persiste varios productos (auto-creación desde entradas).
func (r *ProductRepo) CreateMany(products []*entity.Product) error {
	for _, p := range products {
		if err := r.Create(p); err != nil {
			return err
		}
	}
	return nil
}

// Update modifica un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET model_name = $2, reference = $3, price = $4, category = $5,
		    description = $6, client_id = $7, updated_at = $8
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.Code, product.ModelName, nullIfEmpty(product.Reference), product.Price,
		product.Category, nullIfEmpty(product.Description), nullIfEmpty(product.ClientID),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteMany elimina varios productos.
func (r *ProductRepo) DeleteMany(codes []string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE code = ANY($1)`, codes)
	if err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}

const productSelect = `
	SELECT code, model_name, COALESCE(reference, ''), price, category,
	       COALESCE(description, ''), COALESCE(client_id, ''), created_at, updated_at
	FROM products`

// GetByCode obtiene un producto. Devuelve nil si no existe.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), productSelect+` WHERE code = $1`, code).Scan(
		&p.Code, &p.ModelName, &p.Reference, &p.Price, &p.Category,
		&p.Description, &p.ClientID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo completo ordenado por nombre de modelo.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), productSelect+` ORDER BY model_name, code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.ModelName, &p.Reference, &p.Price, &p.Category,
			&p.Description, &p.ClientID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
