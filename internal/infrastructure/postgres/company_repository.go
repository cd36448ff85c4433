package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre la fila única de
// company_details (id fijo 1, upsert).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devuelve los datos de la empresa. Devuelve nil si nunca se guardaron.
func (r *CompanyRepo) Get() (*entity.CompanyDetails, error) {
	query := `
		SELECT name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(vat_number, ''), updated_at
		FROM company_details WHERE id = 1`
	var c entity.CompanyDetails
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.Name, &c.Address, &c.Phone, &c.Email, &c.VATNumber, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company details: %w", err)
	}
	return &c, nil
}

// Save guarda los datos de la empresa (upsert sobre la fila 1).
func (r *CompanyRepo) Save(details *entity.CompanyDetails) error {
	query := `
		INSERT INTO company_details (id, name, address, phone, email, vat_number, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = $1, address = $2, phone = $3, email = $4, vat_number = $5, updated_at = $6`
	_, err := r.q.Exec(context.Background(), query,
		details.Name, nullIfEmpty(details.Address), nullIfEmpty(details.Phone),
		nullIfEmpty(details.Email), nullIfEmpty(details.VATNumber), details.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save company details: %w", err)
	}
	return nil
}
