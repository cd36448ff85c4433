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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, address, email, phone, vat_number, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Address), nullIfEmpty(client.Email),
		nullIfEmpty(client.Phone), nullIfEmpty(client.VATNumber), client.Logo,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update modifica un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, address = $3, email = $4, phone = $5, vat_number = $6, logo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Address), nullIfEmpty(client.Email),
		nullIfEmpty(client.Phone), nullIfEmpty(client.VATNumber), client.Logo, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// DeleteMany elimina varios clientes.
func (r *ClientRepo) DeleteMany(ids []string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete clients: %w", err)
	}
	return nil
}

const clientSelect = `
	SELECT id, name, COALESCE(address, ''), COALESCE(email, ''), COALESCE(phone, ''),
	       COALESCE(vat_number, ''), logo, created_at, updated_at
	FROM clients`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.Phone,
		&c.VATNumber, &c.Logo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &c, nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	return scanClient(r.q.QueryRow(context.Background(), clientSelect+` WHERE id = $1`, id))
}

// GetByName obtiene un cliente por nombre exacto. Devuelve nil si no existe.
func (r *ClientRepo) GetByName(name string) (*entity.Client, error) {
	return scanClient(r.q.QueryRow(context.Background(), clientSelect+` WHERE name = $1`, name))
}

// List devuelve todos los clientes ordenados por nombre.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), clientSelect+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
