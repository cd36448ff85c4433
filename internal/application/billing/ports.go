package billing

import (
	"context"

	"github.com/hawlader/taller-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con los repositorios de facturación atados a
// una transacción: guardar una Prefactura y sellar sus entradas origen debe
// ser atómico.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		entryRepo repository.EntryRepository,
	) error) error
}
