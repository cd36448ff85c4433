package orders

import (
	"context"

	"github.com/hawlader/taller-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción;
// Commit si fn devuelve nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		deliveryRepo repository.DeliveryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
