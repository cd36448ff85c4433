package repository

import (
	"github.com/shopspring/decimal"

	"github.com/hawlader/taller-api/internal/domain/entity"
)

// EntryRepository define el puerto de persistencia para entradas y sus líneas.
type EntryRepository interface {
	Create(entry *entity.Entry) error
	// Update reemplaza la cabecera y todas las líneas de la entrada.
	Update(entry *entity.Entry) error
	Delete(code int) error
	DeleteMany(codes []int) error
	GetByCode(code int) (*entity.Entry, error)
	List() ([]*entity.Entry, error)
	// ListByProduct devuelve las entradas con alguna línea del producto dado.
	ListByProduct(productCode string) ([]*entity.Entry, error)
	// MaxCode devuelve el código más alto existente (0 si no hay entradas).
	MaxCode() (int, error)
	UpdateStatus(code int, status string) error
	// UpdateItemUnitPrice reescribe el precio snapshot de una línea
	// (propagación retroactiva de precios del catálogo).
	UpdateItemUnitPrice(itemID string, price decimal.Decimal) error
}
