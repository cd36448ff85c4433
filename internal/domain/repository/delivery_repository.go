package repository

import "github.com/hawlader/taller-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para entregas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	ListByEntry(code int) ([]entity.Delivery, error)
	List() ([]entity.Delivery, error)
	// DeleteByEntries borra todas las entregas de los códigos dados
	// (borrado en cascada al eliminar entradas).
	DeleteByEntries(codes []int) error
}
