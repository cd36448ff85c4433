package repository

import "github.com/hawlader/taller-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	CreateMany(products []*entity.Product) error
	Update(product *entity.Product) error
	Delete(code string) error
	DeleteMany(codes []string) error
	GetByCode(code string) (*entity.Product, error)
	// List devuelve el catálogo completo; la resolución por descripción
	// (case/acentos-insensible) se hace en memoria.
	List() ([]*entity.Product, error)
}
